package service

import (
	"context"
	"time"

	"dejargonizer/internal/models"

	"github.com/google/uuid"
)

// Store interfaces decouple the services from the persistence layer; the
// Postgres repositories satisfy them in production and the in-memory
// repositories satisfy them in tests.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error)
	MarkAnalyzed(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error
}

type AnalysisStore interface {
	Create(ctx context.Context, analysis *models.Analysis) error
	GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*models.Analysis, error)
	DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) error
}

// Generator is the external text-generation service: a rendered prompt in,
// free-form text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Translator is the external translation service. The source language is
// auto-detected per call.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
