package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentSource tells which extraction path produced the stored text.
type DocumentSource string

const (
	DocumentSourcePDF   DocumentSource = "pdf"
	DocumentSourceImage DocumentSource = "image"
)

const DefaultDocumentType = "general"

type Document struct {
	ID         uuid.UUID      `db:"id"`
	UserID     uuid.UUID      `db:"user_id"`
	Title      string         `db:"title"`
	Type       string         `db:"type"`
	Text       string         `db:"text"`
	Source     DocumentSource `db:"source"`
	Filename   string         `db:"filename"`
	UploadedAt time.Time      `db:"uploaded_at"`
	Analyzed   bool           `db:"analyzed"`
	AnalyzedAt *time.Time     `db:"analyzed_at"`
}
