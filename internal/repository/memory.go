package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"dejargonizer/internal/models"

	"github.com/google/uuid"
)

// In-memory store implementations with the same semantics as the Postgres
// repositories, including ErrDuplicate on conflicting analysis inserts.
// They back the service tests.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := u
	return &user, nil
}

func (r *MemoryUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	r.users[id] = u
	return nil
}

type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]models.Document
}

func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{docs: make(map[uuid.UUID]models.Document)}
}

func (r *MemoryDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = *doc
	return nil
}

func (r *MemoryDocumentRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok || d.UserID != userID {
		return nil, ErrNotFound
	}
	doc := d
	return &doc, nil
}

func (r *MemoryDocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var documents []*models.Document
	for _, d := range r.docs {
		if d.UserID == userID {
			doc := d
			documents = append(documents, &doc)
		}
	}
	sort.Slice(documents, func(i, j int) bool {
		return documents[i].UploadedAt.After(documents[j].UploadedAt)
	})
	return documents, nil
}

func (r *MemoryDocumentRepository) MarkAnalyzed(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	d.Analyzed = true
	d.AnalyzedAt = &at
	r.docs[id] = d
	return nil
}

func (r *MemoryDocumentRepository) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.UserID != userID {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

type MemoryAnalysisRepository struct {
	mu       sync.RWMutex
	analyses map[uuid.UUID]models.Analysis
}

func NewMemoryAnalysisRepository() *MemoryAnalysisRepository {
	return &MemoryAnalysisRepository{analyses: make(map[uuid.UUID]models.Analysis)}
}

func (r *MemoryAnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.analyses[analysis.DocumentID]; exists {
		return ErrDuplicate
	}
	r.analyses[analysis.DocumentID] = *analysis
	return nil
}

func (r *MemoryAnalysisRepository) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*models.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.analyses[documentID]
	if !ok {
		return nil, ErrNotFound
	}
	analysis := a
	return &analysis, nil
}

func (r *MemoryAnalysisRepository) DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.analyses, documentID)
	return nil
}
