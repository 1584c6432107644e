package repository

import (
	"context"
	"errors"
	"time"

	"dejargonizer/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var documentColumns = []string{
	"id", "user_id", "title", "type", "text", "source", "filename",
	"uploaded_at", "analyzed", "analyzed_at",
}

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := squirrel.Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.UserID, doc.Title, doc.Type, doc.Text, doc.Source, doc.Filename,
			doc.UploadedAt, doc.Analyzed, doc.AnalyzedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// GetByIDForUser loads a document only if it belongs to the given user.
// A document owned by someone else scans as no rows, so callers cannot
// tell "absent" apart from "not yours".
func (r *DocumentRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var doc models.Document
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&doc.ID, &doc.UserID, &doc.Title, &doc.Type, &doc.Text, &doc.Source, &doc.Filename,
		&doc.UploadedAt, &doc.Analyzed, &doc.AnalyzedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	query := squirrel.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("uploaded_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID, &doc.UserID, &doc.Title, &doc.Type, &doc.Text, &doc.Source, &doc.Filename,
			&doc.UploadedAt, &doc.Analyzed, &doc.AnalyzedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, &doc)
	}

	return documents, rows.Err()
}

func (r *DocumentRepository) MarkAnalyzed(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := squirrel.Update("documents").
		Set("analyzed", true).
		Set("analyzed_at", at).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DocumentRepository) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("documents").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
