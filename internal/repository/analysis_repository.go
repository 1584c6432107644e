package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dejargonizer/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AnalysisRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAnalysisRepository(db *pgxpool.Pool, logger *zap.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an analysis keyed by its document id. The primary key on
// document_id makes concurrent first-time inserts race-safe: the losing
// writer gets ErrDuplicate and should reload the winning row.
func (r *AnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	keyTerms, err := json.Marshal(analysis.KeyTerms)
	if err != nil {
		return fmt.Errorf("failed to marshal key terms: %w", err)
	}
	clauses, err := json.Marshal(analysis.ImportantClauses)
	if err != nil {
		return fmt.Errorf("failed to marshal clauses: %w", err)
	}
	risks, err := json.Marshal(analysis.RisksAndConcerns)
	if err != nil {
		return fmt.Errorf("failed to marshal risks: %w", err)
	}
	unclear, err := json.Marshal(analysis.UnclearItems)
	if err != nil {
		return fmt.Errorf("failed to marshal unclear items: %w", err)
	}

	query := squirrel.Insert("analyses").
		Columns("document_id", "title", "analyzed_at", "plain_summary",
			"key_terms", "important_clauses", "risks_and_concerns", "unclear_items").
		Values(analysis.DocumentID, analysis.Title, analysis.AnalyzedAt, analysis.PlainSummary,
			keyTerms, clauses, risks, unclear).
		Suffix("ON CONFLICT (document_id) DO NOTHING").
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
		return ErrDuplicate
	}

	return nil
}

func (r *AnalysisRepository) GetByDocumentID(ctx context.Context, documentID uuid.UUID) (*models.Analysis, error) {
	query := squirrel.Select("document_id", "title", "analyzed_at", "plain_summary",
		"key_terms", "important_clauses", "risks_and_concerns", "unclear_items").
		From("analyses").
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		analysis models.Analysis
		keyTerms []byte
		clauses  []byte
		risks    []byte
		unclear  []byte
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&analysis.DocumentID, &analysis.Title, &analysis.AnalyzedAt, &analysis.PlainSummary,
		&keyTerms, &clauses, &risks, &unclear,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(keyTerms, &analysis.KeyTerms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key terms: %w", err)
	}
	if err := json.Unmarshal(clauses, &analysis.ImportantClauses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal clauses: %w", err)
	}
	if err := json.Unmarshal(risks, &analysis.RisksAndConcerns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal risks: %w", err)
	}
	if err := json.Unmarshal(unclear, &analysis.UnclearItems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unclear items: %w", err)
	}

	return &analysis, nil
}

func (r *AnalysisRepository) DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) error {
	query := squirrel.Delete("analyses").
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
