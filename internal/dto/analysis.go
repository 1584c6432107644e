package dto

import (
	"time"

	"dejargonizer/internal/models"
)

type AnalysisResponse struct {
	DocumentID       string                   `json:"document_id"`
	Title            string                   `json:"title"`
	AnalyzedAt       string                   `json:"analyzed_at"`
	PlainSummary     string                   `json:"plain_summary"`
	KeyTerms         []models.KeyTerm         `json:"key_terms"`
	ImportantClauses []models.ImportantClause `json:"important_clauses"`
	RisksAndConcerns []models.RiskConcern     `json:"risks_and_concerns"`
	UnclearItems     []string                 `json:"unclear_items"`
}

func NewAnalysisResponse(analysis *models.Analysis) AnalysisResponse {
	return AnalysisResponse{
		DocumentID:       analysis.DocumentID.String(),
		Title:            analysis.Title,
		AnalyzedAt:       analysis.AnalyzedAt.UTC().Format(time.RFC3339),
		PlainSummary:     analysis.PlainSummary,
		KeyTerms:         analysis.KeyTerms,
		ImportantClauses: analysis.ImportantClauses,
		RisksAndConcerns: analysis.RisksAndConcerns,
		UnclearItems:     analysis.UnclearItems,
	}
}
