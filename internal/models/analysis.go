package models

import (
	"time"

	"github.com/google/uuid"
)

type KeyTerm struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
}

type ImportantClause struct {
	Clause      string `json:"clause"`
	Explanation string `json:"explanation"`
	Section     string `json:"section"`
}

type RiskConcern struct {
	Risk        string `json:"risk"`
	Explanation string `json:"explanation"`
}

// Analysis is the explanation derived from a document. It is keyed by the
// document id, so a document can have at most one analysis.
type Analysis struct {
	DocumentID       uuid.UUID         `db:"document_id"`
	Title            string            `db:"title"`
	AnalyzedAt       time.Time         `db:"analyzed_at"`
	PlainSummary     string            `db:"plain_summary"`
	KeyTerms         []KeyTerm         `db:"key_terms"`
	ImportantClauses []ImportantClause `db:"important_clauses"`
	RisksAndConcerns []RiskConcern     `db:"risks_and_concerns"`
	UnclearItems     []string          `db:"unclear_items"`
}
