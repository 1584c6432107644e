package service

import (
	"encoding/json"
	"regexp"

	"dejargonizer/internal/models"
)

// AnalysisFields is the normalized shape of a generation-service response.
// Structured reports whether the strict parse succeeded; when it is false
// the raw response text is carried verbatim in PlainSummary and the
// collections are empty.
type AnalysisFields struct {
	PlainSummary     string                   `json:"plain_summary"`
	KeyTerms         []models.KeyTerm         `json:"key_terms"`
	ImportantClauses []models.ImportantClause `json:"important_clauses"`
	RisksAndConcerns []models.RiskConcern     `json:"risks_and_concerns"`
	UnclearItems     []string                 `json:"unclear_items"`

	Structured bool `json:"-"`
}

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// normalizeAnalysis coerces a free-form model response into the fixed
// analysis shape. Responses wrapped in a ```json fence are unwrapped first.
// A response that fails strict parsing degrades to a raw-summary record
// rather than an error: the model returning prose is not a failure.
func normalizeAnalysis(raw string) AnalysisFields {
	text := raw
	if match := fencedJSONPattern.FindStringSubmatch(raw); match != nil {
		text = match[1]
	}

	var fields AnalysisFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return AnalysisFields{
			PlainSummary:     raw,
			KeyTerms:         []models.KeyTerm{},
			ImportantClauses: []models.ImportantClause{},
			RisksAndConcerns: []models.RiskConcern{},
			UnclearItems:     []string{},
			Structured:       false,
		}
	}

	// Missing fields default to their empty form
	if fields.KeyTerms == nil {
		fields.KeyTerms = []models.KeyTerm{}
	}
	if fields.ImportantClauses == nil {
		fields.ImportantClauses = []models.ImportantClause{}
	}
	if fields.RisksAndConcerns == nil {
		fields.RisksAndConcerns = []models.RiskConcern{}
	}
	if fields.UnclearItems == nil {
		fields.UnclearItems = []string{}
	}
	fields.Structured = true

	return fields
}
