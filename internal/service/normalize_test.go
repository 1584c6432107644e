package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAnalysis_PlainJSON(t *testing.T) {
	raw := `{
		"plain_summary": "This is a lease agreement.",
		"key_terms": [{"term": "Indemnification", "explanation": "You cover their losses."}],
		"important_clauses": [{"clause": "Early termination", "explanation": "Two months rent due.", "section": "Section 4"}],
		"risks_and_concerns": [{"risk": "Auto-renewal", "explanation": "Renews unless cancelled in writing."}],
		"unclear_items": ["Who pays for repairs?"]
	}`

	fields := normalizeAnalysis(raw)

	require.True(t, fields.Structured)
	assert.Equal(t, "This is a lease agreement.", fields.PlainSummary)
	require.Len(t, fields.KeyTerms, 1)
	assert.Equal(t, "Indemnification", fields.KeyTerms[0].Term)
	require.Len(t, fields.ImportantClauses, 1)
	assert.Equal(t, "Section 4", fields.ImportantClauses[0].Section)
	require.Len(t, fields.RisksAndConcerns, 1)
	assert.Equal(t, "Auto-renewal", fields.RisksAndConcerns[0].Risk)
	assert.Equal(t, []string{"Who pays for repairs?"}, fields.UnclearItems)
}

func TestNormalizeAnalysis_FencedJSON(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"plain_summary\": \"Fenced summary.\"}\n```\nThanks!"

	fields := normalizeAnalysis(raw)

	require.True(t, fields.Structured)
	assert.Equal(t, "Fenced summary.", fields.PlainSummary)
	assert.Empty(t, fields.KeyTerms)
}

func TestNormalizeAnalysis_ProseDegradesToRawSummary(t *testing.T) {
	raw := "The document appears to be a standard employment contract with typical provisions."

	fields := normalizeAnalysis(raw)

	assert.False(t, fields.Structured)
	assert.Equal(t, raw, fields.PlainSummary)
	assert.NotNil(t, fields.KeyTerms)
	assert.Empty(t, fields.KeyTerms)
	assert.NotNil(t, fields.ImportantClauses)
	assert.Empty(t, fields.ImportantClauses)
	assert.NotNil(t, fields.RisksAndConcerns)
	assert.Empty(t, fields.RisksAndConcerns)
	assert.NotNil(t, fields.UnclearItems)
	assert.Empty(t, fields.UnclearItems)
}

func TestNormalizeAnalysis_BrokenFencedJSONKeepsOriginalText(t *testing.T) {
	raw := "```json\n{\"plain_summary\": \"truncated\n```"

	fields := normalizeAnalysis(raw)

	assert.False(t, fields.Structured)
	// The full original response is kept, not the unwrapped fragment.
	assert.Equal(t, raw, fields.PlainSummary)
}

func TestNormalizeAnalysis_MissingFieldsDefaultEmpty(t *testing.T) {
	fields := normalizeAnalysis(`{"plain_summary": "only a summary"}`)

	require.True(t, fields.Structured)
	assert.Equal(t, "only a summary", fields.PlainSummary)
	assert.Equal(t, []string{}, fields.UnclearItems)
	assert.Empty(t, fields.KeyTerms)
	assert.Empty(t, fields.ImportantClauses)
	assert.Empty(t, fields.RisksAndConcerns)
}
