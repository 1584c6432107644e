package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dejargonizer/internal/models"
	"dejargonizer/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrUpstream         = errors.New("upstream service failure")
)

// analysisPrompt is the frozen instruction set sent to the generation
// service. The single %s placeholder receives the document's full text.
const analysisPrompt = `You are a Document De-Jargonizer AI.

Your role is to explain complex legal, medical, or government documents
in clear, simple language WITHOUT adding information that is not present
in the document.

CRITICAL RULES:
1. You must ONLY use the provided document text as your source.
2. If something is unclear, missing, or ambiguous, say so explicitly.
3. Do NOT give legal, medical, or financial advice.
4. Do NOT guess intent or outcomes.
5. Do NOT summarize away important details.
6. Use plain language suitable for a non-expert reader (Grade 8 level).
7. If a clause is risky, explain WHY it may be risky using the document's wording.

Analyze the following document and provide:
1. A plain language summary
2. Key terms explained
3. Important clauses highlighted
4. Potential risks or concerns (based only on the document text)
5. Any unclear or missing information

Document:
%s

Provide your analysis in the following JSON structure:
{
  "plain_summary": "Your summary here",
  "key_terms": [
    {"term": "term1", "explanation": "plain language explanation"},
    {"term": "term2", "explanation": "plain language explanation"}
  ],
  "important_clauses": [
    {"clause": "clause text", "explanation": "why this matters", "section": "section reference"}
  ],
  "risks_and_concerns": [
    {"risk": "what the risk is", "explanation": "why this may be risky based on document wording"}
  ],
  "unclear_items": [
    "Item 1 that is unclear or missing",
    "Item 2 that is unclear or missing"
  ]
}
`

type AnalysisService struct {
	docStore      DocumentStore
	analysisStore AnalysisStore
	generator     Generator
	logger        *zap.Logger
}

func NewAnalysisService(
	docStore DocumentStore,
	analysisStore AnalysisStore,
	generator Generator,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		docStore:      docStore,
		analysisStore: analysisStore,
		generator:     generator,
		logger:        logger,
	}
}

// Analyze runs or fetches the analysis for a document. The generation
// service is called at most once per document for its lifetime: a cached
// analysis is returned unchanged, and a lost insert race resolves by
// reloading the winning record.
func (s *AnalysisService) Analyze(ctx context.Context, documentID, userID uuid.UUID) (*models.Analysis, error) {
	doc, err := s.docStore.GetByIDForUser(ctx, documentID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	// Cache hit: the analysis is immutable once created
	existing, err := s.analysisStore.GetByDocumentID(ctx, documentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	prompt := fmt.Sprintf(analysisPrompt, doc.Text)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("Generation service call failed",
			zap.String("document_id", documentID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	fields := normalizeAnalysis(raw)
	if !fields.Structured {
		s.logger.Warn("Model response was not structured, storing raw text as summary",
			zap.String("document_id", documentID.String()),
		)
	}

	analysis := &models.Analysis{
		DocumentID:       doc.ID,
		Title:            doc.Title,
		AnalyzedAt:       time.Now().UTC(),
		PlainSummary:     sanitizeUTF8(fields.PlainSummary),
		KeyTerms:         sanitizeKeyTerms(fields.KeyTerms),
		ImportantClauses: sanitizeClauses(fields.ImportantClauses),
		RisksAndConcerns: sanitizeRisks(fields.RisksAndConcerns),
		UnclearItems:     sanitizeStrings(fields.UnclearItems),
	}

	if err := s.analysisStore.Create(ctx, analysis); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent request won the insert; its record is the
			// canonical one
			winner, err := s.analysisStore.GetByDocumentID(ctx, documentID)
			if err != nil {
				return nil, err
			}
			return winner, nil
		}
		return nil, err
	}

	// The analyzed flag is denormalized. If this write is lost the next
	// analyze call still hits the cache above, so a failure here only
	// gets logged.
	if err := s.docStore.MarkAnalyzed(ctx, doc.ID, analysis.AnalyzedAt); err != nil {
		s.logger.Warn("Failed to mark document analyzed",
			zap.String("document_id", documentID.String()),
			zap.Error(err),
		)
	}

	return analysis, nil
}

// GetAnalysis returns the cached analysis only; it never triggers
// generation.
func (s *AnalysisService) GetAnalysis(ctx context.Context, documentID, userID uuid.UUID) (*models.Analysis, error) {
	if _, err := s.docStore.GetByIDForUser(ctx, documentID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	analysis, err := s.analysisStore.GetByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}

	return analysis, nil
}

func sanitizeKeyTerms(terms []models.KeyTerm) []models.KeyTerm {
	out := make([]models.KeyTerm, len(terms))
	for i, t := range terms {
		out[i] = models.KeyTerm{
			Term:        sanitizeUTF8(t.Term),
			Explanation: sanitizeUTF8(t.Explanation),
		}
	}
	return out
}

func sanitizeClauses(clauses []models.ImportantClause) []models.ImportantClause {
	out := make([]models.ImportantClause, len(clauses))
	for i, c := range clauses {
		out[i] = models.ImportantClause{
			Clause:      sanitizeUTF8(c.Clause),
			Explanation: sanitizeUTF8(c.Explanation),
			Section:     sanitizeUTF8(c.Section),
		}
	}
	return out
}

func sanitizeRisks(risks []models.RiskConcern) []models.RiskConcern {
	out := make([]models.RiskConcern, len(risks))
	for i, r := range risks {
		out[i] = models.RiskConcern{
			Risk:        sanitizeUTF8(r.Risk),
			Explanation: sanitizeUTF8(r.Explanation),
		}
	}
	return out
}

func sanitizeStrings(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = sanitizeUTF8(item)
	}
	return out
}
