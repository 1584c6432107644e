package service

import (
	"context"
	"errors"
	"fmt"

	"dejargonizer/internal/dto"
	"dejargonizer/internal/models"

	"go.uber.org/zap"
)

var ErrUnsupportedLanguage = errors.New("unsupported target language")

// supportedLanguages is the fixed catalog served by the languages endpoint
// and accepted as translation targets.
var supportedLanguages = map[string]string{
	"en":    "English",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"hi":    "Hindi",
	"ta":    "Tamil",
	"te":    "Telugu",
	"bn":    "Bengali",
	"zh-CN": "Chinese (Simplified)",
	"ar":    "Arabic",
}

type TranslateService struct {
	translator Translator
	logger     *zap.Logger
}

func NewTranslateService(translator Translator, logger *zap.Logger) *TranslateService {
	return &TranslateService{
		translator: translator,
		logger:     logger,
	}
}

// Languages returns the supported language catalog, code to display name.
func (s *TranslateService) Languages() map[string]string {
	return supportedLanguages
}

func (s *TranslateService) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	if _, ok := supportedLanguages[targetLang]; !ok {
		return "", ErrUnsupportedLanguage
	}

	translated, err := s.translator.Translate(ctx, text, targetLang)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return translated, nil
}

// TranslateAnalysis walks every textual field of an analysis payload and
// replaces it with its translation. Empty fields are passed through
// without a translation call; metadata fields are copied untranslated.
// Any translation failure aborts the whole pass.
func (s *TranslateService) TranslateAnalysis(ctx context.Context, analysis *dto.AnalysisResponse, targetLang string) (*dto.AnalysisResponse, error) {
	if _, ok := supportedLanguages[targetLang]; !ok {
		return nil, ErrUnsupportedLanguage
	}

	out := &dto.AnalysisResponse{
		DocumentID:       analysis.DocumentID,
		Title:            analysis.Title,
		AnalyzedAt:       analysis.AnalyzedAt,
		KeyTerms:         []models.KeyTerm{},
		ImportantClauses: []models.ImportantClause{},
		RisksAndConcerns: []models.RiskConcern{},
		UnclearItems:     []string{},
	}

	var err error
	if out.PlainSummary, err = s.translateField(ctx, analysis.PlainSummary, targetLang); err != nil {
		return nil, err
	}

	for _, term := range analysis.KeyTerms {
		translated := models.KeyTerm{}
		if translated.Term, err = s.translateField(ctx, term.Term, targetLang); err != nil {
			return nil, err
		}
		if translated.Explanation, err = s.translateField(ctx, term.Explanation, targetLang); err != nil {
			return nil, err
		}
		out.KeyTerms = append(out.KeyTerms, translated)
	}

	for _, clause := range analysis.ImportantClauses {
		translated := models.ImportantClause{}
		if translated.Clause, err = s.translateField(ctx, clause.Clause, targetLang); err != nil {
			return nil, err
		}
		if translated.Explanation, err = s.translateField(ctx, clause.Explanation, targetLang); err != nil {
			return nil, err
		}
		// Section references are often empty; skip the call for those
		if translated.Section, err = s.translateField(ctx, clause.Section, targetLang); err != nil {
			return nil, err
		}
		out.ImportantClauses = append(out.ImportantClauses, translated)
	}

	for _, risk := range analysis.RisksAndConcerns {
		translated := models.RiskConcern{}
		if translated.Risk, err = s.translateField(ctx, risk.Risk, targetLang); err != nil {
			return nil, err
		}
		if translated.Explanation, err = s.translateField(ctx, risk.Explanation, targetLang); err != nil {
			return nil, err
		}
		out.RisksAndConcerns = append(out.RisksAndConcerns, translated)
	}

	for _, item := range analysis.UnclearItems {
		translated, err := s.translateField(ctx, item, targetLang)
		if err != nil {
			return nil, err
		}
		out.UnclearItems = append(out.UnclearItems, translated)
	}

	return out, nil
}

// translateField translates one string, passing empty values through
// without an external call.
func (s *TranslateService) translateField(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}

	translated, err := s.translator.Translate(ctx, text, targetLang)
	if err != nil {
		s.logger.Error("Translation call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return translated, nil
}
