package dto

type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	TargetLang     string `json:"target_lang"`
}

type TranslateAnalysisRequest struct {
	Analysis   *AnalysisResponse `json:"analysis"`
	TargetLang string            `json:"target_lang"`
}

type TranslateAnalysisResponse struct {
	TranslatedAnalysis AnalysisResponse `json:"translated_analysis"`
	TargetLang         string           `json:"target_lang"`
}

type LanguagesResponse struct {
	Languages map[string]string `json:"languages"`
}
