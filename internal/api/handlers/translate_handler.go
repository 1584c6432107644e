package handlers

import (
	"errors"

	"dejargonizer/internal/dto"
	"dejargonizer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TranslateHandler struct {
	translateService *service.TranslateService
	logger           *zap.Logger
}

func NewTranslateHandler(translateService *service.TranslateService, logger *zap.Logger) *TranslateHandler {
	return &TranslateHandler{
		translateService: translateService,
		logger:           logger,
	}
}

// TranslateText godoc
// @Summary Translate a piece of text
// @Tags translate
// @Accept json
// @Produce json
// @Param request body dto.TranslateRequest true "Text and target language"
// @Security Bearer
// @Success 200 {object} dto.TranslateResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/translate [post]
func (h *TranslateHandler) TranslateText(c *fiber.Ctx) error {
	var req dto.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No text provided",
		})
	}
	if req.TargetLang == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No target language provided",
		})
	}

	translated, err := h.translateService.TranslateText(c.Context(), req.Text, req.TargetLang)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedLanguage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported target language",
			})
		}
		h.logger.Error("Translation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Translation service is unavailable, please try again later",
		})
	}

	return c.JSON(dto.TranslateResponse{
		TranslatedText: translated,
		TargetLang:     req.TargetLang,
	})
}

// TranslateAnalysis godoc
// @Summary Translate an analysis field by field
// @Tags translate
// @Accept json
// @Produce json
// @Param request body dto.TranslateAnalysisRequest true "Analysis and target language"
// @Security Bearer
// @Success 200 {object} dto.TranslateAnalysisResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/translate-analysis [post]
func (h *TranslateHandler) TranslateAnalysis(c *fiber.Ctx) error {
	var req dto.TranslateAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Analysis == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No analysis provided",
		})
	}
	if req.TargetLang == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No target language provided",
		})
	}

	translated, err := h.translateService.TranslateAnalysis(c.Context(), req.Analysis, req.TargetLang)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedLanguage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported target language",
			})
		}
		h.logger.Error("Analysis translation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Translation service is unavailable, please try again later",
		})
	}

	return c.JSON(dto.TranslateAnalysisResponse{
		TranslatedAnalysis: *translated,
		TargetLang:         req.TargetLang,
	})
}

// Languages godoc
// @Summary List supported translation languages
// @Tags translate
// @Produce json
// @Success 200 {object} dto.LanguagesResponse
// @Router /api/languages [get]
func (h *TranslateHandler) Languages(c *fiber.Ctx) error {
	return c.JSON(dto.LanguagesResponse{
		Languages: h.translateService.Languages(),
	})
}
