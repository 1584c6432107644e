package handlers

import (
	"errors"

	"dejargonizer/internal/dto"
	"dejargonizer/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
	logger          *zap.Logger
}

func NewAnalysisHandler(analysisService *service.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// Analyze godoc
// @Summary Analyze a document
// @Description Run the analysis for a document, or return the cached one
// @Tags analysis
// @Produce json
// @Param documentId path string true "Document ID"
// @Security Bearer
// @Success 200 {object} dto.AnalysisResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/analyze/{documentId} [post]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	documentID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	analysis, err := h.analysisService.Analyze(c.Context(), documentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		case errors.Is(err, service.ErrUpstream):
			h.logger.Error("Analysis failed upstream", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Analysis service is unavailable, please try again later",
			})
		}
		h.logger.Error("Analysis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze document",
		})
	}

	return c.JSON(dto.NewAnalysisResponse(analysis))
}

// GetAnalysis godoc
// @Summary Fetch a cached analysis
// @Description Return the stored analysis without triggering generation
// @Tags analysis
// @Produce json
// @Param documentId path string true "Document ID"
// @Security Bearer
// @Success 200 {object} dto.AnalysisResponse
// @Failure 404 {object} map[string]string
// @Router /api/analysis/{documentId} [get]
func (h *AnalysisHandler) GetAnalysis(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	documentID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	analysis, err := h.analysisService.GetAnalysis(c.Context(), documentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		case errors.Is(err, service.ErrAnalysisNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Analysis not found",
			})
		}
		h.logger.Error("Failed to get analysis", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get analysis",
		})
	}

	return c.JSON(dto.NewAnalysisResponse(analysis))
}
