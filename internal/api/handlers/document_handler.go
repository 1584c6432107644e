package handlers

import (
	"errors"
	"io"

	"dejargonizer/internal/dto"
	"dejargonizer/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	docService *service.DocumentService
	logger     *zap.Logger
}

func NewDocumentHandler(docService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// Upload godoc
// @Summary Upload a document
// @Description Upload a PDF or image, extract its text and store it
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file (PDF or image)"
// @Param title formData string false "Document title, defaults to the filename"
// @Param type formData string false "Document type tag, defaults to general"
// @Security Bearer
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided. Please upload a PDF or image document.",
		})
	}
	if file.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	// Extraction needs random access over the whole file, so buffer it
	// completely before dispatching
	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	title := c.FormValue("title")
	docType := c.FormValue("type")

	doc, err := h.docService.Upload(c.Context(), userID, data, file.Filename, title, docType)
	if err != nil {
		var extractionErr *service.ExtractionError
		switch {
		case errors.Is(err, service.ErrUnsupportedFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported file format. Please upload a PDF or image document.",
			})
		case errors.Is(err, service.ErrNoTextInPDF), errors.Is(err, service.ErrNoTextInImage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.As(err, &extractionErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to process file: " + extractionErr.Error(),
			})
		}
		h.logger.Error("Failed to upload document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{
		Message:    "Document uploaded successfully",
		DocumentID: doc.ID.String(),
	})
}

// List godoc
// @Summary List documents
// @Description List the caller's documents, newest first
// @Tags documents
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.DocumentResponse
// @Failure 401 {object} map[string]string
// @Router /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	docs, err := h.docService.List(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list documents",
		})
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = dto.NewDocumentResponse(doc, true)
	}

	return c.JSON(responses)
}

// Get godoc
// @Summary Fetch one document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string
// @Router /api/documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	doc, err := h.docService.Get(c.Context(), documentID, userID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		h.logger.Error("Failed to get document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get document",
		})
	}

	return c.JSON(dto.NewDocumentResponse(doc, true))
}

// Delete godoc
// @Summary Delete a document
// @Description Delete a document and its analysis
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	if err := h.docService.Delete(c.Context(), documentID, userID); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		h.logger.Error("Failed to delete document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete document",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Document deleted successfully",
	})
}
