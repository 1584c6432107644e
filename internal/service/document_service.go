package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"dejargonizer/internal/models"
	"dejargonizer/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNoTextInPDF is the user-facing failure for a PDF that produced no
	// usable text.
	ErrNoTextInPDF = errors.New("could not extract text from PDF: the PDF might be scanned, image-only, or empty")
	// ErrNoTextInImage is the user-facing failure for an image the OCR
	// engine could not read.
	ErrNoTextInImage = errors.New("could not extract text from image: the image might be unclear or empty")
)

// A document's stored text must be at least this long after trimming.
const minExtractedTextLength = 10

type DocumentService struct {
	docStore      DocumentStore
	analysisStore AnalysisStore
	extractor     *ExtractService
	logger        *zap.Logger
}

func NewDocumentService(
	docStore DocumentStore,
	analysisStore AnalysisStore,
	extractor *ExtractService,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		docStore:      docStore,
		analysisStore: analysisStore,
		extractor:     extractor,
		logger:        logger,
	}
}

// Upload extracts text from the fully-buffered file bytes and stores a new
// document. The file itself is not retained; the extracted text is the
// document.
func (s *DocumentService) Upload(ctx context.Context, userID uuid.UUID, data []byte, filename, title, docType string) (*models.Document, error) {
	text, source, err := s.extractor.Extract(data, filename)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if len(text) < minExtractedTextLength {
		if source == models.DocumentSourceImage {
			return nil, ErrNoTextInImage
		}
		return nil, ErrNoTextInPDF
	}

	if title == "" {
		title = filename
	}
	if docType == "" {
		docType = models.DefaultDocumentType
	}

	doc := &models.Document{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Type:       docType,
		Text:       sanitizeUTF8(text),
		Source:     source,
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
		Analyzed:   false,
	}

	if err := s.docStore.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("Document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("source", string(source)),
		zap.Int("text_length", len(doc.Text)),
	)

	return doc, nil
}

// List returns the caller's documents, newest first.
func (s *DocumentService) List(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	return s.docStore.ListByUser(ctx, userID)
}

func (s *DocumentService) Get(ctx context.Context, documentID, userID uuid.UUID) (*models.Document, error) {
	doc, err := s.docStore.GetByIDForUser(ctx, documentID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document and its analysis, if any.
func (s *DocumentService) Delete(ctx context.Context, documentID, userID uuid.UUID) error {
	if err := s.docStore.DeleteForUser(ctx, documentID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if err := s.analysisStore.DeleteByDocumentID(ctx, documentID); err != nil {
		// The document is already gone; an orphaned analysis is
		// unreachable through the API, so just log it
		s.logger.Warn("Failed to delete analysis for document",
			zap.String("document_id", documentID.String()),
			zap.Error(err),
		)
	}

	return nil
}
