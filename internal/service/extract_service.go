package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"path/filepath"
	"strings"

	"dejargonizer/internal/models"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned before any extraction is attempted when
// the filename extension matches neither the PDF nor the image path.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractionError wraps any decode or parse failure from the underlying
// extraction libraries.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "extraction failed: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// A primary PDF extraction shorter than this (trimmed) is discarded in
// favor of one pass with the secondary extractor.
const pdfFallbackThreshold = 100

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

type ExtractService struct {
	ocrLanguage string
	logger      *zap.Logger

	// Extraction strategies, swappable in tests.
	pdfPrimary   func(data []byte) (string, error)
	pdfSecondary func(data []byte) (string, error)
	imageOCR     func(data []byte, language string) (string, error)
}

func NewExtractService(ocrLanguage string, logger *zap.Logger) *ExtractService {
	return &ExtractService{
		ocrLanguage:  ocrLanguage,
		logger:       logger,
		pdfPrimary:   extractPDFPrimary,
		pdfSecondary: extractPDFSecondary,
		imageOCR:     ocrImage,
	}
}

// Extract converts raw uploaded bytes into plain text. Dispatch is by
// filename extension; the returned source tells which path ran.
func (s *ExtractService) Extract(data []byte, filename string) (string, models.DocumentSource, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case ext == ".pdf":
		text, err := s.extractPDF(data)
		if err != nil {
			return "", models.DocumentSourcePDF, err
		}
		return text, models.DocumentSourcePDF, nil
	case imageExtensions[ext]:
		text, err := s.imageOCR(data, s.ocrLanguage)
		if err != nil {
			return "", models.DocumentSourceImage, &ExtractionError{Err: err}
		}
		return strings.TrimSpace(text), models.DocumentSourceImage, nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// extractPDF runs the layout-aware extractor first and falls back to the
// simpler page-text extractor when the result is too short to be a real
// body of text. Only one fallback hop is made.
func (s *ExtractService) extractPDF(data []byte) (string, error) {
	text, err := s.pdfPrimary(data)
	if err != nil {
		// Some PDFs the primary extractor cannot parse are still readable
		// by the secondary one.
		s.logger.Warn("Primary PDF extraction failed, trying secondary", zap.Error(err))
		text = ""
	}

	text = strings.TrimSpace(text)
	if len(text) < pdfFallbackThreshold {
		secondary, err := s.pdfSecondary(data)
		if err != nil {
			return "", &ExtractionError{Err: err}
		}
		text = strings.TrimSpace(secondary)
	}

	return text, nil
}

// extractPDFPrimary extracts page text with go-fitz, page by page, pages
// separated by a blank line.
func extractPDFPrimary(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var builder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
		}
		if strings.TrimSpace(pageText) != "" {
			builder.WriteString(pageText)
			builder.WriteString("\n\n")
		}
	}

	return builder.String(), nil
}

// extractPDFSecondary is the fallback strategy using a plain page-text
// reader that handles some PDFs go-fitz cannot.
func extractPDFSecondary(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		if strings.TrimSpace(pageText) != "" {
			builder.WriteString(pageText)
			builder.WriteString("\n\n")
		}
	}

	return builder.String(), nil
}

// ocrImage decodes the image, normalizes its color mode, and runs
// tesseract over the normalized pixels.
func ocrImage(data []byte, language string) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Tesseract is happiest with a plain RGB raster, so redraw whatever
	// color mode the decoder produced onto an RGBA canvas.
	normalized := image.NewRGBA(img.Bounds())
	draw.Draw(normalized, normalized.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, normalized); err != nil {
		return "", fmt.Errorf("failed to encode normalized image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			return "", fmt.Errorf("failed to set OCR language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to load image into OCR engine: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return text, nil
}
