package service

import (
	"errors"
	"strings"
	"testing"

	"dejargonizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStubExtractService() *ExtractService {
	return &ExtractService{
		ocrLanguage: "eng",
		logger:      zap.NewNop(),
		pdfPrimary: func(data []byte) (string, error) {
			return "", errors.New("not stubbed")
		},
		pdfSecondary: func(data []byte) (string, error) {
			return "", errors.New("not stubbed")
		},
		imageOCR: func(data []byte, language string) (string, error) {
			return "", errors.New("not stubbed")
		},
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	svc := newStubExtractService()

	_, _, err := svc.Extract([]byte("data"), "notes.docx")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_ExtensionIsCaseInsensitive(t *testing.T) {
	svc := newStubExtractService()
	svc.pdfPrimary = func(data []byte) (string, error) {
		return strings.Repeat("lorem ipsum ", 20), nil
	}

	text, source, err := svc.Extract([]byte("%PDF"), "CONTRACT.PDF")

	require.NoError(t, err)
	assert.Equal(t, models.DocumentSourcePDF, source)
	assert.NotEmpty(t, text)
}

func TestExtract_PDFPrimarySufficient(t *testing.T) {
	svc := newStubExtractService()
	long := strings.Repeat("This lease binds the tenant. ", 10)
	svc.pdfPrimary = func(data []byte) (string, error) {
		return long, nil
	}
	secondaryCalled := false
	svc.pdfSecondary = func(data []byte) (string, error) {
		secondaryCalled = true
		return "", nil
	}

	text, source, err := svc.Extract([]byte("%PDF"), "lease.pdf")

	require.NoError(t, err)
	assert.Equal(t, models.DocumentSourcePDF, source)
	assert.Equal(t, strings.TrimSpace(long), text)
	assert.False(t, secondaryCalled)
}

func TestExtract_PDFShortPrimaryFallsBack(t *testing.T) {
	svc := newStubExtractService()
	svc.pdfPrimary = func(data []byte) (string, error) {
		return "   too short   ", nil
	}
	fallback := strings.Repeat("Recovered page text. ", 10)
	svc.pdfSecondary = func(data []byte) (string, error) {
		return fallback, nil
	}

	text, _, err := svc.Extract([]byte("%PDF"), "scan.pdf")

	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(fallback), text)
}

func TestExtract_PDFPrimaryErrorFallsBack(t *testing.T) {
	svc := newStubExtractService()
	svc.pdfPrimary = func(data []byte) (string, error) {
		return "", errors.New("mupdf: cannot parse")
	}
	fallback := strings.Repeat("Secondary got it. ", 10)
	svc.pdfSecondary = func(data []byte) (string, error) {
		return fallback, nil
	}

	text, _, err := svc.Extract([]byte("%PDF"), "odd.pdf")

	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(fallback), text)
}

func TestExtract_PDFBothExtractorsFail(t *testing.T) {
	svc := newStubExtractService()
	svc.pdfPrimary = func(data []byte) (string, error) {
		return "", errors.New("primary broke")
	}
	svc.pdfSecondary = func(data []byte) (string, error) {
		return "", errors.New("secondary broke")
	}

	_, _, err := svc.Extract([]byte("%PDF"), "broken.pdf")

	require.Error(t, err)
	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestExtract_ShortFallbackResultIsKept(t *testing.T) {
	// The secondary extractor runs once; its result is final even when it
	// is also below the fallback threshold.
	svc := newStubExtractService()
	svc.pdfPrimary = func(data []byte) (string, error) {
		return "", nil
	}
	svc.pdfSecondary = func(data []byte) (string, error) {
		return "tiny", nil
	}

	text, _, err := svc.Extract([]byte("%PDF"), "tiny.pdf")

	require.NoError(t, err)
	assert.Equal(t, "tiny", text)
}

func TestExtract_ImageDispatch(t *testing.T) {
	svc := newStubExtractService()
	var gotLanguage string
	svc.imageOCR = func(data []byte, language string) (string, error) {
		gotLanguage = language
		return "  OCR text from the photo  ", nil
	}

	text, source, err := svc.Extract([]byte("png-bytes"), "photo.PNG")

	require.NoError(t, err)
	assert.Equal(t, models.DocumentSourceImage, source)
	assert.Equal(t, "OCR text from the photo", text)
	assert.Equal(t, "eng", gotLanguage)
}

func TestExtract_ImageOCRErrorIsWrapped(t *testing.T) {
	svc := newStubExtractService()
	svc.imageOCR = func(data []byte, language string) (string, error) {
		return "", errors.New("tesseract: no text")
	}

	_, source, err := svc.Extract([]byte("jpg-bytes"), "blurry.jpg")

	require.Error(t, err)
	assert.Equal(t, models.DocumentSourceImage, source)
	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}
