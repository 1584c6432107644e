package dto

import (
	"time"

	"dejargonizer/internal/models"
)

type UploadResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
}

type DocumentResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	Source     string `json:"source"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
	Analyzed   bool   `json:"analyzed"`
	AnalyzedAt string `json:"analyzed_at,omitempty"`
}

func NewDocumentResponse(doc *models.Document, includeText bool) DocumentResponse {
	resp := DocumentResponse{
		ID:         doc.ID.String(),
		Title:      doc.Title,
		Type:       doc.Type,
		Source:     string(doc.Source),
		Filename:   doc.Filename,
		UploadedAt: doc.UploadedAt.Format(time.RFC3339),
		Analyzed:   doc.Analyzed,
	}
	if includeText {
		resp.Text = doc.Text
	}
	if doc.AnalyzedAt != nil {
		resp.AnalyzedAt = doc.AnalyzedAt.Format(time.RFC3339)
	}
	return resp
}
