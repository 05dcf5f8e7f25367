package service

import (
	"context"

	"elotec-nettbutikk/models"
)

// PreviewServiceInterface defines the contract for rendering export previews
type PreviewServiceInterface interface {
	RenderUploadPage() (string, error)
	RenderPreviewHTML(session *models.ExportSession) (string, error)
	// GeneratePDF prints the preview page of a session to PDF
	GeneratePDF(ctx context.Context, sessionID string) ([]byte, error)
}
