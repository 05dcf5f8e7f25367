package service

import (
	"context"

	"elotec-nettbutikk/models"
)

// ExportServiceInterface defines the contract for master/variant export operations
type ExportServiceInterface interface {
	// Process decodes an uploaded catalog export, groups its variants and stores the result
	Process(ctx context.Context, fileName string, data []byte) (*models.ExportSession, error)
	GetSession(id string) (*models.ExportSession, error)
	// BuildExport serializes the selected groups and columns of a stored session
	BuildExport(ctx context.Context, id string, selection models.ExportSelection) (*models.ExportFile, error)
}
