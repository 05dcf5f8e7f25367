package service

import "elotec-nettbutikk/models"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListExportFiles(folderID string) ([]models.DriveFile, error)
	// DownloadFile returns the file name and content; Google Sheets are exported as CSV
	DownloadFile(fileID string) (string, []byte, error)
}
