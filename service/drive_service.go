package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"elotec-nettbutikk/models"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	mimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	mimeCSV         = "text/csv"
	mimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// exportMimeTypes are the Drive file types that can be read as a catalog export
var exportMimeTypes = map[string]bool{
	mimeCSV:                    true,
	"text/plain":               true,
	"application/csv":          true,
	mimeXLSX:                   true,
	mimeGoogleSheet:            true,
	"application/vnd.ms-excel": true,
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// IsExportMimeType reports whether a Drive file can be imported as a catalog export
func IsExportMimeType(mimeType string) bool {
	return exportMimeTypes[strings.ToLower(mimeType)]
}

// ListExportFiles lists the CSV, XLSX and Google Sheets files in a Drive folder
func (ds *DriveService) ListExportFiles(folderID string) ([]models.DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	var files []models.DriveFile
	for _, file := range allFiles {
		if !IsExportMimeType(file.MimeType) {
			continue
		}
		files = append(files, models.DriveFile{
			ID:       file.Id,
			Name:     file.Name,
			MimeType: file.MimeType,
		})
	}

	log.Printf("📂 Found %d export files (of %d) in folder %s", len(files), len(allFiles), folderID)
	return files, nil
}

// DownloadFile downloads an export file from Drive
func (ds *DriveService) DownloadFile(fileID string) (string, []byte, error) {
	meta, err := ds.client.Files.Get(fileID).Fields("id, name, mimeType").Do()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get file metadata: %w", err)
	}
	if !IsExportMimeType(meta.MimeType) {
		return "", nil, fmt.Errorf("file %s has unsupported type %s", meta.Name, meta.MimeType)
	}

	name := meta.Name
	var body io.ReadCloser
	if meta.MimeType == mimeGoogleSheet {
		resp, err := ds.client.Files.Export(fileID, mimeCSV).Download()
		if err != nil {
			return "", nil, fmt.Errorf("failed to export sheet: %w", err)
		}
		body = resp.Body
		if filepath.Ext(name) != ".csv" {
			name += ".csv"
		}
	} else {
		resp, err := ds.client.Files.Get(fileID).Download()
		if err != nil {
			return "", nil, fmt.Errorf("failed to download file: %w", err)
		}
		body = resp.Body
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file content: %w", err)
	}

	log.Printf("✓ Downloaded %s (%d bytes) from Drive", name, len(data))
	return name, data, nil
}
