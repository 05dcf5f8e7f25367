package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"elotec-nettbutikk/service"
)

// DriveController imports catalog exports stored in Google Drive
type DriveController struct {
	driveService  service.DriveServiceInterface
	exportService service.ExportServiceInterface
}

// NewDriveController creates a new DriveController
// driveService may be nil when no credentials are configured
func NewDriveController(driveService service.DriveServiceInterface, exportService service.ExportServiceInterface) *DriveController {
	return &DriveController{
		driveService:  driveService,
		exportService: exportService,
	}
}

func (c *DriveController) available(w http.ResponseWriter, funcName string) bool {
	if c.driveService == nil {
		log.Printf("⚠️  %s: Google Drive is not configured", funcName)
		http.Error(w, "Google Drive is not configured (set GOOGLE_APPLICATION_CREDENTIALS)", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// ListFiles handles GET /admin/drive/files?folderId=
func (c *DriveController) ListFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !c.available(w, "ListFiles") {
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		http.Error(w, "folderId parameter is required", http.StatusBadRequest)
		return
	}

	files, err := c.driveService.ListExportFiles(folderID)
	if err != nil {
		log.Printf("❌ ListFiles: Error listing folder %s: %v", folderID, err)
		http.Error(w, fmt.Sprintf("Failed to list files: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, files)
}

// Import handles POST /admin/drive/import?fileId=
func (c *DriveController) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !c.available(w, "Import") {
		return
	}

	fileID := strings.TrimSpace(r.URL.Query().Get("fileId"))
	if fileID == "" {
		http.Error(w, "fileId parameter is required", http.StatusBadRequest)
		return
	}

	name, data, err := c.driveService.DownloadFile(fileID)
	if err != nil {
		log.Printf("❌ Import: Error downloading %s: %v", fileID, err)
		http.Error(w, fmt.Sprintf("Failed to download file: %v", err), http.StatusBadGateway)
		return
	}

	log.Printf("📥 Import: downloaded %s from Drive", name)
	session, err := c.exportService.Process(r.Context(), name, data)
	if err != nil {
		log.Printf("❌ Import: Error processing %s: %v", name, err)
		http.Error(w, fmt.Sprintf("Failed to process file: %v", err), http.StatusBadRequest)
		return
	}

	respondWithSession(w, r, session)
}
