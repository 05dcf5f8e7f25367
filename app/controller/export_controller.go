package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"elotec-nettbutikk/metrics"
	"elotec-nettbutikk/models"
	"elotec-nettbutikk/service"
)

// Export parts served by GET /admin/exports/{id}/tsv
const (
	PartMain        = "main"
	PartDescription = "description"
	PartCombined    = "combined"
)

// ExportController handles uploads, previews and downloads of master/variant exports
type ExportController struct {
	exportService  service.ExportServiceInterface
	previewService service.PreviewServiceInterface
	metrics        *metrics.Registry
	maxUploadBytes int64
}

// NewExportController creates a new ExportController
func NewExportController(
	exportService service.ExportServiceInterface,
	previewService service.PreviewServiceInterface,
	registry *metrics.Registry,
	maxUploadBytes int64,
) *ExportController {
	return &ExportController{
		exportService:  exportService,
		previewService: previewService,
		metrics:        registry,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadPage handles GET /
func (c *ExportController) UploadPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := c.previewService.RenderUploadPage()
	if err != nil {
		log.Printf("❌ UploadPage: Error rendering page: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// Upload handles POST /admin/exports (multipart field "file")
func (c *ExportController) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ Upload: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadBytes)
	if err := r.ParseMultipartForm(c.maxUploadBytes); err != nil {
		log.Printf("❌ Upload: Error parsing form: %v", err)
		http.Error(w, fmt.Sprintf("Invalid upload: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("❌ Upload: file field is required: %v", err)
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ Upload: Error reading file: %v", err)
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	log.Printf("📥 Upload: received %s (%d bytes)", header.Filename, len(data))
	session, err := c.exportService.Process(r.Context(), header.Filename, data)
	if err != nil {
		log.Printf("❌ Upload: Error processing %s: %v", header.Filename, err)
		http.Error(w, fmt.Sprintf("Failed to process file: %v", err), http.StatusBadRequest)
		return
	}

	respondWithSession(w, r, session)
}

// Route handles everything under /admin/exports/{id}
func (c *ExportController) Route(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/exports/"), "/")
	if path == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	id, action, _ := strings.Cut(path, "/")
	switch action {
	case "":
		c.GetSession(w, r, id)
	case "preview":
		c.Preview(w, r, id)
	case "tsv":
		c.TSV(w, r, id)
	case "download":
		c.Download(w, r, id)
	case "pdf":
		c.PDF(w, r, id)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// GetSession handles GET /admin/exports/{id}
func (c *ExportController) GetSession(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := c.lookupSession(w, id, "GetSession")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

// Preview handles GET /admin/exports/{id}/preview
func (c *ExportController) Preview(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := c.lookupSession(w, id, "Preview")
	if !ok {
		return
	}

	htmlContent, err := c.previewService.RenderPreviewHTML(session)
	if err != nil {
		log.Printf("❌ Preview: Error rendering HTML: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render preview: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		log.Printf("❌ Preview: Error writing HTML response: %v", err)
	}
}

// TSV handles GET /admin/exports/{id}/tsv?part=main|description|combined&base=..&field=..
func (c *ExportController) TSV(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	part := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("part")))
	if part == "" {
		part = PartCombined
	}
	if part != PartMain && part != PartDescription && part != PartCombined {
		log.Printf("❌ TSV: Invalid part: %s", part)
		http.Error(w, "Invalid part. Valid parts: main, description, combined", http.StatusBadRequest)
		return
	}

	file, ok := c.buildExport(w, r, id, "TSV")
	if !ok {
		return
	}

	content := file.Combined
	switch part {
	case PartMain:
		content = file.MainTSV
	case PartDescription:
		content = file.DescriptionTSV
	}

	c.metrics.Exports.WithLabelValues(part).Inc()
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}

// Download handles POST /admin/exports/{id}/download with the preview form
func (c *ExportController) Download(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, ok := c.buildExport(w, r, id, "Download")
	if !ok {
		return
	}

	c.metrics.Exports.WithLabelValues(PartCombined).Inc()
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", service.ExportFileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(file.Combined)); err != nil {
		log.Printf("❌ Download: Error writing response: %v", err)
	}
}

// PDF handles GET /admin/exports/{id}/pdf
func (c *ExportController) PDF(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := c.lookupSession(w, id, "PDF"); !ok {
		return
	}

	pdfData, err := c.previewService.GeneratePDF(r.Context(), id)
	if err != nil {
		log.Printf("❌ PDF: Error generating PDF: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	c.metrics.Exports.WithLabelValues("pdf").Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"masterprodukter_%s.pdf\"", id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		log.Printf("❌ PDF: Error writing PDF response: %v", err)
	}
}

func (c *ExportController) lookupSession(w http.ResponseWriter, id, funcName string) (*models.ExportSession, bool) {
	session, err := c.exportService.GetSession(id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			log.Printf("⚠️  %s: session %s not found", funcName, id)
			http.Error(w, "Export session not found or expired", http.StatusNotFound)
			return nil, false
		}
		log.Printf("❌ %s: Error loading session %s: %v", funcName, id, err)
		http.Error(w, fmt.Sprintf("Failed to load session: %v", err), http.StatusInternalServerError)
		return nil, false
	}
	return session, true
}

func (c *ExportController) buildExport(w http.ResponseWriter, r *http.Request, id, funcName string) (*models.ExportFile, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return nil, false
	}

	file, err := c.exportService.BuildExport(r.Context(), id, parseSelection(r))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			log.Printf("⚠️  %s: session %s not found", funcName, id)
			http.Error(w, "Export session not found or expired", http.StatusNotFound)
			return nil, false
		}
		log.Printf("❌ %s: Error building export: %v", funcName, err)
		http.Error(w, fmt.Sprintf("Failed to build export: %v", err), http.StatusInternalServerError)
		return nil, false
	}
	return file, true
}

// parseSelection reads the "base" and "field" values of a parsed request.
// The preview form sends groups=selected so that unchecking every group exports none.
func parseSelection(r *http.Request) models.ExportSelection {
	bases := r.Form["base"]
	if bases == nil && r.Form.Get("groups") == "selected" {
		bases = []string{}
	}
	return models.ExportSelection{
		Bases:  bases,
		Fields: r.Form["field"],
	}
}

func newSessionResponse(session *models.ExportSession) models.ExportSessionResponse {
	return models.ExportSessionResponse{
		ID:          session.ID,
		FileName:    session.FileName,
		CreatedAt:   session.CreatedAt.Format(time.RFC3339),
		FieldNames:  session.FieldNames,
		ExtraFields: session.ExtraFields,
		Masters:     service.Summaries(session),
		Stats:       session.Stats,
		PreviewURL:  fmt.Sprintf("/admin/exports/%s/preview", session.ID),
		DownloadURL: fmt.Sprintf("/admin/exports/%s/tsv?part=combined", session.ID),
	}
}

// respondWithSession redirects browsers to the preview and answers API clients with JSON
func respondWithSession(w http.ResponseWriter, r *http.Request, session *models.ExportSession) {
	resp := newSessionResponse(session)
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusCreated, resp)
		return
	}
	http.Redirect(w, r, resp.PreviewURL, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ writeJSON: Error encoding response: %v", err)
	}
}
