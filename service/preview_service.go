package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"elotec-nettbutikk/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PreviewService renders the upload page and the grouping preview
// Implements PreviewServiceInterface
type PreviewService struct {
	baseURL   string // Base URL the browser uses to load the preview (e.g., "http://localhost:8080")
	templates *template.Template
}

// NewPreviewService creates a new PreviewService
func NewPreviewService(baseURL string) (*PreviewService, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"cell":   func(row models.ProductRow, field string) string { return row.Get(field) },
		"isBase": models.IsBaseField,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &PreviewService{
		baseURL:   baseURL,
		templates: tmpl,
	}, nil
}

// Ensure PreviewService implements PreviewServiceInterface
var _ PreviewServiceInterface = (*PreviewService)(nil)

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// RenderUploadPage renders the upload form
func (s *PreviewService) RenderUploadPage() (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "upload.html", nil); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// RenderPreviewHTML renders one table per master group (master row first, then its
// variants) with checkboxes for the groups and the optional columns
func (s *PreviewService) RenderPreviewHTML(session *models.ExportSession) (string, error) {
	templateData := struct {
		Session           *models.ExportSession
		Fields            []string
		ExtraFields       []string
		DescriptionFields []string
		CreatedAt         string
	}{
		Session:           session,
		Fields:            session.FieldNames,
		ExtraFields:       session.ExtraFields,
		DescriptionFields: session.DescriptionFields,
		CreatedAt:         session.CreatedAt.Format("2006-01-02 15:04"),
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "preview.html", templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF generates a PDF of the preview page using chromedp
func (s *PreviewService) GeneratePDF(ctx context.Context, sessionID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	previewURL := fmt.Sprintf("%s/admin/exports/%s/preview", s.baseURL, sessionID)
	log.Printf("🖨️  GeneratePDF: rendering %s", previewURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(1400, 2000),
		chromedp.Navigate(previewURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 landscape, the tables are wide
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
