package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"elotec-nettbutikk/metrics"
	"elotec-nettbutikk/models"
	"elotec-nettbutikk/service"
)

const testCSV = "Nummer,Navn,Lager\n" +
	"A-1,Lamp Black,5\n" +
	"A-2,Lamp White,7\n" +
	"B-3,Spot,1\n" +
	"C-1,Bord,2\n" +
	"C-2,Bord,3\n"

type fakePreviewService struct {
	pdf    []byte
	pdfErr error
}

func (f *fakePreviewService) RenderUploadPage() (string, error) {
	return `<form name="upload"></form>`, nil
}

func (f *fakePreviewService) RenderPreviewHTML(session *models.ExportSession) (string, error) {
	return "preview " + session.ID, nil
}

func (f *fakePreviewService) GeneratePDF(ctx context.Context, sessionID string) ([]byte, error) {
	return f.pdf, f.pdfErr
}

func newTestController(t *testing.T) (*ExportController, *service.ExportService, *metrics.Registry) {
	t.Helper()
	registry := metrics.NewRegistry()
	exportService := service.NewExportService(service.NewSessionStore(time.Hour), registry)
	preview := &fakePreviewService{pdf: []byte("%PDF-1.4")}
	return NewExportController(exportService, preview, registry, 1<<20), exportService, registry
}

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(content))
	mw.Close()
	return &body, mw.FormDataContentType()
}

func processed(t *testing.T, s *service.ExportService) *models.ExportSession {
	t.Helper()
	session, err := s.Process(context.Background(), "export.csv", []byte(testCSV))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	return session
}

func TestUpload_RedirectsToPreview(t *testing.T) {
	c, _, _ := newTestController(t)
	body, contentType := multipartUpload(t, "export.csv", testCSV)

	req := httptest.NewRequest(http.MethodPost, "/admin/exports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c.Upload(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/admin/exports/") || !strings.HasSuffix(loc, "/preview") {
		t.Errorf("Location = %q", loc)
	}
}

func TestUpload_JSON(t *testing.T) {
	c, _, _ := newTestController(t)
	body, contentType := multipartUpload(t, "export.csv", testCSV)

	req := httptest.NewRequest(http.MethodPost, "/admin/exports", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	c.Upload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var resp models.ExportSessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == "" || len(resp.Masters) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Masters[0].Number != "A-X" || resp.Masters[1].Number != "C-X" {
		t.Errorf("unexpected masters %+v", resp.Masters)
	}
	if resp.Stats.SingletonGroups != 1 {
		t.Errorf("unexpected stats %+v", resp.Stats)
	}
}

func TestUpload_Errors(t *testing.T) {
	c, _, _ := newTestController(t)

	rec := httptest.NewRecorder()
	c.Upload(rec, httptest.NewRequest(http.MethodGet, "/admin/exports", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}

	body, contentType := multipartUpload(t, "export.csv", "")
	req := httptest.NewRequest(http.MethodPost, "/admin/exports", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	c.Upload(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty file status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/exports", strings.NewReader("x"))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	c.Upload(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-multipart status = %d, want 400", rec.Code)
	}
}

func TestRoute_GetSession(t *testing.T) {
	c, s, _ := newTestController(t)
	session := processed(t, s)

	rec := httptest.NewRecorder()
	c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp models.ExportSessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != session.ID || len(resp.ExtraFields) != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestRoute_UnknownSession(t *testing.T) {
	c, _, _ := newTestController(t)
	for _, path := range []string{
		"/admin/exports/missing",
		"/admin/exports/missing/preview",
		"/admin/exports/missing/tsv",
		"/admin/exports/missing/pdf",
	} {
		rec := httptest.NewRecorder()
		c.Route(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestRoute_Preview(t *testing.T) {
	c, s, _ := newTestController(t)
	session := processed(t, s)

	rec := httptest.NewRecorder()
	c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID+"/preview", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "preview "+session.ID {
		t.Fatalf("status = %d body = %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRoute_TSVParts(t *testing.T) {
	c, s, registry := newTestController(t)
	session := processed(t, s)

	tests := []struct {
		query      string
		wantStatus int
		wantPrefix string
	}{
		{"part=main", http.StatusOK, "Nummer\tNavn\t"},
		{"part=description", http.StatusOK, "Nummer\tSalgstekst (Norsk)\tBeskrivelse (Norsk)"},
		{"", http.StatusOK, "Nummer\tNavn\t"},
		{"part=bogus", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID+"/tsv?"+tt.query, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.wantPrefix) {
				t.Errorf("body starts with %q, want %q", rec.Body.String(), tt.wantPrefix)
			}
		})
	}

	if got := testutil.ToFloat64(registry.Exports.WithLabelValues(PartCombined)); got != 1 {
		t.Errorf("combined exports = %v, want 1", got)
	}
}

func TestRoute_TSVSelection(t *testing.T) {
	c, s, _ := newTestController(t)
	session := processed(t, s)

	rec := httptest.NewRecorder()
	c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID+"/tsv?part=main&base=C&field=Lager", nil))
	body := rec.Body.String()
	if strings.Contains(body, "A-X") || !strings.Contains(body, "C-X") {
		t.Errorf("base filter not applied: %q", body)
	}
	if header := strings.SplitN(body, "\r\n", 2)[0]; !strings.HasSuffix(header, "\tLager") {
		t.Errorf("field selection not applied: %q", header)
	}
}

func TestRoute_Download(t *testing.T) {
	c, s, _ := newTestController(t)
	session := processed(t, s)

	form := url.Values{"groups": {"selected"}, "base": {"A"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/exports/"+session.ID+"/download", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	c.Route(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, service.ExportFileName) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "A-X") || strings.Contains(body, "C-X") {
		t.Errorf("unexpected download %q", body)
	}

	// every group unchecked
	form = url.Values{"groups": {"selected"}}
	req = httptest.NewRequest(http.MethodPost, "/admin/exports/"+session.ID+"/download", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	c.Route(rec, req)
	if strings.Contains(rec.Body.String(), "-X") {
		t.Errorf("expected no masters, got %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID+"/download", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET download status = %d, want 405", rec.Code)
	}
}

func TestRoute_PDF(t *testing.T) {
	c, s, _ := newTestController(t)
	session := processed(t, s)

	rec := httptest.NewRecorder()
	c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID+"/pdf", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("status = %d, Content-Type = %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	c.previewService = &fakePreviewService{pdfErr: errors.New("chrome not found")}
	rec = httptest.NewRecorder()
	c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID+"/pdf", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRoute_UnknownAction(t *testing.T) {
	c, s, _ := newTestController(t)
	session := processed(t, s)

	rec := httptest.NewRecorder()
	c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID+"/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	c.Route(rec, httptest.NewRequest(http.MethodGet, "/admin/exports/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadPage(t *testing.T) {
	c, _, _ := newTestController(t)

	rec := httptest.NewRecorder()
	c.UploadPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "upload") {
		t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c.UploadPage(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

type ctxKey struct{}

// recordingExportService captures the context each call receives
type recordingExportService struct {
	*service.ExportService
	contexts []context.Context
}

func (s *recordingExportService) Process(ctx context.Context, fileName string, data []byte) (*models.ExportSession, error) {
	s.contexts = append(s.contexts, ctx)
	return s.ExportService.Process(ctx, fileName, data)
}

func (s *recordingExportService) BuildExport(ctx context.Context, id string, selection models.ExportSelection) (*models.ExportFile, error) {
	s.contexts = append(s.contexts, ctx)
	return s.ExportService.BuildExport(ctx, id, selection)
}

func TestHandlers_UseRequestContext(t *testing.T) {
	_, s, registry := newTestController(t)
	recorder := &recordingExportService{ExportService: s}
	c := NewExportController(recorder, &fakePreviewService{}, registry, 1<<20)
	drive := NewDriveController(&fakeDriveService{name: "export.csv", data: []byte(testCSV)}, recorder)

	withValue := func(req *http.Request) *http.Request {
		return req.WithContext(context.WithValue(req.Context(), ctxKey{}, "request"))
	}

	body, contentType := multipartUpload(t, "export.csv", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/admin/exports", body)
	req.Header.Set("Content-Type", contentType)
	c.Upload(httptest.NewRecorder(), withValue(req))

	session := processed(t, s)
	c.Route(httptest.NewRecorder(), withValue(httptest.NewRequest(http.MethodGet, "/admin/exports/"+session.ID+"/tsv", nil)))

	drive.Import(httptest.NewRecorder(), withValue(httptest.NewRequest(http.MethodPost, "/admin/drive/import?fileId=abc", nil)))

	if len(recorder.contexts) != 3 {
		t.Fatalf("expected 3 service calls, got %d", len(recorder.contexts))
	}
	for i, ctx := range recorder.contexts {
		if ctx.Value(ctxKey{}) != "request" {
			t.Errorf("call %d did not receive the request context", i)
		}
	}
}
