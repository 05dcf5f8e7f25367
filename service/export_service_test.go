package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"elotec-nettbutikk/metrics"
	"elotec-nettbutikk/models"
)

func newTestExportService() *ExportService {
	return NewExportService(NewSessionStore(time.Hour), metrics.NewRegistry())
}

func TestExportService_Process(t *testing.T) {
	s := newTestExportService()

	session, err := s.Process(context.Background(), "export.csv", []byte(catalogCSV))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if session.ID == "" {
		t.Fatal("session was not stored")
	}
	if len(session.Groups) != 1 || session.Groups[0].Base != "A" {
		t.Fatalf("unexpected groups: %+v", session.Groups)
	}
	if len(session.ExtraFields) != 1 || session.ExtraFields[0] != "Lager" {
		t.Errorf("ExtraFields = %v, want [Lager]", session.ExtraFields)
	}
	if session.Stats.RowsRead != 3 || session.Stats.SingletonGroups != 1 {
		t.Errorf("unexpected stats: %+v", session.Stats)
	}

	stored, err := s.GetSession(session.ID)
	if err != nil || stored != session {
		t.Fatalf("GetSession() = %v, %v", stored, err)
	}
}

func TestExportService_ProcessInvalidFile(t *testing.T) {
	s := newTestExportService()
	if _, err := s.Process(context.Background(), "export.csv", nil); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

func TestExportService_BuildExport(t *testing.T) {
	s := newTestExportService()
	session, err := s.Process(context.Background(), "export.csv", []byte(catalogCSV))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	file, err := s.BuildExport(context.Background(), session.ID, models.ExportSelection{Fields: []string{"Lager"}})
	if err != nil {
		t.Fatalf("BuildExport() error = %v", err)
	}
	header := strings.SplitN(file.MainTSV, "\r\n", 2)[0]
	if !strings.HasSuffix(header, "\tLager") {
		t.Errorf("requested extra column missing from header %q", header)
	}
	if !strings.Contains(file.MainTSV, "A-X\t") {
		t.Error("master row missing from export")
	}

	file, err = s.BuildExport(context.Background(), session.ID, models.ExportSelection{Bases: []string{}})
	if err != nil {
		t.Fatalf("BuildExport() error = %v", err)
	}
	if strings.Contains(file.MainTSV, "A-X") || strings.Contains(file.MainTSV, "Lager") {
		t.Errorf("empty selection should export header only, got %q", file.MainTSV)
	}
}

func TestExportService_UnknownSession(t *testing.T) {
	s := newTestExportService()
	if _, err := s.GetSession("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := s.BuildExport(context.Background(), "nope", models.ExportSelection{}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("BuildExport() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSummaries(t *testing.T) {
	session := ProcessCatalog("export.csv", mustDecode(t, catalogCSV))
	summaries := Summaries(session)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	got := summaries[0]
	if got.Number != "A-X" || got.Name != "Lamp" {
		t.Errorf("unexpected summary %+v", got)
	}
	if strings.Join(got.Variants, ",") != "A-1,A-2" || strings.Join(got.Colors, ",") != "Hvit,Sort" {
		t.Errorf("unexpected variants %v / colors %v", got.Variants, got.Colors)
	}
}

func mustDecode(t *testing.T, csv string) *models.CatalogTable {
	t.Helper()
	table, err := DecodeCatalog("export.csv", []byte(csv))
	if err != nil {
		t.Fatalf("DecodeCatalog() error = %v", err)
	}
	return table
}
