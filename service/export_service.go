package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"elotec-nettbutikk/metrics"
	"elotec-nettbutikk/models"
	"elotec-nettbutikk/variant"
)

// ErrSessionNotFound is returned for unknown or expired export sessions
var ErrSessionNotFound = errors.New("export session not found")

// ExportService turns uploaded catalog exports into master/variant import files
// Implements ExportServiceInterface
type ExportService struct {
	store   *SessionStore
	metrics *metrics.Registry
}

// NewExportService creates a new ExportService
func NewExportService(store *SessionStore, registry *metrics.Registry) *ExportService {
	return &ExportService{
		store:   store,
		metrics: registry,
	}
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)

// ProcessCatalog runs the grouping pipeline on a decoded table without storing anything
func ProcessCatalog(fileName string, table *models.CatalogTable) *models.ExportSession {
	extraFields := models.ExtraFields(table.Header)
	groups, stats := variant.Aggregate(table.Rows, extraFields)

	return &models.ExportSession{
		FileName:          fileName,
		Groups:            groups,
		FieldNames:        variant.FieldNames(extraFields),
		ExtraFields:       extraFields,
		DescriptionFields: models.DescriptionFields,
		Stats:             stats,
	}
}

// Process decodes an uploaded catalog export, groups its variants and stores the result
func (s *ExportService) Process(ctx context.Context, fileName string, data []byte) (*models.ExportSession, error) {
	start := time.Now()
	log.Printf("🔄 Processing catalog export %s (%d bytes)", fileName, len(data))

	table, err := DecodeCatalog(fileName, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", fileName, err)
	}

	session := ProcessCatalog(fileName, table)
	s.store.Save(session)

	s.metrics.ObserveGroupStats(session.Stats)
	s.metrics.ProcessDuration.Observe(time.Since(start).Seconds())

	st := session.Stats
	log.Printf("✅ Processed %s: %d rows, %d masters built (skipped: %d existing masters, %d unusable, %d without color, %d singletons) session=%s",
		fileName, st.RowsRead, st.MasterGroups, st.ExistingMasters, st.UnusableRows, st.UnresolvedColors, st.SingletonGroups, session.ID)
	return session, nil
}

// GetSession returns a stored session
func (s *ExportService) GetSession(id string) (*models.ExportSession, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// BuildExport serializes the selected groups and columns of a stored session
func (s *ExportService) BuildExport(ctx context.Context, id string, selection models.ExportSelection) (*models.ExportFile, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	groups := FilterGroups(session.Groups, selection.Bases)
	fields := SelectFields(session.FieldNames, selection.Fields)

	file, err := GenerateTSV(groups, fields, session.DescriptionFields)
	if err != nil {
		return nil, fmt.Errorf("failed to generate export: %w", err)
	}

	log.Printf("📦 Built export for session %s: %d/%d masters, %d columns", id, len(groups), len(session.Groups), len(fields))
	return file, nil
}

// Summaries returns the JSON view of a session's master groups
func Summaries(session *models.ExportSession) []models.MasterSummary {
	summaries := make([]models.MasterSummary, 0, len(session.Groups))
	for _, g := range session.Groups {
		summary := models.MasterSummary{
			Base:   g.Base,
			Number: g.MasterNumber(),
			Name:   g.MasterRow.Get(models.ColName),
		}
		for _, v := range g.VariantRows {
			summary.Variants = append(summary.Variants, v.Get(models.ColNumber))
			summary.Colors = append(summary.Colors, v.Get(models.ColColor))
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
