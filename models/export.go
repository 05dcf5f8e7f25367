package models

import "time"

// CatalogTable is a decoded upload: header in file order plus one row per record
type CatalogTable struct {
	Header []string
	Rows   []ProductRow
}

// ExportSession holds one processed upload until it expires
type ExportSession struct {
	ID                string
	FileName          string
	CreatedAt         time.Time
	Groups            []MasterGroup
	FieldNames        []string
	ExtraFields       []string
	DescriptionFields []string
	Stats             GroupStats
}

// MasterSummary is the JSON view of one master group
// Example: {"base": "A", "number": "A-X", "name": "Lamp", "variants": ["A-1", "A-2"], "colors": ["Hvit", "Sort"]}
type MasterSummary struct {
	Base     string   `json:"base"`
	Number   string   `json:"number"`
	Name     string   `json:"name"`
	Variants []string `json:"variants"`
	Colors   []string `json:"colors"`
}

// ExportSessionResponse is returned after an upload is processed
type ExportSessionResponse struct {
	ID          string          `json:"id"`
	FileName    string          `json:"fileName"`
	CreatedAt   string          `json:"createdAt"`
	FieldNames  []string        `json:"fieldNames"`
	ExtraFields []string        `json:"extraFields"`
	Masters     []MasterSummary `json:"masters"`
	Stats       GroupStats      `json:"stats"`
	PreviewURL  string          `json:"previewUrl"`
	DownloadURL string          `json:"downloadUrl"`
}

// ExportSelection is what the user picked in the preview
// Bases nil means every group; Fields are the requested extra columns
type ExportSelection struct {
	Bases  []string
	Fields []string
}

// ExportFile is one serialized export
type ExportFile struct {
	MainTSV        string
	DescriptionTSV string
	Combined       string
}

// DriveFile is an export file found in a Google Drive folder
type DriveFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}
