package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"elotec-nettbutikk/models"
)

// utf8BOM is stripped from the start of CSV uploads (Excel writes it)
const utf8BOM = "\ufeff"

// zipMagic starts every .xlsx file
var zipMagic = []byte("PK\x03\x04")

// DecodeCatalog decodes an uploaded catalog export into a header and rows.
// .xlsx workbooks are read from their first sheet, everything else as comma separated text.
// Text that is not valid UTF-8 is decoded as Windows-1252, the encoding Excel uses for
// Norwegian CSV exports.
func DecodeCatalog(fileName string, data []byte) (*models.CatalogTable, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("file %s is empty", fileName)
	}

	if isWorkbook(fileName, data) {
		return decodeXLSX(data)
	}
	return decodeCSV(data)
}

func isWorkbook(fileName string, data []byte) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == ".xlsx" || ext == ".xlsm" {
		return true
	}
	return ext != ".csv" && bytes.HasPrefix(data, zipMagic)
}

func decodeCSV(data []byte) (*models.CatalogTable, error) {
	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		log.Printf("⚠️  DecodeCatalog: input is not valid UTF-8, decoding as Windows-1252")
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	if !hasColumns(header) {
		return nil, fmt.Errorf("file has no header row")
	}

	table := &models.CatalogTable{Header: header}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		table.Rows = append(table.Rows, toRow(header, record))
	}

	return table, nil
}

func decodeXLSX(data []byte) (*models.CatalogTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(excelRows) == 0 || !hasColumns(excelRows[0]) {
		return nil, fmt.Errorf("file has no header row")
	}

	header := excelRows[0]
	table := &models.CatalogTable{Header: header}
	for _, record := range excelRows[1:] {
		if isBlankRecord(record) {
			continue
		}
		table.Rows = append(table.Rows, toRow(header, record))
	}

	return table, nil
}

// toRow maps a record onto the header; missing cells become "", surplus cells are ignored
func toRow(header, record []string) models.ProductRow {
	row := make(models.ProductRow, len(header))
	for i, column := range header {
		if i < len(record) {
			row[column] = record[i]
		} else {
			row[column] = ""
		}
	}
	return row
}

func hasColumns(header []string) bool {
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			return true
		}
	}
	return false
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
