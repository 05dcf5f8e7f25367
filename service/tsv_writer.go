package service

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"elotec-nettbutikk/models"
)

// ExportFileName is the name of the combined download
const ExportFileName = "new_master_variant_products.tsv"

// GenerateTSV serializes the selected groups: the main file with fields as columns
// (master first, then its variants) and the description file. Columns missing from
// a row are written empty. Combined is main + blank line + description.
func GenerateTSV(groups []models.MasterGroup, fields []string, descFields []string) (*models.ExportFile, error) {
	var mainRows, descRows []models.ProductRow
	for _, g := range groups {
		mainRows = append(mainRows, g.Rows()...)
		descRows = append(descRows, g.DescRows...)
	}

	var mainBuf bytes.Buffer
	if err := WriteTSV(&mainBuf, fields, mainRows); err != nil {
		return nil, fmt.Errorf("failed to write main TSV: %w", err)
	}

	var descBuf bytes.Buffer
	if err := WriteTSV(&descBuf, descFields, descRows); err != nil {
		return nil, fmt.Errorf("failed to write description TSV: %w", err)
	}

	mainTSV := mainBuf.String()
	descTSV := descBuf.String()
	return &models.ExportFile{
		MainTSV:        mainTSV,
		DescriptionTSV: descTSV,
		Combined:       mainTSV + "\n" + descTSV,
	}, nil
}

// WriteTSV writes a header line and one tab separated line per row.
// Records end with CRLF; field content is written as is, so line breaks inside
// a value survive. Values containing a tab, quote or line break are quoted.
func WriteTSV(w io.Writer, fields []string, rows []models.ProductRow) error {
	bw := bufio.NewWriter(w)

	writeRecord(bw, fields)
	record := make([]string, len(fields))
	for _, row := range rows {
		for i, f := range fields {
			record[i] = row.Get(f)
		}
		writeRecord(bw, record)
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, record []string) {
	// a lone empty value is quoted so the line is not blank
	if len(record) == 1 && record[0] == "" {
		w.WriteString(`""` + "\r\n")
		return
	}
	for i, field := range record {
		if i > 0 {
			w.WriteByte('\t')
		}
		if !strings.ContainsAny(field, "\t\"\r\n") {
			w.WriteString(field)
			continue
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\r\n")
}

// SelectFields returns fieldNames (in order) limited to the base fields plus the
// requested extra columns. Unknown requested names are ignored.
func SelectFields(fieldNames []string, requested []string) []string {
	wanted := make(map[string]bool, len(requested))
	for _, r := range requested {
		wanted[r] = true
	}

	selected := make([]string, 0, len(fieldNames))
	for _, f := range fieldNames {
		if models.IsBaseField(f) || wanted[f] {
			selected = append(selected, f)
		}
	}
	return selected
}

// FilterGroups keeps the groups whose base is listed, in their original order.
// A nil bases slice keeps every group.
func FilterGroups(groups []models.MasterGroup, bases []string) []models.MasterGroup {
	if bases == nil {
		return groups
	}
	keep := make(map[string]bool, len(bases))
	for _, b := range bases {
		keep[b] = true
	}
	filtered := make([]models.MasterGroup, 0, len(bases))
	for _, g := range groups {
		if keep[g.Base] {
			filtered = append(filtered, g)
		}
	}
	return filtered
}
