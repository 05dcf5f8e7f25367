// masterexport builds the master/variant import file from a catalog export without the web UI.
//
// Usage:
//
//	masterexport --input export.csv [--output out.tsv] [--field EXTRA]... [--exclude BASE]... [--part combined]
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"elotec-nettbutikk/models"
	"elotec-nettbutikk/service"
)

var version = "dev"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "masterexport",
		Usage:     "Group color variants of a catalog export into master products",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Catalog export (CSV or XLSX)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (stdout when empty)",
			},
			&cli.StringSliceFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "Extra column to include (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "Base article number to leave out (repeatable)",
			},
			&cli.StringFlag{
				Name:  "part",
				Value: "combined",
				Usage: "Part to write (combined, main, description)",
			},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	part := c.String("part")
	if part != "combined" && part != "main" && part != "description" {
		return fmt.Errorf("invalid part %q, valid parts: combined, main, description", part)
	}

	input := c.String("input")
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	table, err := service.DecodeCatalog(filepath.Base(input), data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", input, err)
	}

	session := service.ProcessCatalog(filepath.Base(input), table)
	groups := excludeGroups(session.Groups, c.StringSlice("exclude"))
	fields := service.SelectFields(session.FieldNames, c.StringSlice("field"))

	file, err := service.GenerateTSV(groups, fields, session.DescriptionFields)
	if err != nil {
		return fmt.Errorf("failed to generate export: %w", err)
	}

	content := file.Combined
	switch part {
	case "main":
		content = file.MainTSV
	case "description":
		content = file.DescriptionTSV
	}

	if output := c.String("output"); output != "" {
		if err := os.WriteFile(output, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if _, err := io.WriteString(c.App.Writer, content); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	printStats(c.App.ErrWriter, session.Stats, len(groups))
	return nil
}

func excludeGroups(groups []models.MasterGroup, excluded []string) []models.MasterGroup {
	if len(excluded) == 0 {
		return groups
	}
	skip := make(map[string]bool, len(excluded))
	// bases are upper-cased article numbers
	for _, b := range excluded {
		skip[strings.ToUpper(strings.TrimSpace(b))] = true
	}
	var kept []models.MasterGroup
	for _, g := range groups {
		if !skip[g.Base] {
			kept = append(kept, g)
		}
	}
	return kept
}

func printStats(w io.Writer, st models.GroupStats, written int) {
	fmt.Fprintf(w, "rows read:          %d\n", st.RowsRead)
	fmt.Fprintf(w, "existing masters:   %d\n", st.ExistingMasters)
	fmt.Fprintf(w, "unusable rows:      %d\n", st.UnusableRows)
	fmt.Fprintf(w, "without color:      %d\n", st.UnresolvedColors)
	fmt.Fprintf(w, "singleton groups:   %d\n", st.SingletonGroups)
	fmt.Fprintf(w, "master groups:      %d (%d written)\n", st.MasterGroups, written)
}
