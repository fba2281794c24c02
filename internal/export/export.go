//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package export writes report rows as a console table or as csv, json,
// yaml or pdf files, and optionally publishes the files to S3.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// Output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPDF   = "pdf"
)

// Table is a rendered report: string cells for tabular formats and the
// typed rows for structured ones.
type Table struct {
	Kind    string
	Title   string
	Columns []string
	Rows    [][]string

	// Summary lists the column indexes shown on the console and in PDFs.
	Summary []int
	// Segments lists the column indexes holding segment labels.
	Segments []int

	Records any
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// project returns the header and rows restricted to the summary columns,
// capped at limit rows (0 = all).
func (t *Table) project(limit int) ([]string, [][]string) {
	rows := t.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	header := make([]string, len(t.Summary))
	for i, c := range t.Summary {
		header[i] = t.Columns[c]
	}
	out := make([][]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(t.Summary))
		for i, c := range t.Summary {
			cells[i] = row[c]
		}
		out[r] = cells
	}
	return header, out
}

type column[T any] struct {
	name    string
	summary bool
	segment bool
	value   func(*T) string
}

func newTable[T any](kind, title string, cols []column[T], rows []T) *Table {
	t := &Table{
		Kind:    kind,
		Title:   title,
		Columns: make([]string, len(cols)),
		Rows:    make([][]string, len(rows)),
		Records: rows,
	}
	for i, c := range cols {
		t.Columns[i] = c.name
		if c.summary {
			t.Summary = append(t.Summary, i)
		}
		if c.segment {
			t.Segments = append(t.Segments, i)
		}
	}
	for r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.value(&rows[r])
		}
		t.Rows[r] = cells
	}
	return t
}

// Filename returns the file name for a report export, e.g.
// customers_report_2024-12-31.csv.
func Filename(kind string, evalDate time.Time, format string) string {
	return fmt.Sprintf("%s_report_%s.%s", kind, evalDate.Format(report.DateLayout), format)
}

// Exporter writes tables in a chosen format.
type Exporter struct {
	// Out receives table output.
	Out io.Writer
	// Dir is the directory files are written to.
	Dir string
	// Limit caps the rows printed by the table format (0 = all).
	Limit int
}

// NewExporter returns an exporter printing tables to stdout.
func NewExporter(dir string, limit int) *Exporter {
	return &Exporter{Out: os.Stdout, Dir: dir, Limit: limit}
}

// Export writes t in format. File formats return the absolute path of the
// written file; the table format returns an empty path.
func (e *Exporter) Export(t *Table, format string, evalDate time.Time) (string, error) {
	if format == FormatTable {
		return "", e.writeTable(t)
	}
	if !slices.Contains([]string{FormatCSV, FormatJSON, FormatYAML, FormatPDF}, format) {
		return "", fmt.Errorf("unknown format: %s", format)
	}

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	path := filepath.Join(dir, Filename(t.Kind, evalDate, format))

	var err error
	switch format {
	case FormatCSV:
		err = writeFile(path, t, writeCSV)
	case FormatJSON:
		err = writeFile(path, t, writeJSON)
	case FormatYAML:
		err = writeFile(path, t, writeYAML)
	case FormatPDF:
		err = writePDF(path, t, evalDate)
	}
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	logging.Info().
		Str("format", format).
		Str("path", abs).
		Int("rows", t.Len()).
		Msg("Report exported")
	return abs, nil
}

func writeFile(path string, t *Table, write func(io.Writer, *Table) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := write(f, t); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return f.Close()
}

func writeCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return err
	}
	return writer.Error()
}

func writeJSON(w io.Writer, t *Table) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(t.Records)
}

func writeYAML(w io.Writer, t *Table) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(t.Records); err != nil {
		return err
	}
	return encoder.Close()
}
