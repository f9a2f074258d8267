// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes ranked books as a CSV file, an XLSX workbook, or a
// console table. Every format uses the column order in Columns.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/book-rank/pkg/types"
)

// Columns is the fixed header and column order of every export.
var Columns = []string{
	"Title",
	"Author",
	"ID",
	"Total Number of Pages",
	"Rating",
	"PDF",
	"Preview",
	"EPUB",
	"Language",
	"Categories",
}

// Column indexes into Columns that hold numbers.
const (
	colPages  = 3
	colRating = 4
)

// Row renders b in Columns order.
func Row(b types.Book) []string {
	return []string{
		b.Title,
		b.Author,
		b.ID,
		strconv.Itoa(b.PageCount),
		FormatRating(b.Rating),
		orNA(b.PDFURL),
		orNA(b.PreviewURL),
		orNA(b.EPUBURL),
		orNA(b.Language),
		b.Categories,
	}
}

// FormatRating renders a rating with the fewest digits that round-trip.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// WriteCSV writes the header and one row per book to path.
func WriteCSV(path string, books []types.Book) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, b := range books {
		if err := w.Write(Row(b)); err != nil {
			f.Close()
			return fmt.Errorf("writing CSV row %s: %w", b.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return f.Close()
}

// XLSXPath returns the workbook path that accompanies csvPath.
func XLSXPath(csvPath string) string {
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".xlsx"
}

func orNA(s string) string {
	if s == "" {
		return types.NotAvailable
	}
	return s
}
