// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the book-rank pipeline:
// the canonical Book record every provider is reconciled into, and the
// run configuration consumed by each stage.
package types

import (
	"fmt"
	"strings"
)

// NotAvailable marks a field whose value the provider did not supply. It is
// distinct from the empty string, which means the field was never set.
const NotAvailable = "N/A"

// Provider names accepted in Config.Provider.
const (
	ProviderOpenLibrary = "openlibrary"
	ProviderGoogleBooks = "googlebooks"
)

// Book is one catalog entry reconciled from a provider response. Source is
// set at creation and never changes; enrichment only fills link fields.
type Book struct {
	// Title is the book title, or NotAvailable.
	Title string `json:"title" yaml:"title"`

	// Author holds the authors joined with ", ", or NotAvailable.
	Author string `json:"author" yaml:"author"`

	// ID is the provider catalog identifier (Open Library cover edition key
	// or Google Books volume ID). Records without one are never retained.
	ID string `json:"id" yaml:"id"`

	// PageCount is the page count, 0 when unknown.
	PageCount int `json:"page_count" yaml:"page_count"`

	// Rating is the average reader rating, 0 when unknown.
	Rating float64 `json:"rating" yaml:"rating"`

	Language   string `json:"language" yaml:"language"`
	Categories string `json:"categories" yaml:"categories"`

	// PreviewURL, EPUBURL and PDFURL hold either NotAvailable or a
	// hyperlink expression built by Hyperlink.
	PreviewURL string `json:"preview_url" yaml:"preview_url"`
	EPUBURL    string `json:"epub_url" yaml:"epub_url"`
	PDFURL     string `json:"pdf_url" yaml:"pdf_url"`

	// Source identifies which provider built the record.
	Source string `json:"source" yaml:"source"`
}

// Links carries the raw preview and download URLs found for a book. Empty
// strings mean the provider offered no such link.
type Links struct {
	Preview string
	EPUB    string
	PDF     string
}

// Link labels shown in place of the raw URL.
const (
	LabelPreview = "Preview"
	LabelEPUB    = "EPUB"
	LabelPDF     = "PDF"
)

// Hyperlink returns a spreadsheet hyperlink expression that displays label
// and targets url. An empty url yields NotAvailable.
func Hyperlink(label, url string) string {
	url = strings.TrimSpace(url)
	if url == "" || url == NotAvailable {
		return NotAvailable
	}
	return fmt.Sprintf(`=HYPERLINK("%s","%s")`, quoteFormula(url), quoteFormula(label))
}

// ParseHyperlink reverses Hyperlink. ok is false when s is not a hyperlink
// expression.
func ParseHyperlink(s string) (url, label string, ok bool) {
	const prefix, suffix = `=HYPERLINK("`, `")`
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, suffix) {
		return "", "", false
	}
	body := s[len(prefix) : len(s)-len(suffix)]
	// The separator is the only `","` not produced by quote doubling.
	for i := 0; i+3 <= len(body); i++ {
		if body[i] != '"' {
			continue
		}
		if i+1 < len(body) && body[i+1] == '"' {
			i++
			continue
		}
		if strings.HasPrefix(body[i:], `","`) {
			return unquoteFormula(body[:i]), unquoteFormula(body[i+3:]), true
		}
		return "", "", false
	}
	return "", "", false
}

// ApplyLinks writes l into b's link fields as hyperlink expressions.
func (b *Book) ApplyLinks(l Links) {
	b.PreviewURL = Hyperlink(LabelPreview, l.Preview)
	b.EPUBURL = Hyperlink(LabelEPUB, l.EPUB)
	b.PDFURL = Hyperlink(LabelPDF, l.PDF)
}

func quoteFormula(s string) string   { return strings.ReplaceAll(s, `"`, `""`) }
func unquoteFormula(s string) string { return strings.ReplaceAll(s, `""`, `"`) }
