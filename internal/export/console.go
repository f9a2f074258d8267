// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/book-rank/pkg/types"
)

// FormatTable writes books as a human-readable table to w.
func FormatTable(w io.Writer, books []types.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No high rating books found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-24s  %-5s  %-6s  %s\n",
		"Rank", "Title", "Author", "Pages", "Rating", "Links")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, b := range books {
		fmt.Fprintf(w, "%-4d  %-50s  %-24s  %-5d  %-6s  %s\n",
			i+1, truncate(b.Title, 50), truncate(b.Author, 24), b.PageCount,
			FormatRating(b.Rating), linkSummary(b))
	}

	fmt.Fprintf(w, "\n%d books\n", len(books))
}

// FormatJSON writes books as indented JSON to w.
func FormatJSON(w io.Writer, books []types.Book) error {
	if books == nil {
		books = []types.Book{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

// linkSummary lists the labels of the links a book carries.
func linkSummary(b types.Book) string {
	var labels []string
	for _, l := range []string{b.PreviewURL, b.EPUBURL, b.PDFURL} {
		if _, label, ok := types.ParseHyperlink(l); ok {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return types.NotAvailable
	}
	return strings.Join(labels, ",")
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
