// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog queries book-catalog APIs and reconciles their records
// into types.Book. Each provider (Open Library, Google Books) implements
// Provider; each provider's record schema is mapped by an Adapter working
// on the typed Item accessors.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/pdiddy/book-rank/pkg/types"
)

// ErrNoMatch is returned by a title lookup that found no records.
var ErrNoMatch = errors.New("no matching book")

// Provider searches a single catalog API.
type Provider interface {
	Name() string

	// RichMetadata reports whether search results already carry preview
	// and download links, making enrichment unnecessary.
	RichMetadata() bool

	// Search returns the books found for query, with the adaptation
	// statistics. An unavailable best-effort provider yields no books and
	// no error.
	Search(ctx context.Context, query string) ([]types.Book, AdaptStats, error)
}

// Adapter maps one raw provider item to a Book. ok is false when the item
// has no usable identifier and must be dropped.
type Adapter interface {
	Adapt(item Item) (book types.Book, ok bool)
}

// AdaptStats counts the items seen by Adapt and how many were dropped for
// lacking an identifier.
type AdaptStats struct {
	Seen    int
	Kept    int
	Dropped int
}

// Adapt maps every item through a and drops the ones it rejects. An empty
// item list yields an empty, non-nil book list.
func Adapt(items []Item, a Adapter) ([]types.Book, AdaptStats) {
	books := make([]types.Book, 0, len(items))
	stats := AdaptStats{Seen: len(items)}
	for _, item := range items {
		b, ok := a.Adapt(item)
		if !ok {
			stats.Dropped++
			continue
		}
		books = append(books, b)
	}
	stats.Kept = len(books)
	return books, stats
}

// validID reports whether id can identify a record.
func validID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && id != types.NotAvailable
}

// joinOr joins parts with ", " or returns def when there are none.
func joinOr(parts []string, def string) string {
	if len(parts) == 0 {
		return def
	}
	return strings.Join(parts, ", ")
}
