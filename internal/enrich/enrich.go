// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich backfills preview and download links on ranked books by
// looking each title up in a secondary catalog.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/pdiddy/book-rank/internal/catalog"
	"github.com/pdiddy/book-rank/internal/httputil"
	"github.com/pdiddy/book-rank/pkg/types"
)

// Looker finds the first catalog match for a title. It returns an error
// wrapping catalog.ErrNoMatch when nothing matches.
type Looker interface {
	LookupTitle(ctx context.Context, title string) (catalog.Match, error)
}

// Summary counts the outcome of an enrichment pass.
type Summary struct {
	Enriched int
	Missed   int
}

// Enricher runs title lookups for a list of books.
type Enricher struct {
	Looker Looker
	// Workers bounds concurrent lookups. Values below 1 mean one lookup at
	// a time.
	Workers int
	Logger  *slog.Logger
}

// New returns an Enricher using l with the given worker bound.
func New(l Looker, workers int, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Enricher{Looker: l, Workers: workers, Logger: logger}
}

// Enrich fills the link fields of every book in place. A lookup with no
// match, or a soft provider failure, leaves that book's links at
// types.NotAvailable and the pass continues. A fatal provider error stops
// the pass and is returned. Books are never removed or reordered, and
// Title, Author, ID, PageCount and Rating are never written.
func (e *Enricher) Enrich(ctx context.Context, books []types.Book) (Summary, error) {
	workers := e.Workers
	if workers < 1 {
		workers = 1
	}

	var enriched, missed atomic.Int64
	p := pool.New().
		WithMaxGoroutines(workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i := range books {
		// Each task writes only books[i].
		b := &books[i]
		p.Go(func(ctx context.Context) error {
			e.Logger.Info("looking up links", "title", b.Title)

			m, err := e.Looker.LookupTitle(ctx, b.Title)
			switch {
			case err == nil:
			case errors.Is(err, catalog.ErrNoMatch), httputil.IsSoft(err):
				e.Logger.Warn("no enrichment for book", "title", b.Title, "id", b.ID, "error", err)
				missed.Add(1)
				return nil
			default:
				return fmt.Errorf("enriching %q: %w", b.Title, err)
			}

			apply(b, m)
			enriched.Add(1)
			e.Logger.Info("book",
				"title", b.Title, "author", b.Author, "pages", b.PageCount,
				"rating", b.Rating, "language", b.Language, "categories", b.Categories,
				"preview", b.PreviewURL, "epub", b.EPUBURL, "pdf", b.PDFURL)
			return nil
		})
	}

	err := p.Wait()
	return Summary{Enriched: int(enriched.Load()), Missed: int(missed.Load())}, err
}

// apply copies the match's links into b, and its categories when b has none.
func apply(b *types.Book, m catalog.Match) {
	b.ApplyLinks(m.Links)
	if (b.Categories == "" || b.Categories == types.NotAvailable) && len(m.Categories) > 0 {
		b.Categories = strings.Join(m.Categories, ", ")
	}
}
