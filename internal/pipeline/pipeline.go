// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one book-rank pass: search the primary catalog,
// rank the results, enrich them when the primary catalog lacks links, and
// export CSV and XLSX files.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pdiddy/book-rank/internal/catalog"
	"github.com/pdiddy/book-rank/internal/enrich"
	"github.com/pdiddy/book-rank/internal/export"
	"github.com/pdiddy/book-rank/internal/httputil"
	"github.com/pdiddy/book-rank/internal/rank"
	"github.com/pdiddy/book-rank/pkg/types"
)

// Options holds the collaborators of a Pipeline. Zero values select the
// production defaults.
type Options struct {
	Client         *http.Client
	Logger         *slog.Logger
	OpenLibraryURL string
	GoogleBooksURL string
}

// Pipeline holds the configured stages of a run.
type Pipeline struct {
	Config   types.Config
	Primary  catalog.Provider
	Enricher *enrich.Enricher
	Logger   *slog.Logger
}

// Summary describes a completed run.
type Summary struct {
	RunID      string
	Provider   string
	Adapt      catalog.AdaptStats
	Qualifying int
	Books      []types.Book
	Enrich     enrich.Summary
	CSVPath    string
	// XLSXPath is empty when the workbook could not be written.
	XLSXPath string
}

// New validates cfg and builds the providers it selects.
func New(cfg types.Config, opts Options) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	policy := httputil.DefaultRetryPolicy()
	policy.Delay = cfg.Delay
	policy.MaxRetries = cfg.MaxRetries
	fetcher := httputil.NewFetcher(client, policy, cfg.RequestsPerSecond, cfg.UserAgent, logger)

	google := catalog.NewGoogleBooks(fetcher, cfg.GoogleBooksAPIKey, logger)
	if opts.GoogleBooksURL != "" {
		google.BaseURL = opts.GoogleBooksURL
	}

	p := &Pipeline{Config: cfg, Logger: logger}
	switch cfg.Provider {
	case types.ProviderGoogleBooks:
		p.Primary = google
	default:
		ol := catalog.NewOpenLibrary(fetcher, cfg.Language, logger)
		if opts.OpenLibraryURL != "" {
			ol.BaseURL = opts.OpenLibraryURL
		}
		p.Primary = ol
		p.Enricher = enrich.New(google, cfg.EnrichWorkers, logger)
	}
	return p, nil
}

// Run executes the pipeline. Only fatal provider errors, cancellation and
// CSV write failures are returned; every other problem is logged and the
// run continues with partial results.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	cfg := p.Config
	sum := Summary{RunID: uuid.NewString(), Provider: p.Primary.Name()}
	log := p.Logger.With("run", sum.RunID)

	log.Info("starting run",
		"provider", sum.Provider, "count", cfg.Count,
		"max_pages", cfg.MaxPages, "min_rating", cfg.MinRating,
		"sort", string(cfg.SortOrder))

	books, stats, err := p.Primary.Search(ctx, cfg.Query)
	if err != nil {
		return sum, fmt.Errorf("searching %s: %w", sum.Provider, err)
	}
	sum.Adapt = stats
	if stats.Dropped > 0 {
		log.Debug("dropped records without identifier", "dropped", stats.Dropped, "seen", stats.Seen)
	}

	res := rank.Select(books, rank.CriteriaFromConfig(cfg), log)
	sum.Qualifying = res.Qualifying
	sum.Books = res.Books
	if len(res.Books) == 0 {
		log.Warn("no high rating books found")
	}

	if !p.Primary.RichMetadata() && p.Enricher != nil && len(res.Books) > 0 {
		log.Info("using Google Books to fill missing links", "books", len(res.Books))
		es, err := p.Enricher.Enrich(ctx, res.Books)
		sum.Enrich = es
		if err != nil {
			return sum, err
		}
	}

	if err := export.WriteCSV(cfg.Output, res.Books); err != nil {
		return sum, err
	}
	sum.CSVPath = cfg.Output
	log.Info("top books written", "count", len(res.Books), "path", sum.CSVPath)

	xlsxPath := export.XLSXPath(cfg.Output)
	if err := export.WriteXLSX(xlsxPath, res.Books); err != nil {
		log.Error("failed to write spreadsheet", "path", xlsxPath, "error", err)
		return sum, nil
	}
	sum.XLSXPath = xlsxPath
	log.Info("top books written", "count", len(res.Books), "path", sum.XLSXPath)

	return sum, nil
}
