// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pdiddy/book-rank/internal/httputil"
	"github.com/pdiddy/book-rank/pkg/types"
)

// DefaultOpenLibraryURL is the Open Library search endpoint.
const DefaultOpenLibraryURL = "https://openlibrary.org/search.json"

const openLibraryFields = "title,author_name,cover_edition_key,number_of_pages_median,ratings_average,language,subject"

// OpenLibrary queries the Open Library search API. It is the primary,
// best-effort provider: when the API is unavailable the run continues with
// no books.
type OpenLibrary struct {
	Fetcher *httputil.Fetcher
	// BaseURL defaults to DefaultOpenLibraryURL; tests point it at an
	// httptest server.
	BaseURL string
	// Language restricts results (e.g. "eng"). Empty disables it.
	Language string
	Logger   *slog.Logger
}

// NewOpenLibrary returns an Open Library provider using f.
func NewOpenLibrary(f *httputil.Fetcher, language string, logger *slog.Logger) *OpenLibrary {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &OpenLibrary{
		Fetcher:  f,
		BaseURL:  DefaultOpenLibraryURL,
		Language: language,
		Logger:   logger,
	}
}

// Name returns the provider identifier.
func (p *OpenLibrary) Name() string { return types.ProviderOpenLibrary }

// RichMetadata is false: Open Library search results carry no preview or
// download links.
func (p *OpenLibrary) RichMetadata() bool { return false }

// Search queries Open Library sorted by rating and adapts the "docs" list.
func (p *OpenLibrary) Search(ctx context.Context, query string) ([]types.Book, AdaptStats, error) {
	body, err := p.Fetcher.GetJSON(ctx, "Open Library", p.searchURL(query), httputil.BestEffort)
	if err != nil {
		if httputil.IsSoft(err) {
			p.Logger.Warn("failed to fetch data from Open Library, continuing without results", "error", err)
			return []types.Book{}, AdaptStats{}, nil
		}
		return nil, AdaptStats{}, err
	}

	items := Items(body, "docs")
	p.Logger.Debug("open library response", "docs", len(items))
	books, stats := Adapt(items, OpenLibraryAdapter{})
	return books, stats, nil
}

func (p *OpenLibrary) searchURL(query string) string {
	q := strings.TrimSpace(query)
	if p.Language != "" {
		q += " language:" + p.Language
	}
	params := url.Values{
		"q":      {q},
		"sort":   {"rating"},
		"fields": {openLibraryFields},
	}
	base := p.BaseURL
	if base == "" {
		base = DefaultOpenLibraryURL
	}
	return base + "?" + params.Encode()
}

// OpenLibraryAdapter maps an Open Library search doc to a Book. The cover
// edition key is the identifier; docs without one are dropped.
type OpenLibraryAdapter struct{}

// Adapt implements Adapter.
func (OpenLibraryAdapter) Adapt(item Item) (types.Book, bool) {
	id := item.String(types.NotAvailable, "cover_edition_key")
	if !validID(id) {
		return types.Book{}, false
	}
	return types.Book{
		Title:      item.String(types.NotAvailable, "title"),
		Author:     joinOr(item.Strings("author_name"), types.NotAvailable),
		ID:         id,
		PageCount:  item.Int(0, "number_of_pages_median"),
		Rating:     item.Float(0, "ratings_average"),
		Language:   joinOr(item.Strings("language"), types.NotAvailable),
		Categories: joinOr(item.Strings("subject"), types.NotAvailable),
		PreviewURL: types.NotAvailable,
		EPUBURL:    types.NotAvailable,
		PDFURL:     types.NotAvailable,
		Source:     types.ProviderOpenLibrary,
	}, true
}
