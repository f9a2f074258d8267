// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pdiddy/book-rank/internal/httputil"
	"github.com/pdiddy/book-rank/pkg/types"
)

// DefaultGoogleBooksURL is the Google Books volumes endpoint.
const DefaultGoogleBooksURL = "https://www.googleapis.com/books/v1/volumes"

// googleMaxResults is the largest page the volumes endpoint returns.
const googleMaxResults = 40

// GoogleBooks queries the Google Books API. Any non-200 response is fatal:
// the run cannot enrich or rank without it.
type GoogleBooks struct {
	Fetcher *httputil.Fetcher
	// BaseURL defaults to DefaultGoogleBooksURL.
	BaseURL string
	APIKey  string
	Logger  *slog.Logger
}

// NewGoogleBooks returns a Google Books provider using f.
func NewGoogleBooks(f *httputil.Fetcher, apiKey string, logger *slog.Logger) *GoogleBooks {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &GoogleBooks{
		Fetcher: f,
		BaseURL: DefaultGoogleBooksURL,
		APIKey:  apiKey,
		Logger:  logger,
	}
}

// Name returns the provider identifier.
func (p *GoogleBooks) Name() string { return types.ProviderGoogleBooks }

// RichMetadata is true: volumes carry preview and download links.
func (p *GoogleBooks) RichMetadata() bool { return true }

// Search queries Google Books and adapts the "items" list.
func (p *GoogleBooks) Search(ctx context.Context, query string) ([]types.Book, AdaptStats, error) {
	body, err := p.Fetcher.GetJSON(ctx, "Google Books", p.volumesURL(query, googleMaxResults), httputil.Required)
	if err != nil {
		return nil, AdaptStats{}, err
	}
	books, stats := Adapt(Items(body, "items"), GoogleBooksAdapter{})
	return books, stats, nil
}

// Match is the enrichment data taken from the first volume of a title
// lookup.
type Match struct {
	ID         string
	Title      string
	Links      types.Links
	Categories []string
}

// LookupTitle searches Google Books for an exact title and returns the first
// volume. It returns ErrNoMatch when the search has no results.
func (p *GoogleBooks) LookupTitle(ctx context.Context, title string) (Match, error) {
	title = strings.TrimSpace(title)
	if title == "" || title == types.NotAvailable {
		return Match{}, fmt.Errorf("lookup without title: %w", ErrNoMatch)
	}

	q := `intitle:"` + strings.ReplaceAll(title, `"`, "") + `"`
	body, err := p.Fetcher.GetJSON(ctx, "Google Books", p.volumesURL(q, 1), httputil.Required)
	if err != nil {
		return Match{}, err
	}

	items := Items(body, "items")
	if len(items) == 0 {
		return Match{}, fmt.Errorf("%q: %w", title, ErrNoMatch)
	}
	first := items[0]
	return Match{
		ID:         first.String("", "id"),
		Title:      first.String("", "volumeInfo", "title"),
		Links:      googleLinks(first),
		Categories: first.Strings("volumeInfo", "categories"),
	}, nil
}

func (p *GoogleBooks) volumesURL(query string, maxResults int) string {
	params := url.Values{
		"q":          {query},
		"maxResults": {fmt.Sprintf("%d", maxResults)},
	}
	if p.APIKey != "" {
		params.Set("key", p.APIKey)
	}
	base := p.BaseURL
	if base == "" {
		base = DefaultGoogleBooksURL
	}
	return base + "?" + params.Encode()
}

// GoogleBooksAdapter maps a Google Books volume to a Book. The volume ID is
// the identifier.
type GoogleBooksAdapter struct{}

// Adapt implements Adapter.
func (GoogleBooksAdapter) Adapt(item Item) (types.Book, bool) {
	id := item.String(types.NotAvailable, "id")
	if !validID(id) {
		return types.Book{}, false
	}
	b := types.Book{
		Title:      item.String(types.NotAvailable, "volumeInfo", "title"),
		Author:     joinOr(item.Strings("volumeInfo", "authors"), types.NotAvailable),
		ID:         id,
		PageCount:  item.Int(0, "volumeInfo", "pageCount"),
		Rating:     item.Float(0, "volumeInfo", "averageRating"),
		Language:   item.String(types.NotAvailable, "volumeInfo", "language"),
		Categories: joinOr(item.Strings("volumeInfo", "categories"), types.NotAvailable),
		Source:     types.ProviderGoogleBooks,
	}
	b.ApplyLinks(googleLinks(item))
	return b, true
}

// googleLinks extracts the preview link and the EPUB/PDF download links of
// a volume.
func googleLinks(item Item) types.Links {
	return types.Links{
		Preview: item.String("", "volumeInfo", "previewLink"),
		EPUB:    downloadLink(item, "epub"),
		PDF:     downloadLink(item, "pdf"),
	}
}

// downloadLink returns the download link for format only when the volume
// flags it as available; a link without the flag may be stale.
func downloadLink(item Item, format string) string {
	if !item.Bool("accessInfo", format, "isAvailable") {
		return ""
	}
	if link := item.String("", "accessInfo", format, "downloadLink"); link != "" {
		return link
	}
	return item.String("", "accessInfo", format, "acsTokenLink")
}
