package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by both catalog providers.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "book-rank/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RequestsPerSecond paces outgoing requests. Zero means unlimited.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// RetryConfig controls the fixed-delay retry applied to throttled requests.
type RetryConfig struct {
	// Delay is the fixed wait between attempts after an HTTP 429 (default 5s).
	Delay time.Duration `json:"retry_delay" yaml:"retry_delay" mapstructure:"retry_delay"`

	// MaxRetries is the number of retries after the first attempt (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SortOrder selects the page-count ordering of ranked books.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Config holds every setting consumed by the rank pipeline.
type Config struct {
	HTTPConfig  `yaml:",inline" mapstructure:",squash"`
	RetryConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the primary catalog: openlibrary or googlebooks.
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Query is the free-text search sent to the primary provider.
	Query string `json:"query" yaml:"query" mapstructure:"query"`

	// Language restricts Open Library results (e.g. "eng"). Empty disables it.
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// Count is the maximum number of books in the output (default 20).
	Count int `json:"count" yaml:"count" mapstructure:"count"`

	// MaxPages is the inclusive page-count ceiling (default 300).
	MaxPages int `json:"max_pages" yaml:"max_pages" mapstructure:"max_pages"`

	// MinRating is the inclusive rating floor (default 4.0).
	MinRating float64 `json:"min_rating" yaml:"min_rating" mapstructure:"min_rating"`

	// SortOrder orders the ranked books by page count (default desc).
	SortOrder SortOrder `json:"sort_order" yaml:"sort_order" mapstructure:"sort_order"`

	// EnrichWorkers bounds concurrent enrichment lookups (default 1).
	EnrichWorkers int `json:"enrich_workers" yaml:"enrich_workers" mapstructure:"enrich_workers"`

	// GoogleBooksAPIKey is the static key for the Google Books API.
	GoogleBooksAPIKey string `json:"-" yaml:"-" mapstructure:"google_books_api_key"`

	// Output is the CSV path; the XLSX rendering sits next to it.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// Default configuration values.
const (
	DefaultProvider      = ProviderOpenLibrary
	DefaultQuery         = "'high school literature' 'english language'"
	DefaultLanguage      = "eng"
	DefaultCount         = 20
	DefaultMaxPages      = 300
	DefaultMinRating     = 4.0
	DefaultRetryDelay    = 5 * time.Second
	DefaultMaxRetries    = 5
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "book-rank/0.1"
	DefaultEnrichWorkers = 1
	DefaultOutput        = "book_rank_top.csv"
)

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() Config {
	return Config{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		RetryConfig: RetryConfig{
			Delay:      DefaultRetryDelay,
			MaxRetries: DefaultMaxRetries,
		},
		Provider:      DefaultProvider,
		Query:         DefaultQuery,
		Language:      DefaultLanguage,
		Count:         DefaultCount,
		MaxPages:      DefaultMaxPages,
		MinRating:     DefaultMinRating,
		SortOrder:     SortDescending,
		EnrichWorkers: DefaultEnrichWorkers,
		Output:        DefaultOutput,
	}
}

// Validate reports the first setting that cannot drive a run.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenLibrary, ProviderGoogleBooks:
	default:
		return fmt.Errorf("unknown provider %q: use %s or %s", c.Provider, ProviderOpenLibrary, ProviderGoogleBooks)
	}
	switch c.SortOrder {
	case SortAscending, SortDescending:
	default:
		return fmt.Errorf("unknown sort order %q: use %s or %s", c.SortOrder, SortAscending, SortDescending)
	}
	if c.Query == "" {
		return fmt.Errorf("query is empty")
	}
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive, got %d", c.MaxPages)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.Delay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %v", c.Delay)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative, got %v", c.RequestsPerSecond)
	}
	if c.Output == "" {
		return fmt.Errorf("output path is empty")
	}
	return nil
}
