// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHyperlink(t *testing.T) {
	tests := []struct {
		name  string
		label string
		url   string
		want  string
	}{
		{"plain", "Preview", "https://x/p?id=1&a=b", `=HYPERLINK("https://x/p?id=1&a=b","Preview")`},
		{"empty url", "PDF", "", NotAvailable},
		{"blank url", "PDF", "   ", NotAvailable},
		{"sentinel url", "PDF", NotAvailable, NotAvailable},
		{"quotes doubled", `Say "hi"`, `https://x/"q"`, `=HYPERLINK("https://x/""q""","Say ""hi""")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hyperlink(tt.label, tt.url))
		})
	}
}

func TestParseHyperlinkRoundTrip(t *testing.T) {
	for _, c := range []struct{ label, url string }{
		{"Preview", "https://books.example/p?id=1"},
		{"EPUB", `https://x/"quoted"`},
		{`Lab","el`, `https://x/a","b`},
	} {
		url, label, ok := ParseHyperlink(Hyperlink(c.label, c.url))
		assert.True(t, ok, c.url)
		assert.Equal(t, c.url, url)
		assert.Equal(t, c.label, label)
	}
}

func TestParseHyperlinkRejects(t *testing.T) {
	for _, s := range []string{NotAvailable, "", "https://plain", `=HYPERLINK("no-separator")`, `=SUM(A1)`} {
		_, _, ok := ParseHyperlink(s)
		assert.False(t, ok, s)
	}
}

func TestApplyLinks(t *testing.T) {
	var b Book
	b.ApplyLinks(Links{Preview: "https://p", PDF: "https://pdf"})

	assert.Equal(t, `=HYPERLINK("https://p","Preview")`, b.PreviewURL)
	assert.Equal(t, NotAvailable, b.EPUBURL)
	assert.Equal(t, `=HYPERLINK("https://pdf","PDF")`, b.PDFURL)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderOpenLibrary, cfg.Provider)
	assert.Equal(t, 20, cfg.Count)
	assert.Equal(t, 300, cfg.MaxPages)
	assert.Equal(t, 4.0, cfg.MinRating)
	assert.Equal(t, DefaultRetryDelay, cfg.Delay)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, SortDescending, cfg.SortOrder)
	assert.Equal(t, 1, cfg.EnrichWorkers)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown provider", func(c *Config) { c.Provider = "amazon" }, "unknown provider"},
		{"unknown order", func(c *Config) { c.SortOrder = "sideways" }, "unknown sort order"},
		{"empty query", func(c *Config) { c.Query = "" }, "query is empty"},
		{"zero count", func(c *Config) { c.Count = 0 }, "count must be positive"},
		{"zero pages", func(c *Config) { c.MaxPages = 0 }, "max pages must be positive"},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, "max retries"},
		{"negative delay", func(c *Config) { c.Delay = -1 }, "retry delay"},
		{"negative rate", func(c *Config) { c.RequestsPerSecond = -2 }, "requests per second"},
		{"empty output", func(c *Config) { c.Output = "" }, "output path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
