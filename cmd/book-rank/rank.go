// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-rank/internal/export"
	"github.com/pdiddy/book-rank/internal/pipeline"
	"github.com/pdiddy/book-rank/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Search, rank, enrich and export books",
	Long: `Rank searches the configured provider, keeps books at or under --max-pages
and at or above --min-rating, orders them by page count and writes the top
--count books to --output and to an XLSX workbook beside it.

When the provider is openlibrary each ranked book is looked up on Google
Books to fill in preview, EPUB and PDF links.`,
	RunE: runRank,
}

// configFlags maps flag names to the viper keys they override.
var configFlags = map[string]string{
	"provider":       "provider",
	"query":          "query",
	"language":       "language",
	"count":          "count",
	"max-pages":      "max_pages",
	"min-rating":     "min_rating",
	"sort":           "sort_order",
	"retry-delay":    "retry_delay",
	"max-retries":    "max_retries",
	"timeout":        "timeout",
	"rps":            "requests_per_second",
	"enrich-workers": "enrich_workers",
	"output":         "output",
}

func init() {
	addOutputFlags(rankCmd)
	rootCmd.AddCommand(rankCmd)
}

// addRankFlags registers the configuration flags as persistent flags on cmd
// and binds them into viper, so every subcommand sees the same overrides.
func addRankFlags(cmd *cobra.Command) {
	d := types.DefaultConfig()
	f := cmd.PersistentFlags()
	f.StringP("provider", "a", d.Provider, "primary catalog: openlibrary or googlebooks")
	f.StringP("query", "q", d.Query, "search query sent to the provider")
	f.String("language", d.Language, "Open Library language restriction (empty disables it)")
	f.IntP("count", "n", d.Count, "maximum number of books to output")
	f.IntP("max-pages", "m", d.MaxPages, "maximum page count (inclusive)")
	f.Float64P("min-rating", "r", d.MinRating, "minimum rating (inclusive)")
	f.String("sort", string(d.SortOrder), "page count order: asc or desc")
	f.Duration("retry-delay", d.Delay, "wait between retries after HTTP 429")
	f.Int("max-retries", d.MaxRetries, "retries after the first attempt on HTTP 429")
	f.Duration("timeout", d.Timeout, "HTTP request timeout")
	f.Float64("rps", d.RequestsPerSecond, "maximum requests per second (0 = unlimited)")
	f.Int("enrich-workers", d.EnrichWorkers, "concurrent Google Books lookups")
	f.StringP("output", "o", d.Output, "CSV output path; the XLSX file is written beside it")

	addOutputFlags(cmd)
	bindFlags(viper.GetViper(), f)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "print the ranking as JSON")
	cmd.Flags().Bool("open", false, "open the XLSX workbook when done")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for name, key := range configFlags {
		if fl := fs.Lookup(name); fl != nil {
			_ = v.BindPFlag(key, fl)
		}
	}
}

// setDefaults registers every configuration key so that environment
// variables and config files are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("provider", d.Provider)
	v.SetDefault("query", d.Query)
	v.SetDefault("language", d.Language)
	v.SetDefault("count", d.Count)
	v.SetDefault("max_pages", d.MaxPages)
	v.SetDefault("min_rating", d.MinRating)
	v.SetDefault("sort_order", string(d.SortOrder))
	v.SetDefault("retry_delay", d.Delay)
	v.SetDefault("max_retries", d.MaxRetries)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("requests_per_second", d.RequestsPerSecond)
	v.SetDefault("enrich_workers", d.EnrichWorkers)
	v.SetDefault("output", d.Output)
	v.SetDefault("google_books_api_key", "")
}

// configFrom decodes the effective configuration held by v.
func configFrom(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.GoogleBooksAPIKey == "" {
		cfg.GoogleBooksAPIKey = loadedSecrets.GoogleBooksAPIKey()
	}
	return cfg, nil
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := configFrom(viper.GetViper())
	if err != nil {
		return err
	}
	if cfg.Provider == types.ProviderOpenLibrary && cfg.GoogleBooksAPIKey == "" {
		logger.Debug("no Google Books API key configured; lookups are anonymous")
	}

	p, err := pipeline.New(cfg, pipeline.Options{Logger: logger})
	if err != nil {
		return err
	}
	sum, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := export.FormatJSON(out, sum.Books); err != nil {
			return err
		}
	} else {
		export.FormatTable(out, sum.Books)
	}

	if open, _ := cmd.Flags().GetBool("open"); open && sum.XLSXPath != "" {
		if err := openFile(sum.XLSXPath); err != nil {
			logger.Warn("could not open workbook", "path", sum.XLSXPath, "error", err)
		}
	}
	return nil
}

// openCommand returns the command that opens path with the default
// application on goos.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// openFile starts the opener without waiting for it; the viewer outlives the run.
func openFile(path string) error {
	name, args := openCommand(runtime.GOOS, path)
	return exec.Command(name, args...).Start()
}
