// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the book-rank CLI. It searches a public
// book catalog, keeps short and well-rated titles, fills in preview and
// download links, and writes the ranking as CSV and XLSX.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-rank/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// exitInterrupted is the conventional status for a run stopped by SIGINT.
const exitInterrupted = 130

var (
	logger        = slog.New(slog.NewTextHandler(os.Stderr, nil))
	loadedSecrets *secrets.Store
)

// rootCmd is the base command for the book-rank CLI. Without a subcommand it
// performs a rank run.
var rootCmd = &cobra.Command{
	Use:   "book-rank",
	Short: "Rank short, highly rated books from public catalogs",
	Long: `book-rank queries Open Library (or Google Books) for a topic, keeps books
at or under a page ceiling and at or above a rating floor, orders them by page
count, and fills in preview, EPUB and PDF links from Google Books.

The ranking is written as a CSV file and a formatted XLSX workbook next to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		logger = newLogger(debug)

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("could not load .env", "error", err)
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if s.Len() > 0 {
			logger.Debug("loaded secrets", "count", s.Len())
		}
		return nil
	},
	RunE: runRank,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./book-rank.yaml or ~/.config/book-rank/book-rank.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addRankFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("book-rank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "book-rank"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("BOOK_RANK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Info("using config file", "path", viper.ConfigFileUsed())
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to a process status, printing it once.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
}
