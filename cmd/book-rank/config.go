// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/book-rank/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config resolves defaults, the config file, BOOK_RANK_* environment
variables and command-line flags, and prints the result. The output can be
saved as book-rank.yaml. API keys are never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFrom(viper.GetViper())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			logger.Warn("configuration is not runnable", "error", err)
		}
		return writeConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func writeConfig(w io.Writer, cfg types.Config) error {
	state := "unset"
	if cfg.GoogleBooksAPIKey != "" {
		state = "set"
	}
	fmt.Fprintf(w, "# google books api key: %s\n", state)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return enc.Close()
}
