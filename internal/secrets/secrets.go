// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves credentials from a directory of plain-text files
// with environment variables as a fallback. Each file holds one secret: the
// file name is the key and the trimmed contents are the value.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDir is where key files are looked up relative to the working directory.
	DefaultDir = ".secrets"

	// GoogleBooksKey is the file holding the Google Books API key.
	GoogleBooksKey = "google-books-api-key"
	// GoogleBooksEnv is the environment variable consulted when the file is absent.
	GoogleBooksEnv = "GOOGLE_API_KEY"
)

// Store holds secrets read from disk.
type Store struct {
	values map[string]string
	lookup func(string) (string, bool)
}

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty store. Unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (*Store, error) {
	s := &Store{values: map[string]string{}, lookup: os.LookupEnv}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if logger != nil {
				logger.Warn("could not read secret", "name", name, "error", err)
			}
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			s.values[name] = v
		}
	}
	return s, nil
}

// Get returns the secret stored under key, falling back to the environment
// variable env when no file provided it. The empty string means unset.
func (s *Store) Get(key, env string) string {
	if s != nil {
		if v, ok := s.values[key]; ok {
			return v
		}
	}
	lookup := os.LookupEnv
	if s != nil && s.lookup != nil {
		lookup = s.lookup
	}
	if env == "" {
		return ""
	}
	v, _ := lookup(env)
	return strings.TrimSpace(v)
}

// GoogleBooksAPIKey returns the Google Books API key, or "" when none is configured.
func (s *Store) GoogleBooksAPIKey() string {
	return s.Get(GoogleBooksKey, GoogleBooksEnv)
}

// Len reports how many secrets were read from disk.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}
