// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank filters books by rating and page count, orders them by page
// count, and keeps the top N.
package rank

import (
	"io"
	"log/slog"
	"sort"

	"github.com/pdiddy/book-rank/pkg/types"
)

// Criteria holds the thresholds and ordering for Select.
type Criteria struct {
	// MinRating is the inclusive rating floor.
	MinRating float64
	// MaxPages is the inclusive page ceiling; books with no page count
	// never qualify.
	MaxPages int
	// Count is the maximum number of books returned.
	Count int
	Order types.SortOrder
}

// CriteriaFromConfig returns the Criteria described by cfg.
func CriteriaFromConfig(cfg types.Config) Criteria {
	return Criteria{
		MinRating: cfg.MinRating,
		MaxPages:  cfg.MaxPages,
		Count:     cfg.Count,
		Order:     cfg.SortOrder,
	}
}

// Result is the outcome of Select.
type Result struct {
	// Books are the selected books in rank order.
	Books []types.Book
	// Qualifying counts the books that passed the filter before truncation.
	Qualifying int
}

// Qualifies reports whether b passes the rating and page filters.
func (c Criteria) Qualifies(b types.Book) bool {
	return b.Rating >= c.MinRating && b.PageCount > 0 && b.PageCount <= c.MaxPages
}

// Select keeps the books that qualify, stable-sorts them by page count in
// c.Order and truncates to c.Count. When fewer than c.Count qualify a
// warning is logged and the shorter list is returned. The input slice is
// not modified.
func Select(books []types.Book, c Criteria, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	kept := make([]types.Book, 0, len(books))
	for _, b := range books {
		if c.Qualifies(b) {
			kept = append(kept, b)
		}
	}

	desc := c.Order != types.SortAscending
	sort.SliceStable(kept, func(i, j int) bool {
		if desc {
			return kept[i].PageCount > kept[j].PageCount
		}
		return kept[i].PageCount < kept[j].PageCount
	})

	qualifying := len(kept)
	logger.Info("high rating books", "qualifying", qualifying, "min_rating", c.MinRating, "max_pages", c.MaxPages)

	if c.Count >= 0 && qualifying > c.Count {
		kept = kept[:c.Count]
	} else if qualifying < c.Count {
		logger.Warn("fewer books qualify than requested, using the smaller count",
			"requested", c.Count, "qualifying", qualifying)
	}

	return Result{Books: kept, Qualifying: qualifying}
}
