// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/book-rank/pkg/types"
)

func book(id string, pages int, rating float64) types.Book {
	return types.Book{ID: id, Title: id, PageCount: pages, Rating: rating}
}

func ids(books []types.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestSelectFilters(t *testing.T) {
	books := []types.Book{
		book("ok", 200, 4.0),
		book("low-rating", 200, 3.99),
		book("too-long", 301, 4.5),
		book("at-ceiling", 300, 5),
		book("no-pages", 0, 5),
		book("negative-pages", -3, 5),
	}

	res := Select(books, Criteria{MinRating: 4.0, MaxPages: 300, Count: 10, Order: types.SortAscending}, nil)

	assert.Equal(t, []string{"ok", "at-ceiling"}, ids(res.Books))
	assert.Equal(t, 2, res.Qualifying)
}

func TestSelectOrder(t *testing.T) {
	books := []types.Book{
		book("b", 150, 4.5),
		book("a", 100, 4.5),
		book("c", 250, 4.5),
		book("a2", 100, 4.8),
	}

	asc := Select(books, Criteria{MinRating: 4, MaxPages: 300, Count: 10, Order: types.SortAscending}, nil)
	assert.Equal(t, []string{"a", "a2", "b", "c"}, ids(asc.Books))

	desc := Select(books, Criteria{MinRating: 4, MaxPages: 300, Count: 10, Order: types.SortDescending}, nil)
	assert.Equal(t, []string{"c", "b", "a", "a2"}, ids(desc.Books))

	// An unset order falls back to descending.
	def := Select(books, Criteria{MinRating: 4, MaxPages: 300, Count: 10}, nil)
	assert.Equal(t, ids(desc.Books), ids(def.Books))
}

func TestSelectTruncates(t *testing.T) {
	books := []types.Book{book("a", 10, 5), book("b", 20, 5), book("c", 30, 5)}

	res := Select(books, Criteria{MinRating: 4, MaxPages: 300, Count: 2, Order: types.SortDescending}, nil)

	assert.Equal(t, []string{"c", "b"}, ids(res.Books))
	assert.Equal(t, 3, res.Qualifying)
}

func TestSelectWarnsWhenShort(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res := Select([]types.Book{book("a", 10, 5)}, Criteria{MinRating: 4, MaxPages: 300, Count: 20}, logger)

	require.Len(t, res.Books, 1)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "requested=20")
	assert.Contains(t, buf.String(), "qualifying=1")
}

func TestSelectEmpty(t *testing.T) {
	res := Select(nil, Criteria{MinRating: 4, MaxPages: 300, Count: 20}, nil)
	assert.NotNil(t, res.Books)
	assert.Empty(t, res.Books)
	assert.Equal(t, 0, res.Qualifying)
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	books := []types.Book{book("a", 10, 5), book("b", 20, 5)}
	Select(books, Criteria{MinRating: 4, MaxPages: 300, Count: 1, Order: types.SortDescending}, nil)
	assert.Equal(t, []string{"a", "b"}, ids(books))
}

// TestSelectProperties checks the filter, order and count invariants over
// random inputs.
func TestSelectProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(40)
		books := make([]types.Book, n)
		for i := range books {
			books[i] = book(fmt.Sprintf("b%d", i), rng.Intn(500)-20, float64(rng.Intn(51))/10)
		}
		c := Criteria{
			MinRating: float64(rng.Intn(51)) / 10,
			MaxPages:  rng.Intn(400) + 1,
			Count:     rng.Intn(25) + 1,
			Order:     []types.SortOrder{types.SortAscending, types.SortDescending}[rng.Intn(2)],
		}

		res := Select(books, c, nil)

		qualifying := 0
		for _, b := range books {
			if c.Qualifies(b) {
				qualifying++
			}
		}
		assert.Equal(t, qualifying, res.Qualifying)
		assert.Len(t, res.Books, min(c.Count, qualifying))

		for i, b := range res.Books {
			assert.GreaterOrEqual(t, b.Rating, c.MinRating)
			assert.Greater(t, b.PageCount, 0)
			assert.LessOrEqual(t, b.PageCount, c.MaxPages)
			if i == 0 {
				continue
			}
			prev := res.Books[i-1].PageCount
			if c.Order == types.SortAscending {
				assert.LessOrEqual(t, prev, b.PageCount)
			} else {
				assert.GreaterOrEqual(t, prev, b.PageCount)
			}
		}
	}
}

func TestCriteriaFromConfig(t *testing.T) {
	cfg := types.DefaultConfig()
	c := CriteriaFromConfig(cfg)
	assert.Equal(t, Criteria{MinRating: 4.0, MaxPages: 300, Count: 20, Order: types.SortDescending}, c)
}
