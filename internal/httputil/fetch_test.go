// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(ts *httptest.Server) *Fetcher {
	return NewFetcher(ts.Client(), testPolicy(5), 0, "test/0.1", nil)
}

func TestGetJSON_Success(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"docs":[{"n":400}]}`)
	}))
	defer ts.Close()

	body, err := newTestFetcher(ts).GetJSON(context.Background(), "Open Library", ts.URL, BestEffort)
	require.NoError(t, err)

	assert.Equal(t, "test/0.1", ua)
	docs, ok := body["docs"].([]any)
	require.True(t, ok)
	require.Len(t, docs, 1)
	assert.Equal(t, json.Number("400"), docs[0].(map[string]any)["n"])
}

func TestGetJSON_StatusClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		mode      Mode
		wantFatal bool
		wantSoft  bool
	}{
		{"required 500 is fatal", http.StatusInternalServerError, Required, true, false},
		{"required 403 is fatal", http.StatusForbidden, Required, true, false},
		{"best effort 500 is soft", http.StatusInternalServerError, BestEffort, false, true},
		{"best effort 404 is soft", http.StatusNotFound, BestEffort, false, true},
		{"required 429 exhausted is fatal", http.StatusTooManyRequests, Required, true, false},
		{"best effort 429 exhausted is fatal", http.StatusTooManyRequests, BestEffort, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			f := NewFetcher(ts.Client(), testPolicy(1), 0, "", nil)
			body, err := f.GetJSON(context.Background(), "p", ts.URL, tt.mode)
			require.Error(t, err)
			assert.Nil(t, body)
			assert.Equal(t, tt.wantFatal, IsFatal(err), "IsFatal: %v", err)
			assert.Equal(t, tt.wantSoft, IsSoft(err), "IsSoft: %v", err)
		})
	}
}

func TestGetJSON_ThrottledWrapsSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := newTestFetcher(ts).GetJSON(context.Background(), "Google Books", ts.URL, Required)
	assert.ErrorIs(t, err, ErrThrottled)

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusTooManyRequests, fe.Status)
	assert.Equal(t, "Google Books", fe.Provider)
}

func TestGetJSON_RetriesThenUsesLastPayload(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprintf(w, `{"attempt":%d}`, n)
	}))
	defer ts.Close()

	body, err := newTestFetcher(ts).GetJSON(context.Background(), "p", ts.URL, Required)
	require.NoError(t, err)
	assert.Equal(t, json.Number("4"), body["attempt"])
}

func TestGetJSON_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer ts.Close()

	f := newTestFetcher(ts)

	_, err := f.GetJSON(context.Background(), "p", ts.URL, BestEffort)
	assert.True(t, IsSoft(err))

	_, err = f.GetJSON(context.Background(), "p", ts.URL, Required)
	assert.True(t, IsFatal(err))
}

func TestGetJSON_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	f := NewFetcher(&http.Client{Timeout: time.Second}, testPolicy(0), 0, "", nil)

	_, err := f.GetJSON(context.Background(), "p", url, BestEffort)
	assert.True(t, IsSoft(err))

	_, err = f.GetJSON(context.Background(), "p", url, Required)
	assert.True(t, IsFatal(err))
}

func TestGetJSON_CancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	f := NewFetcher(ts.Client(), RetryPolicy{MaxRetries: 5, Delay: time.Second}, 0, "", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.GetJSON(ctx, "p", ts.URL, Required)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, IsFatal(err))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "required", Required.String())
	assert.Equal(t, "best-effort", BestEffort.String())
}
