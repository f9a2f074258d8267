// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Mode selects how a non-200 response is reported.
type Mode int

const (
	// Required providers fail the run on any non-200 response.
	Required Mode = iota
	// BestEffort providers degrade to "no data" on non-200 responses and
	// transport failures. Exhausted throttling is still fatal.
	BestEffort
)

func (m Mode) String() string {
	if m == BestEffort {
		return "best-effort"
	}
	return "required"
}

// Fetcher issues paced GET requests and decodes JSON object bodies.
type Fetcher struct {
	Client    *http.Client
	Policy    RetryPolicy
	Limiter   *rate.Limiter
	UserAgent string
	Logger    *slog.Logger
}

// NewFetcher returns a Fetcher with the given policy. A requestsPerSecond of
// zero or less disables pacing.
func NewFetcher(client *http.Client, policy RetryPolicy, requestsPerSecond float64, userAgent string, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	f := &Fetcher{
		Client:    client,
		Policy:    policy,
		Limiter:   rate.NewLimiter(limit, 1),
		UserAgent: userAgent,
		Logger:    logger,
	}
	if f.Policy.OnRetry == nil {
		f.Policy.OnRetry = func(attempt, status int, delay time.Duration) {
			f.Logger.Warn("rate limited, retrying",
				"status", status, "delay", delay,
				"attempt", attempt, "max_retries", f.Policy.MaxRetries)
		}
	}
	return f
}

// GetJSON fetches rawURL and decodes the body as a JSON object. Numbers are
// kept as json.Number so callers can coerce them without float rounding.
func (f *Fetcher) GetJSON(ctx context.Context, provider, rawURL string, mode Mode) (map[string]any, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", provider, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	f.Logger.Debug("fetching", "provider", provider, "mode", mode.String())

	resp, err := f.Policy.Do(ctx, f.Client, req)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, ErrThrottled):
			return nil, &FatalError{Provider: provider, Status: http.StatusTooManyRequests, Err: err}
		case mode == BestEffort:
			return nil, &SoftError{Provider: provider, Err: err}
		default:
			return nil, &FatalError{Provider: provider, Err: err}
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		if mode == BestEffort {
			return nil, &SoftError{Provider: provider, Status: resp.StatusCode}
		}
		return nil, &FatalError{Provider: provider, Status: resp.StatusCode}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		err = fmt.Errorf("parsing response: %w", err)
		if mode == BestEffort {
			return nil, &SoftError{Provider: provider, Status: resp.StatusCode, Err: err}
		}
		return nil, &FatalError{Provider: provider, Status: resp.StatusCode, Err: err}
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}
