// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing shared by the catalog
// providers: a fixed-delay retry policy for throttled requests and a
// paced JSON fetcher that classifies failures as fatal or soft.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrThrottled is returned when a request is still throttled after the
// policy's last retry.
var ErrThrottled = errors.New("rate limited: retries exhausted")

// RetryPolicy retries a request with a fixed delay while Retryable reports
// the response status as transient. It holds no state between calls.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// Delay is the fixed wait between attempts.
	Delay time.Duration

	// Retryable reports whether a status code should be retried. Nil
	// retries HTTP 429 only.
	Retryable func(status int) bool

	// OnRetry, when set, is called before each wait.
	OnRetry func(attempt int, status int, delay time.Duration)
}

// DefaultRetryPolicy retries HTTP 429 five times, five seconds apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 5,
		Delay:      5 * time.Second,
		Retryable:  IsThrottled,
	}
}

// IsThrottled reports whether status is HTTP 429 Too Many Requests.
func IsThrottled(status int) bool {
	return status == http.StatusTooManyRequests
}

func (p RetryPolicy) retryable(status int) bool {
	if p.Retryable == nil {
		return IsThrottled(status)
	}
	return p.Retryable(status)
}

// Do executes req and retries while the response status is retryable.
//
// On each retryable response the body is drained and closed before
// sleeping. If the context is cancelled during a wait Do returns ctx.Err().
// After the last retry Do returns an error wrapping ErrThrottled; any
// non-retryable response is returned to the caller as-is.
func (p RetryPolicy) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	maxRetries := p.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !p.retryable(resp.StatusCode) {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if attempt >= maxRetries {
			return nil, fmt.Errorf("HTTP %d after %d attempt(s): %w", resp.StatusCode, attempt+1, ErrThrottled)
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt+1, resp.StatusCode, p.Delay)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.Delay):
		}
	}
}
