// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"errors"
	"fmt"
)

// FatalError reports a failed request to a provider the run cannot do
// without. It aborts the run.
type FatalError struct {
	Provider string
	Status   int // 0 when no response was received
	Err      error
}

func (e *FatalError) Error() string {
	if e.Status != 0 && e.Err == nil {
		return fmt.Sprintf("%s API returned HTTP %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s API request: %v", e.Provider, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// SoftError reports a failed request to a best-effort provider. Callers
// log it and continue as if the provider returned no data.
type SoftError struct {
	Provider string
	Status   int // 0 when no response was received
	Err      error
}

func (e *SoftError) Error() string {
	if e.Status != 0 && e.Err == nil {
		return fmt.Sprintf("%s API returned HTTP %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s API unavailable: %v", e.Provider, e.Err)
}

func (e *SoftError) Unwrap() error { return e.Err }

// IsFatal reports whether err carries a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// IsSoft reports whether err carries a SoftError.
func IsSoft(err error) bool {
	var se *SoftError
	return errors.As(err, &se)
}
