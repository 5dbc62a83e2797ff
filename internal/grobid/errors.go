package grobid

import (
	"errors"
	"fmt"
)

// Common errors returned by the GROBID client.
var (
	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with GROBID")

	// ErrServiceUnavailable indicates GROBID is up but refuses work (503).
	ErrServiceUnavailable = errors.New("GROBID service not available")

	// ErrNoContent indicates GROBID could not extract anything (203).
	ErrNoContent = errors.New("GROBID could not extract content")

	// ErrMissingInput indicates a form without a PDF payload.
	ErrMissingInput = errors.New("missing input file")
)

// APIError is a documented GROBID error status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GROBID API error: %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match the sentinels for statuses that have one.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrServiceUnavailable:
		return e.StatusCode == 503
	case ErrNoContent:
		return e.StatusCode == 203
	}
	return false
}

// IsRetryable returns true if the request may succeed when repeated.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrServiceUnavailable) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 500
	}
	return false
}
