package resolver

import (
	"errors"
	"fmt"
)

// NetworkError wraps a transport failure or non-200 answer from an upstream
// service.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// newNetworkError wraps err for op, lifting the HTTP status code when the
// error chain carries one.
func newNetworkError(op string, err error) *NetworkError {
	ne := &NetworkError{Op: op, Err: err}
	var se interface{ HTTPStatus() int }
	if errors.As(err, &se) {
		ne.StatusCode = se.HTTPStatus()
	}
	return ne
}

// ResolutionError means a place name could not be turned into coordinates.
type ResolutionError struct {
	Place  string
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("resolve %q: %s", e.Place, e.Reason)
	}
	return fmt.Sprintf("resolve %q: no match", e.Place)
}

// EmptyResultError means both venue queries produced no usable venues.
type EmptyResultError struct {
	City string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no venues found near %q", e.City)
}
