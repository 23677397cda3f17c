// Package services holds the application services behind the HTTP handlers.
// This file centralizes service-level errors so that they can be returned
// consistently and translated into taxonomy errors at the handler layer.
package services

import (
	"errors"
	"fmt"
)

// Bulk verification errors.
var (
	// ErrNoAddresses is returned when a bulk request contains no usable
	// addresses after trimming and de-duplication.
	ErrNoAddresses = errors.New("no addresses to verify")

	// ErrTooManyAddresses is returned when a bulk request exceeds the
	// configured batch size. The concrete value is a *BatchLimitError.
	ErrTooManyAddresses = errors.New("too many addresses")
)

// ErrProbeFailed is returned by HealthService.Check when at least one probe
// failed.
var ErrProbeFailed = errors.New("health probe failed")

// BatchLimitError reports the configured maximum and the received size of an
// oversized bulk request. It matches ErrTooManyAddresses with errors.Is.
type BatchLimitError struct {
	Max      int
	Received int
}

func (e *BatchLimitError) Error() string {
	return fmt.Sprintf("%s: %d exceeds maximum of %d", ErrTooManyAddresses, e.Received, e.Max)
}

// Is makes errors.Is(err, ErrTooManyAddresses) succeed.
func (e *BatchLimitError) Is(target error) bool { return target == ErrTooManyAddresses }
