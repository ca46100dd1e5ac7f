/*
errors.go - Centralized error types for the invoicing domain

PURPOSE:
  All error types in one place for consistency and discoverability.
  The store returns sentinel not-found errors; validation produces
  structured field errors that unwrap to ErrValidation.

USAGE:
  if errors.Is(err, invoice.ErrClientNotFound) { ... }

  var verr *invoice.ValidationError
  if errors.As(err, &verr) {
      // verr.Field, verr.Message
  }
*/
package invoice

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrClientNotFound is returned by store mutations targeting a client
	// identifier that does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrInvoiceNotFound is returned by store mutations targeting an
	// invoice identifier that does not exist.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrValidation is the root of all field validation failures.
	ErrValidation = errors.New("validation failed")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError reports a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrInvoiceNotFound)
}

// IsValidation returns true if the error is due to invalid input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
