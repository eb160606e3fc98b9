/*
errors.go - Centralized error types for the budget engine

PURPOSE:
  All engine error types in one place. Callers (HTTP layer, stores)
  should wrap these, never invent parallel taxonomies.

ERROR CATEGORIES:
  1. Validation errors - bad input rejected before any mutation
  2. Store errors - persistence failures surfaced by StateStore

  Two things are deliberately NOT errors:
  - An incomplete intent: a normal resolver transition, surfaced as a
    clarification prompt (see intent.Resolver)
  - Division guards in budget math: resolved by documented fallbacks
    (daily limit with zero days, goal impact with zero requirement)

USAGE:
  if errors.Is(err, engine.ErrValidation) {
      // 400, report verbatim; state was not mutated
  }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of all input-rejection errors. No partial
	// mutation has occurred when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrStateNotFound is returned by stores when no persisted state
	// exists yet. Callers typically fall back to NewFinancialState.
	ErrStateNotFound = errors.New("financial state not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError reports which field was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// errNonPositiveAmount is the most common rejection: zero and negative
// amounts are refused outright, never silently clamped.
func errNonPositiveAmount(field string) error {
	return &ValidationError{Field: field, Reason: "must be greater than zero"}
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation)
}
