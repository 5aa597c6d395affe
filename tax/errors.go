/*
errors.go - Centralized error types for the tax package

PURPOSE:
  All error types in one place for consistency and discoverability.
  The ledger package and the HTTP adapter wrap these with more context.

ERROR CATEGORIES:
  1. Registry errors   - No tables to resolve against
  2. Validation errors - Domain constraint violations (vacation day bounds)

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, tax.ErrInvalidVacationDays) {
        // reject the request, never clamp the values
    }

SEE ALSO:
  - registry.go: Uses ErrEmptyRegistry
  - vacation.go: Uses ErrInvalidVacationDays
*/
package tax

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyRegistry is returned when a date lookup is attempted against a
	// registry with no tables. This is the only failure mode of Resolve;
	// out-of-range dates fall back to the nearest table instead.
	ErrEmptyRegistry = errors.New("no tax tables registered")

	// ErrInvalidVacationDays is returned when vacation day counts violate the
	// statutory bounds. Values are rejected, never silently clamped.
	ErrInvalidVacationDays = errors.New("invalid vacation days")

	// ErrInvalidInstallment is returned when a 13th-salary installment other
	// than 1 or 2 is requested.
	ErrInvalidInstallment = errors.New("13th installment must be 1 or 2")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// VacationDaysError details which vacation bound was violated.
type VacationDaysError struct {
	DaysEnjoyed int
	DaysSold    int
	Reason      string
}

func (e *VacationDaysError) Error() string {
	return fmt.Sprintf("invalid vacation days (enjoyed=%d, sold=%d): %s",
		e.DaysEnjoyed, e.DaysSold, e.Reason)
}

func (e *VacationDaysError) Unwrap() error {
	return ErrInvalidVacationDays
}

// IsValidation returns true if the error is due to invalid caller input,
// as opposed to a misconfigured registry.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidVacationDays) ||
		errors.Is(err, ErrInvalidInstallment)
}
