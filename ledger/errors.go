package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidMonth is returned for month values outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidVariationKind is returned for a kind outside the closed set.
	ErrInvalidVariationKind = errors.New("unknown variation kind")

	// ErrInvalidPaymentKind is returned for a kind outside the closed set.
	ErrInvalidPaymentKind = errors.New("unknown payment kind")

	// ErrVariationNotFound is returned when removing an unknown variation.
	ErrVariationNotFound = errors.New("variation not found")

	// ErrPaymentNotFound is returned when removing an unknown payment.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrNonPositiveAmount is returned for zero or negative monetary input.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// NotFoundError carries the id that failed to resolve.
type NotFoundError struct {
	What string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.What, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.What {
	case "variation":
		return ErrVariationNotFound
	default:
		return ErrPaymentNotFound
	}
}

// IsClientError reports whether the error maps to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidVariationKind) ||
		errors.Is(err, ErrInvalidPaymentKind) ||
		errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrVariationNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}
