/*
errors.go - Error types for the labor package

PURPOSE:
  Only malformed input is an error here. Regulatory findings (exceeded
  limits, missing rest) are returned as violation strings on the result,
  never raised, so callers decide whether to block or merely warn.

USAGE:
  if errors.Is(err, labor.ErrInvalidRange) { ... }
*/
package labor

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when the end of a period precedes its start.
	ErrInvalidRange = errors.New("invalid period: end before start")

	// ErrNegativeRate is returned for a negative hourly rate.
	ErrNegativeRate = errors.New("hourly rate must not be negative")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RangeError reports the offending bounds of a reversed period.
type RangeError struct {
	From time.Time
	To   time.Time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid period: %s before %s",
		e.To.Format("2006-01-02"), e.From.Format("2006-01-02"))
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// RateError reports a negative hourly rate.
type RateError struct {
	Rate decimal.Decimal
}

func (e *RateError) Error() string {
	return fmt.Sprintf("hourly rate must not be negative: %s", e.Rate)
}

func (e *RateError) Unwrap() error { return ErrNegativeRate }
