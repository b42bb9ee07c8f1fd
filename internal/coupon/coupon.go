// Package coupon implements coupon eligibility checks and discount
// calculation as pure functions, independent of HTTP and storage.
package coupon

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Eligibility errors, one per validator check. Each carries the
// human-readable reason surfaced to the caller.
var (
	// ErrInactive is returned when the coupon's is_active toggle is off.
	ErrInactive = errors.New("coupon is inactive")
	// ErrNotValidNow is returned when the current time is outside the
	// coupon's validity window. It covers both not-yet-started and expired.
	ErrNotValidNow = errors.New("coupon is not valid at this time")
	// ErrUsageLimitExceeded is returned when the coupon has exhausted its uses.
	ErrUsageLimitExceeded = errors.New("coupon usage limit exceeded")
	// ErrMinOrderAmount is returned when the order is below the coupon's floor.
	ErrMinOrderAmount = errors.New("minimum order amount not met")
)

// Result holds the computed discount and the resulting payable amount.
type Result struct {
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

var hundred = decimal.NewFromInt(100)
