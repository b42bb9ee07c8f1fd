package coupon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/model"
)

// Validate checks a coupon's eligibility against a candidate order amount
// at the given instant. Checks run in a fixed order and short-circuit with
// a distinct error: active toggle, validity window (bounds inclusive),
// usage limit (UnlimitedUsage means no cap), minimum order amount.
//
// It has no side effects; incrementing used_count happens at apply time
// in the storage layer.
func Validate(c *model.Coupon, orderAmount decimal.Decimal, now time.Time) error {
	if !c.IsActive {
		return ErrInactive
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return ErrNotValidNow
	}
	if c.UsageLimit != model.UnlimitedUsage && c.UsedCount >= c.UsageLimit {
		return ErrUsageLimitExceeded
	}
	if orderAmount.LessThan(c.MinOrderAmount) {
		return ErrMinOrderAmount
	}
	return nil
}
