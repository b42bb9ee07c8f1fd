package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponType determines how a coupon's value is interpreted.
type CouponType string

const (
	// CouponPercentage interprets value as a percent (0-100) of the order amount.
	CouponPercentage CouponType = "percentage"
	// CouponFixed interprets value as an absolute currency amount.
	CouponFixed CouponType = "fixed"
)

// Valid reports whether the coupon type is a known value.
func (t CouponType) Valid() bool {
	return t == CouponPercentage || t == CouponFixed
}

// UnlimitedUsage is the usage_limit sentinel for coupons without a cap.
const UnlimitedUsage = -1

// Coupon represents an order-level discount code.
type Coupon struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           CouponType      `json:"type"`
	Value          decimal.Decimal `json:"value"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	MaxDiscount    decimal.Decimal `json:"max_discount"`
	ValidFrom      time.Time       `json:"valid_from"`
	ValidTo        time.Time       `json:"valid_to"`
	UsageLimit     int             `json:"usage_limit"`
	UsedCount      int             `json:"used_count"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateCouponRequest is the DTO for creating a coupon. Dates must be
// RFC 3339 timestamps; ambiguous formats are rejected by JSON decoding.
type CreateCouponRequest struct {
	Code           string          `json:"code" validate:"required,notblank,max=64"`
	Name           string          `json:"name" validate:"max=255"`
	Type           CouponType      `json:"type" validate:"required,oneof=percentage fixed"`
	Value          decimal.Decimal `json:"value"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	MaxDiscount    decimal.Decimal `json:"max_discount"`
	ValidFrom      time.Time       `json:"valid_from" validate:"required"`
	ValidTo        time.Time       `json:"valid_to" validate:"required"`
	UsageLimit     *int            `json:"usage_limit"`
	IsActive       *bool           `json:"is_active"`
}

// UpdateCouponRequest is the DTO for updating a coupon.
type UpdateCouponRequest = CreateCouponRequest

// ValidateCouponRequest is the DTO for POST /api/coupons/validate.
type ValidateCouponRequest struct {
	Code        string          `json:"code" validate:"required,notblank,max=64"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

// CouponSummary is the trimmed coupon shape returned by validation.
type CouponSummary struct {
	ID    uuid.UUID       `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Type  CouponType      `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// ValidateCouponResponse is the payload for a successful validation.
type ValidateCouponResponse struct {
	Coupon         CouponSummary   `json:"coupon"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}
