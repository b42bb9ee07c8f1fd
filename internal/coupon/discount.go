package coupon

import (
	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/model"
)

// Calculate computes the discount for a validated coupon against the
// order amount. Percentage coupons take value percent of the amount,
// fixed coupons take value directly. The discount is clamped by the
// coupon's max_discount ceiling (when positive) and can never exceed the
// order amount itself. Amounts are rounded to two decimal places.
func Calculate(c *model.Coupon, orderAmount decimal.Decimal) Result {
	var discount decimal.Decimal
	switch c.Type {
	case model.CouponPercentage:
		discount = orderAmount.Mul(c.Value).Div(hundred)
	case model.CouponFixed:
		discount = c.Value
	default:
		discount = decimal.Zero
	}

	if c.MaxDiscount.IsPositive() {
		discount = decimal.Min(discount, c.MaxDiscount)
	}
	discount = decimal.Min(discount, orderAmount)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	discount = discount.Round(2)

	return Result{
		DiscountAmount: discount,
		FinalAmount:    orderAmount.Sub(discount).Round(2),
	}
}
