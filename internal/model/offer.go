package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConstraintError reports an offer field violating a pricing invariant.
type ConstraintError struct {
	Field  string
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Offer holds the catalog-level discount fields shared by games and packages.
// When IsOffer is false all pointer fields are nil.
type Offer struct {
	IsOffer            bool             `json:"is_offer"`
	OriginalPrice      *decimal.Decimal `json:"original_price,omitempty"`
	FinalPrice         *decimal.Decimal `json:"final_price,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// NormalizeOffer validates and derives the offer fields for a game or
// package write. It is called explicitly at every write boundary.
//
// When is_offer is false it returns an empty Offer, clearing any stale
// price fields. When is_offer is true it requires
// 0 < final_price < original_price and derives the stored
// discount_percentage, rounded to two decimal places.
func NormalizeOffer(isOffer bool, originalPrice, finalPrice *decimal.Decimal) (Offer, error) {
	if !isOffer {
		return Offer{}, nil
	}

	if originalPrice == nil || !originalPrice.IsPositive() {
		return Offer{}, &ConstraintError{Field: "original_price", Reason: "must be greater than 0"}
	}
	if finalPrice == nil || !finalPrice.IsPositive() {
		return Offer{}, &ConstraintError{Field: "final_price", Reason: "must be greater than 0"}
	}
	if !finalPrice.LessThan(*originalPrice) {
		return Offer{}, &ConstraintError{Field: "final_price", Reason: "must be less than original_price"}
	}

	pct := originalPrice.Sub(*finalPrice).Div(*originalPrice).Mul(hundred).Round(2)

	return Offer{
		IsOffer:            true,
		OriginalPrice:      originalPrice,
		FinalPrice:         finalPrice,
		DiscountPercentage: &pct,
	}, nil
}

// EffectivePrice returns the price a buyer pays: the offer's final price
// when an offer is active, otherwise the base price.
func (o Offer) EffectivePrice(base decimal.Decimal) decimal.Decimal {
	if o.IsOffer && o.FinalPrice != nil {
		return *o.FinalPrice
	}
	return base
}
