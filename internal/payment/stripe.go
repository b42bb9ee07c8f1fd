package payment

import (
	"fmt"

	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var minorUnits = decimal.NewFromInt(100)

// StripeGateway implements Gateway using the Stripe API.
type StripeGateway struct {
	api      *client.API
	currency string
}

var _ Gateway = (*StripeGateway)(nil)

// NewStripeGateway creates a StripeGateway with the given secret key and
// ISO currency code (e.g. "usd").
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, currency: currency}
}

// CreateIntent creates a Stripe PaymentIntent for the order. The amount is
// converted to the currency's minor units here.
func (g *StripeGateway) CreateIntent(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount.Mul(minorUnits).Round(0).IntPart()),
		Currency: stripe.String(g.currency),
	}
	params.Context = ctx
	params.AddMetadata("order_id", orderID.String())

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe payment intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
