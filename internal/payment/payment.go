// Package payment abstracts the third-party payment gateway.
package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Intent identifies a created payment in the gateway.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway creates payment intents for orders. Amounts are passed in the
// store's currency unit; conversion to the gateway's minor units happens
// inside the adapter.
type Gateway interface {
	CreateIntent(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*Intent, error)
}
