package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderPaid       OrderStatus = "paid"
	OrderDelivered  OrderStatus = "delivered"
	OrderRejected   OrderStatus = "rejected"
)

// Valid reports whether the status is a known value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderPaid, OrderDelivered, OrderRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
// A delivered order still accepts "delivered" as a no-op target.
func (s OrderStatus) Terminal() bool {
	return s == OrderRejected || s == OrderDelivered
}

// transitions maps each status to its allowed successors.
var transitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderPaid, OrderRejected},
	OrderProcessing: {OrderPaid, OrderRejected},
	OrderPaid:       {OrderDelivered, OrderRejected},
	OrderDelivered:  {OrderDelivered},
	OrderRejected:   {},
}

// CanTransition reports whether an order may move from s to target.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// AccountField is one piece of delivery information supplied by the buyer
// (player id, server, login, etc.).
type AccountField struct {
	Label string `json:"label" validate:"required,notblank,max=255"`
	Value string `json:"value" validate:"required,notblank,max=1024"`
}

// Order is a purchase record moving through a fixed status lifecycle.
type Order struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user_id"`
	GameID          uuid.UUID        `json:"game_id"`
	PackageID       *uuid.UUID       `json:"package_id,omitempty"`
	AccountInfo     []AccountField   `json:"account_info"`
	PaymentMethod   string           `json:"payment_method"`
	Note            string           `json:"note"`
	Status          OrderStatus      `json:"status"`
	OriginalAmount  decimal.Decimal  `json:"original_amount"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	CouponID        *uuid.UUID       `json:"coupon_id,omitempty"`
	PaymentIntentID string           `json:"payment_intent_id,omitempty"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
	RefundAmount    *decimal.Decimal `json:"refund_amount,omitempty"`
	RefundDate      *time.Time       `json:"refund_date,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CreateOrderRequest is the DTO for POST /api/orders.
type CreateOrderRequest struct {
	GameID        uuid.UUID      `json:"game_id" validate:"required"`
	PackageID     *uuid.UUID     `json:"package_id"`
	AccountInfo   []AccountField `json:"account_info" validate:"required,min=1,dive"`
	PaymentMethod string         `json:"payment_method" validate:"required,oneof=card wallet manual"`
	CouponCode    string         `json:"coupon_code" validate:"omitempty,max=64"`
	Note          string         `json:"note" validate:"max=2048"`
}

// UpdateOrderStatusRequest is the DTO for the admin status transition.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing paid delivered rejected"`
}

// PaymentWebhookRequest is the payload delivered by the payment gateway
// on successful charge confirmation.
type PaymentWebhookRequest struct {
	OrderID  uuid.UUID `json:"order_id" validate:"required"`
	IntentID string    `json:"intent_id" validate:"required,notblank,max=255"`
}
