package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/coupon"
	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/payment"
	"github.com/pixelvault/gamestore-api/pkg/database"
)

// OrderRepositoryInterface defines the interface for order data access.
type OrderRepositoryInterface interface {
	Insert(ctx context.Context, q database.TxQuerier, o *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	Update(ctx context.Context, o *model.Order) error
}

// TxBeginner defines the interface for beginning transactions.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderService provides business logic for order placement and the order
// status lifecycle.
type OrderService struct {
	pool    TxBeginner
	games   GameRepositoryInterface
	pkgs    PackageRepositoryInterface
	coupons CouponRepositoryInterface
	orders  OrderRepositoryInterface
	gateway payment.Gateway
	now     func() time.Time
}

// NewOrderService creates a new OrderService. The gateway may be nil, in
// which case card orders are created without a payment intent.
func NewOrderService(
	pool *pgxpool.Pool,
	games GameRepositoryInterface,
	pkgs PackageRepositoryInterface,
	coupons CouponRepositoryInterface,
	orders OrderRepositoryInterface,
	gateway payment.Gateway,
) *OrderService {
	return &OrderService{
		pool:    pool,
		games:   games,
		pkgs:    pkgs,
		coupons: coupons,
		orders:  orders,
		gateway: gateway,
		now:     time.Now,
	}
}

// NewOrderServiceWithTxBeginner creates an OrderService with a custom
// TxBeginner. Primarily used for testing.
func NewOrderServiceWithTxBeginner(
	pool TxBeginner,
	games GameRepositoryInterface,
	pkgs PackageRepositoryInterface,
	coupons CouponRepositoryInterface,
	orders OrderRepositoryInterface,
	gateway payment.Gateway,
) *OrderService {
	return &OrderService{
		pool:    pool,
		games:   games,
		pkgs:    pkgs,
		coupons: coupons,
		orders:  orders,
		gateway: gateway,
		now:     time.Now,
	}
}

// resolveAmount fetches the game (and package when applicable) and returns
// the order's base amount. Direct-sale games take no package; all other
// game types require one belonging to the game.
func (s *OrderService) resolveAmount(ctx context.Context, req *model.CreateOrderRequest) (decimal.Decimal, error) {
	g, err := s.games.GetByID(ctx, req.GameID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get game: %w", err)
	}
	if g == nil || !g.IsActive {
		return decimal.Zero, ErrGameNotFound
	}

	if g.GameType == model.GameTypeDirectSale {
		if req.PackageID != nil {
			return decimal.Zero, ErrPackageNotAllowed
		}
		return g.EffectivePrice(g.Price), nil
	}

	if req.PackageID == nil {
		return decimal.Zero, ErrPackageRequired
	}
	p, err := s.pkgs.GetByID(ctx, *req.PackageID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get package: %w", err)
	}
	if p == nil || !p.IsActive || p.GameID != g.ID {
		return decimal.Zero, ErrPackageNotFound
	}
	return p.EffectivePrice(p.Price), nil
}

// PlaceOrder validates the request, applies an optional coupon, persists
// the order, and applies the coupon usage increment atomically with the
// insert. The conditional increment is the usage-limit source of truth:
// when it updates no row the whole placement fails with
// coupon.ErrUsageLimitExceeded and nothing is persisted.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.Order, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	amount, err := s.resolveAmount(ctx, req)
	if err != nil {
		return nil, err
	}

	var applied *model.Coupon
	discount := decimal.Zero
	total := amount
	if req.CouponCode != "" {
		c, err := s.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(req.CouponCode)))
		if err != nil {
			return nil, fmt.Errorf("get coupon: %w", err)
		}
		if c == nil {
			return nil, ErrCouponNotFound
		}
		if err := coupon.Validate(c, amount, s.now()); err != nil {
			return nil, err
		}
		result := coupon.Calculate(c, amount)
		applied = c
		discount = result.DiscountAmount
		total = result.FinalAmount
	}

	o := &model.Order{
		ID:             uuid.New(),
		UserID:         userID,
		GameID:         req.GameID,
		PackageID:      req.PackageID,
		AccountInfo:    req.AccountInfo,
		PaymentMethod:  req.PaymentMethod,
		Note:           strings.TrimSpace(req.Note),
		Status:         model.OrderPending,
		OriginalAmount: amount,
		DiscountAmount: discount,
		TotalAmount:    total,
	}
	if applied != nil {
		o.CouponID = &applied.ID
	}

	if req.PaymentMethod == "card" && s.gateway != nil {
		intent, err := s.gateway.CreateIntent(ctx, o.ID, total)
		if err != nil {
			return nil, fmt.Errorf("create payment intent: %w", err)
		}
		o.PaymentIntentID = intent.ID
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // Safe: no-op if committed

	if err := s.orders.Insert(ctx, tx, o); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if applied != nil {
		ok, err := s.coupons.IncrementUsage(ctx, tx, applied.ID)
		if err != nil {
			return nil, fmt.Errorf("increment coupon usage: %w", err)
		}
		if !ok {
			// Another order consumed the last use between validate and apply.
			return nil, coupon.ErrUsageLimitExceeded
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return o, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// Get returns an order visible to the requester: the owner or an admin.
func (s *OrderService) Get(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*model.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, ErrNotOrderOwner
	}
	return o, nil
}

// Cancel rejects a pending order on behalf of its owner.
func (s *OrderService) Cancel(ctx context.Context, id, userID uuid.UUID) (*model.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	if o.Status != model.OrderPending {
		return nil, ErrOrderNotCancellable
	}

	o.Status = model.OrderRejected
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// UpdateStatus applies an admin status transition through the state
// machine. Transitioning paid→rejected records the refund amount and date;
// any transition into paid stamps paid_at. delivered→delivered is a no-op.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, target model.OrderStatus) (*model.Order, error) {
	if !target.Valid() {
		return nil, ErrInvalidTransition
	}

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if o.Status == target && o.Status == model.OrderDelivered {
		return o, nil
	}
	if !o.Status.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
	}

	now := s.now()
	if o.Status == model.OrderPaid && target == model.OrderRejected {
		refund := o.TotalAmount
		o.RefundAmount = &refund
		o.RefundDate = &now
	}
	if target == model.OrderPaid {
		o.PaidAt = &now
	}
	o.Status = target

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// ConfirmPayment reacts to the gateway's charge confirmation webhook with
// the pending→paid transition. Confirmations for an already-paid order are
// idempotent. The delivered intent id must match the one stored at
// placement time.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID uuid.UUID, intentID string) (*model.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.Status == model.OrderPaid {
		return o, nil
	}
	if o.PaymentIntentID != "" && o.PaymentIntentID != intentID {
		return nil, ErrIntentMismatch
	}
	if !o.Status.CanTransition(model.OrderPaid) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, model.OrderPaid)
	}

	now := s.now()
	o.Status = model.OrderPaid
	o.PaidAt = &now
	if o.PaymentIntentID == "" {
		o.PaymentIntentID = intentID
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}
