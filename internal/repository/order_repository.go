package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
	"github.com/pixelvault/gamestore-api/pkg/database"
)

// OrderRepository provides data access for orders using pgx.
type OrderRepository struct {
	pool PoolInterface
}

// NewOrderRepository creates a new OrderRepository with the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// NewOrderRepositoryWithPool creates an OrderRepository with a custom pool
// interface. This is primarily used for testing.
func NewOrderRepositoryWithPool(pool PoolInterface) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, user_id, game_id, package_id, account_info, payment_method, note,
	status, original_amount, discount_amount, total_amount, coupon_id, payment_intent_id,
	paid_at, refund_amount, refund_date, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var refund decimal.NullDecimal
	err := row.Scan(&o.ID, &o.UserID, &o.GameID, &o.PackageID, &o.AccountInfo,
		&o.PaymentMethod, &o.Note, &o.Status, &o.OriginalAmount, &o.DiscountAmount,
		&o.TotalAmount, &o.CouponID, &o.PaymentIntentID, &o.PaidAt, &refund,
		&o.RefundDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.RefundAmount = decPtr(refund)
	return &o, nil
}

// Insert inserts a new order within the given querier (pool or tx).
func (r *OrderRepository) Insert(ctx context.Context, q database.TxQuerier, o *model.Order) error {
	_, err := q.Exec(ctx,
		`INSERT INTO orders (id, user_id, game_id, package_id, account_info, payment_method,
			note, status, original_amount, discount_amount, total_amount, coupon_id,
			payment_intent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.UserID, o.GameID, o.PackageID, o.AccountInfo, o.PaymentMethod,
		o.Note, o.Status, o.OriginalAmount, o.DiscountAmount, o.TotalAmount, o.CouponID,
		o.PaymentIntentID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by id.
// Returns nil, nil if the order is not found.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id %s: %w", id, err)
	}
	return o, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders for user %s: %w", userID, err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders rows: %w", err)
	}
	return orders, nil
}

// Update persists the order's mutable lifecycle fields (status, payment,
// refund provenance).
// Returns service.ErrOrderNotFound when no row matches.
func (r *OrderRepository) Update(ctx context.Context, o *model.Order) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, payment_intent_id = $3, paid_at = $4,
			refund_amount = $5, refund_date = $6, updated_at = now()
		WHERE id = $1`,
		o.ID, o.Status, o.PaymentIntentID, o.PaidAt, nullDec(o.RefundAmount), o.RefundDate)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrOrderNotFound
	}
	return nil
}
