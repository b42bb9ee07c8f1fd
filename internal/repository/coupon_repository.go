package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
	"github.com/pixelvault/gamestore-api/pkg/database"
)

// CouponRepository provides data access for coupons using pgx.
type CouponRepository struct {
	pool PoolInterface
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// NewCouponRepositoryWithPool creates a CouponRepository with a custom
// pool interface. This is primarily used for testing.
func NewCouponRepositoryWithPool(pool PoolInterface) *CouponRepository {
	return &CouponRepository{pool: pool}
}

const couponColumns = `id, code, name, type, value, min_order_amount, max_discount,
	valid_from, valid_to, usage_limit, used_count, is_active, created_at, updated_at`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Type, &c.Value, &c.MinOrderAmount,
		&c.MaxDiscount, &c.ValidFrom, &c.ValidTo, &c.UsageLimit, &c.UsedCount,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert inserts a new coupon.
// Returns service.ErrCouponExists when the code already exists.
func (r *CouponRepository) Insert(ctx context.Context, c *model.Coupon) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO coupons (id, code, name, type, value, min_order_amount, max_discount,
			valid_from, valid_to, usage_limit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Code, c.Name, c.Type, c.Value, c.MinOrderAmount, c.MaxDiscount,
		c.ValidFrom, c.ValidTo, c.UsageLimit, c.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrCouponExists
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// Update replaces a coupon's fields. used_count is deliberately left
// untouched; only IncrementUsage mutates it.
// Returns service.ErrCouponNotFound when no row matches.
func (r *CouponRepository) Update(ctx context.Context, c *model.Coupon) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET code = $2, name = $3, type = $4, value = $5,
			min_order_amount = $6, max_discount = $7, valid_from = $8, valid_to = $9,
			usage_limit = $10, is_active = $11, updated_at = now()
		WHERE id = $1`,
		c.ID, c.Code, c.Name, c.Type, c.Value, c.MinOrderAmount, c.MaxDiscount,
		c.ValidFrom, c.ValidTo, c.UsageLimit, c.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrCouponExists
		}
		return fmt.Errorf("update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// Delete removes a coupon.
// Returns service.ErrCouponNotFound when no row matches.
func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// List returns all coupons, newest first.
func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coupons rows: %w", err)
	}
	return coupons, nil
}

// GetByCode retrieves a coupon by its (upper-cased) code.
// Returns nil, nil if the coupon is not found (service layer handles this).
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon by code %s: %w", code, err)
	}
	return c, nil
}

// IncrementUsage applies the used_count increment as a single conditional
// update, so two concurrent orders can never push a coupon past its limit.
// It reports false when the limit is already exhausted (no row updated and
// the coupon exists).
func (r *CouponRepository) IncrementUsage(ctx context.Context, q database.TxQuerier, id uuid.UUID) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE coupons SET used_count = used_count + 1, updated_at = now()
		WHERE id = $1 AND (usage_limit = -1 OR used_count < usage_limit)`, id)
	if err != nil {
		return false, fmt.Errorf("increment coupon usage: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
