package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/coupon"
	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/pkg/database"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, c *model.Coupon) error
	Update(ctx context.Context, c *model.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Coupon, error)
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	// IncrementUsage performs the conditional used_count increment inside
	// the given querier. It reports false when the usage limit is already
	// exhausted (no row updated).
	IncrementUsage(ctx context.Context, q database.TxQuerier, id uuid.UUID) (bool, error)
}

// CouponService provides business logic for coupon administration and
// validation.
type CouponService struct {
	coupons CouponRepositoryInterface
	now     func() time.Time
}

// NewCouponService creates a new CouponService.
func NewCouponService(coupons CouponRepositoryInterface) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

var maxPercent = decimal.NewFromInt(100)

// buildCoupon validates a create/update request and produces the coupon
// record. Codes are upper-cased so lookups are case-insensitive.
func buildCoupon(req *model.CreateCouponRequest) (*model.Coupon, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown coupon type %q", ErrInvalidRequest, req.Type)
	}
	if !req.Value.IsPositive() {
		return nil, fmt.Errorf("%w: value must be greater than 0", ErrInvalidRequest)
	}
	if req.Type == model.CouponPercentage && req.Value.GreaterThan(maxPercent) {
		return nil, fmt.Errorf("%w: percentage value cannot exceed 100", ErrInvalidRequest)
	}
	if req.MinOrderAmount.IsNegative() {
		return nil, fmt.Errorf("%w: min_order_amount cannot be negative", ErrInvalidRequest)
	}
	if req.MaxDiscount.IsNegative() {
		return nil, fmt.Errorf("%w: max_discount cannot be negative", ErrInvalidRequest)
	}
	if !req.ValidFrom.Before(req.ValidTo) {
		return nil, ErrInvalidWindow
	}

	usageLimit := model.UnlimitedUsage
	if req.UsageLimit != nil {
		usageLimit = *req.UsageLimit
	}
	if usageLimit != model.UnlimitedUsage && usageLimit < 1 {
		return nil, fmt.Errorf("%w: usage_limit must be -1 or at least 1", ErrInvalidRequest)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &model.Coupon{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		ValidFrom:      req.ValidFrom,
		ValidTo:        req.ValidTo,
		UsageLimit:     usageLimit,
		IsActive:       isActive,
	}, nil
}

// Create creates a new coupon from the request.
// Returns ErrCouponExists when the code is already taken.
func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	c, err := buildCoupon(req)
	if err != nil {
		return nil, err
	}
	c.ID = uuid.New()
	if err := s.coupons.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces a coupon's fields. The used_count is never writable
// through this path; only the apply-time increment mutates it.
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error) {
	c, err := buildCoupon(req)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.coupons.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a coupon.
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.coupons.Delete(ctx, id)
}

// List returns all coupons, newest first.
func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.coupons.List(ctx)
}

// ValidateCode checks eligibility of a code for the given order amount and
// computes the discount without applying it.
// Returns ErrCouponNotFound for unknown codes and one of the
// coupon package's eligibility errors when a check fails.
func (s *CouponService) ValidateCode(ctx context.Context, code string, orderAmount decimal.Decimal) (*model.ValidateCouponResponse, error) {
	if !orderAmount.IsPositive() {
		return nil, fmt.Errorf("%w: order_amount must be greater than 0", ErrInvalidRequest)
	}

	c, err := s.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}

	if err := coupon.Validate(c, orderAmount, s.now()); err != nil {
		return nil, err
	}

	result := coupon.Calculate(c, orderAmount)
	return &model.ValidateCouponResponse{
		Coupon: model.CouponSummary{
			ID:    c.ID,
			Code:  c.Code,
			Name:  c.Name,
			Type:  c.Type,
			Value: c.Value,
		},
		DiscountAmount: result.DiscountAmount,
		FinalAmount:    result.FinalAmount,
	}, nil
}
