package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelvault/gamestore-api/internal/coupon"
	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
	"github.com/pixelvault/gamestore-api/internal/validator"
)

// mockCouponService is a mock implementation of CouponServiceInterface.
type mockCouponService struct {
	createFn       func(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	updateFn       func(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	listFn         func(ctx context.Context) ([]model.Coupon, error)
	validateCodeFn func(ctx context.Context, code string, orderAmount decimal.Decimal) (*model.ValidateCouponResponse, error)
}

func (m *mockCouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &model.Coupon{}, nil
}

func (m *mockCouponService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return &model.Coupon{}, nil
}

func (m *mockCouponService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCouponService) List(ctx context.Context) ([]model.Coupon, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCouponService) ValidateCode(ctx context.Context, code string, orderAmount decimal.Decimal) (*model.ValidateCouponResponse, error) {
	if m.validateCodeFn != nil {
		return m.validateCodeFn(ctx, code, orderAmount)
	}
	return nil, nil
}

func setupCouponApp(mockSvc *mockCouponService) *fiber.App {
	app := fiber.New()
	h := NewCouponHandler(mockSvc, validator.New())
	app.Post("/api/coupons/validate", h.Validate)
	app.Post("/api/admin/coupons", h.Create)
	app.Get("/api/admin/coupons", h.List)
	return app
}

func TestValidateCoupon_Success(t *testing.T) {
	mockSvc := &mockCouponService{
		validateCodeFn: func(ctx context.Context, code string, orderAmount decimal.Decimal) (*model.ValidateCouponResponse, error) {
			assert.Equal(t, "SAVE10", code)
			assert.True(t, orderAmount.Equal(decimal.NewFromInt(150)))
			return &model.ValidateCouponResponse{
				Coupon: model.CouponSummary{
					ID:    uuid.New(),
					Code:  "SAVE10",
					Type:  model.CouponPercentage,
					Value: decimal.NewFromInt(10),
				},
				DiscountAmount: decimal.NewFromInt(15),
				FinalAmount:    decimal.NewFromInt(135),
			}, nil
		},
	}
	app := setupCouponApp(mockSvc)

	body := `{"code": "SAVE10", "order_amount": 150}`
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			DiscountAmount decimal.Decimal `json:"discount_amount"`
			FinalAmount    decimal.Decimal `json:"final_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.True(t, result.Data.DiscountAmount.Equal(decimal.NewFromInt(15)))
	assert.True(t, result.Data.FinalAmount.Equal(decimal.NewFromInt(135)))
}

func TestValidateCoupon_NotFound(t *testing.T) {
	mockSvc := &mockCouponService{
		validateCodeFn: func(ctx context.Context, code string, orderAmount decimal.Decimal) (*model.ValidateCouponResponse, error) {
			return nil, service.ErrCouponNotFound
		},
	}
	app := setupCouponApp(mockSvc)

	body := `{"code": "NOPE", "order_amount": 100}`
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "coupon not found", result["message"])
}

func TestValidateCoupon_Ineligible(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"inactive", coupon.ErrInactive, "coupon is inactive"},
		{"outside window", coupon.ErrNotValidNow, "coupon is not valid at this time"},
		{"exhausted", coupon.ErrUsageLimitExceeded, "coupon usage limit exceeded"},
		{"below floor", coupon.ErrMinOrderAmount, "minimum order amount not met"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mockCouponService{
				validateCodeFn: func(ctx context.Context, code string, orderAmount decimal.Decimal) (*model.ValidateCouponResponse, error) {
					return nil, tc.err
				},
			}
			app := setupCouponApp(mockSvc)

			body := `{"code": "SAVE10", "order_amount": 100}`
			req := httptest.NewRequest(http.MethodPost, "/api/coupons/validate", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var result map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
			assert.Equal(t, tc.want, result["message"])
		})
	}
}

func TestValidateCoupon_MissingCode(t *testing.T) {
	app := setupCouponApp(&mockCouponService{})

	body := `{"order_amount": 100}`
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid request: code is required", result["message"])
}

func TestValidateCoupon_InternalError(t *testing.T) {
	mockSvc := &mockCouponService{
		validateCodeFn: func(ctx context.Context, code string, orderAmount decimal.Decimal) (*model.ValidateCouponResponse, error) {
			return nil, errors.New("database connection failed")
		},
	}
	app := setupCouponApp(mockSvc)

	body := `{"code": "SAVE10", "order_amount": 100}`
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestCreateCoupon_NonISODateRejected(t *testing.T) {
	app := setupCouponApp(&mockCouponService{})

	// Ambiguous date formats must not decode; only RFC 3339 is accepted.
	body := `{"code": "SAVE10", "type": "percentage", "value": 10, "valid_from": "01/02/2026", "valid_to": "12/31/2026"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/coupons", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "invalid request body", result["message"])
}

func TestCreateCoupon_Duplicate(t *testing.T) {
	mockSvc := &mockCouponService{
		createFn: func(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
			return nil, service.ErrCouponExists
		},
	}
	app := setupCouponApp(mockSvc)

	body := `{"code": "SAVE10", "type": "percentage", "value": 10, "valid_from": "2026-01-01T00:00:00Z", "valid_to": "2026-12-31T23:59:59Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/coupons", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
