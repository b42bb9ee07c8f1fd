package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/coupon"
	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
)

// CouponServiceInterface defines the interface for coupon business logic.
type CouponServiceInterface interface {
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Coupon, error)
	ValidateCode(ctx context.Context, code string, orderAmount decimal.Decimal) (*model.ValidateCouponResponse, error)
}

// CouponHandler handles HTTP requests for coupon operations.
type CouponHandler struct {
	service   CouponServiceInterface
	validator *validator.Validate
}

// NewCouponHandler creates a new CouponHandler with the given service and validator.
func NewCouponHandler(svc CouponServiceInterface, v *validator.Validate) *CouponHandler {
	return &CouponHandler{service: svc, validator: v}
}

// eligibilityError reports whether err is one of the coupon eligibility
// failures that surface their reason directly to the caller.
func eligibilityError(err error) bool {
	return errors.Is(err, coupon.ErrInactive) ||
		errors.Is(err, coupon.ErrNotValidNow) ||
		errors.Is(err, coupon.ErrUsageLimitExceeded) ||
		errors.Is(err, coupon.ErrMinOrderAmount)
}

// Create handles POST /api/admin/coupons.
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var req model.CreateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	created, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCouponExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "coupon code already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) || errors.Is(err, service.ErrInvalidWindow) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().Err(err).Str("coupon_code", req.Code).Msg("failed to create coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	log.Info().Str("coupon_code", created.Code).Msg("coupon created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// Update handles PUT /api/admin/coupons/:id.
func (h *CouponHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid coupon id"})
	}

	var req model.UpdateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	updated, err := h.service.Update(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "coupon not found"})
		}
		if errors.Is(err, service.ErrCouponExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "coupon code already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) || errors.Is(err, service.ErrInvalidWindow) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to update coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/admin/coupons/:id.
func (h *CouponHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid coupon id"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "coupon not found"})
		}
		log.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// List handles GET /api/admin/coupons.
func (h *CouponHandler) List(c *fiber.Ctx) error {
	coupons, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": coupons})
}

// Validate handles POST /api/coupons/validate. It checks eligibility and
// computes the discount without consuming a use.
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var req model.ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	resp, err := h.service.ValidateCode(c.Context(), req.Code, req.OrderAmount)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "coupon not found"})
		}
		if eligibilityError(err) || errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("coupon_code", req.Code).
			Msg("failed to validate coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "data": resp})
}
