package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pixelvault/gamestore-api/internal/auth"
	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
)

// OrderServiceInterface defines the interface for order business logic.
type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	Get(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*model.Order, error)
	Cancel(ctx context.Context, id, userID uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, target model.OrderStatus) (*model.Order, error)
}

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service   OrderServiceInterface
	validator *validator.Validate
}

// NewOrderHandler creates a new OrderHandler with the given service and validator.
func NewOrderHandler(svc OrderServiceInterface, v *validator.Validate) *OrderHandler {
	return &OrderHandler{service: svc, validator: v}
}

// Create handles POST /api/orders. Requires RequireAuth middleware.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	claims := ClaimsFrom(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	var req model.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	order, err := h.service.PlaceOrder(c.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "game not found"})
		case errors.Is(err, service.ErrPackageNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "package not found"})
		case errors.Is(err, service.ErrPackageRequired),
			errors.Is(err, service.ErrPackageNotAllowed),
			errors.Is(err, service.ErrInvalidRequest),
			eligibilityError(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case errors.Is(err, service.ErrCouponNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "coupon not found"})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("user_id", claims.UserID.String()).
			Str("game_id", req.GameID.String()).
			Msg("failed to place order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("order_id", order.ID.String()).
		Str("user_id", claims.UserID.String()).
		Str("total_amount", order.TotalAmount.String()).
		Msg("order placed")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// List handles GET /api/orders, returning the caller's own orders.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	claims := ClaimsFrom(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(c.Context(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID.String()).Msg("failed to list orders")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// Get handles GET /api/orders/:id. Owners and admins may read an order.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	claims := ClaimsFrom(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid order id"})
	}

	order, err := h.service.Get(c.Context(), id, claims.UserID, claims.Role == auth.RoleAdmin)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
		}
		if errors.Is(err, service.ErrNotOrderOwner) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "forbidden"})
		}
		log.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	claims := ClaimsFrom(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid order id"})
	}

	order, err := h.service.Cancel(c.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
		}
		if errors.Is(err, service.ErrNotOrderOwner) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "forbidden"})
		}
		if errors.Is(err, service.ErrOrderNotCancellable) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "only pending orders can be cancelled"})
		}
		log.Error().Err(err).Str("order_id", id.String()).Msg("failed to cancel order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid order id"})
	}

	var req model.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	order, err := h.service.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
		}
		if errors.Is(err, service.ErrInvalidTransition) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("target_status", string(req.Status)).
			Msg("failed to update order status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("order status updated")

	return c.JSON(fiber.Map{"success": true, "data": order})
}
