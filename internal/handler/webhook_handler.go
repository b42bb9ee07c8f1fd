package handler

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
)

// webhookSecretHeader carries the shared secret the payment provider is
// configured to send with every callback.
const webhookSecretHeader = "X-Webhook-Secret"

// PaymentConfirmer confirms payment for an order identified by the gateway callback.
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, orderID uuid.UUID, intentID string) (*model.Order, error)
}

// WebhookHandler handles payment gateway callbacks.
type WebhookHandler struct {
	service   PaymentConfirmer
	validator *validator.Validate
	secret    string
}

// NewWebhookHandler creates a new WebhookHandler. An empty secret disables
// the shared-secret check, which is only acceptable in local development.
func NewWebhookHandler(svc PaymentConfirmer, v *validator.Validate, secret string) *WebhookHandler {
	return &WebhookHandler{service: svc, validator: v, secret: secret}
}

// Payment handles POST /api/webhooks/payment.
func (h *WebhookHandler) Payment(c *fiber.Ctx) error {
	if h.secret != "" {
		got := c.Get(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
		}
	}

	var req model.PaymentWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	order, err := h.service.ConfirmPayment(c.Context(), req.OrderID, req.IntentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
		case errors.Is(err, service.ErrIntentMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "payment intent mismatch"})
		case errors.Is(err, service.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "order cannot be marked as paid"})
		}
		log.Error().
			Err(err).
			Str("order_id", req.OrderID.String()).
			Msg("failed to confirm payment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("payment confirmed")

	return c.JSON(fiber.Map{"success": true, "data": order})
}
