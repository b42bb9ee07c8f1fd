package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
	"github.com/pixelvault/gamestore-api/internal/validator"
)

// mockPaymentConfirmer is a mock implementation of PaymentConfirmer.
type mockPaymentConfirmer struct {
	confirmFn func(ctx context.Context, orderID uuid.UUID, intentID string) (*model.Order, error)
}

func (m *mockPaymentConfirmer) ConfirmPayment(ctx context.Context, orderID uuid.UUID, intentID string) (*model.Order, error) {
	if m.confirmFn != nil {
		return m.confirmFn(ctx, orderID, intentID)
	}
	return &model.Order{}, nil
}

func setupWebhookApp(mockSvc *mockPaymentConfirmer, secret string) *fiber.App {
	app := fiber.New()
	h := NewWebhookHandler(mockSvc, validator.New(), secret)
	app.Post("/api/webhooks/payment", h.Payment)
	return app
}

func webhookBody(orderID uuid.UUID) string {
	return fmt.Sprintf(`{"order_id": %q, "intent_id": "pi_123"}`, orderID)
}

func TestPaymentWebhook_Success(t *testing.T) {
	orderID := uuid.New()
	mockSvc := &mockPaymentConfirmer{
		confirmFn: func(ctx context.Context, id uuid.UUID, intentID string) (*model.Order, error) {
			assert.Equal(t, orderID, id)
			assert.Equal(t, "pi_123", intentID)
			return &model.Order{ID: id, Status: model.OrderPaid}, nil
		},
	}
	app := setupWebhookApp(mockSvc, "hook-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewBufferString(webhookBody(orderID)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhookSecretHeader, "hook-secret")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Data model.Order `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, model.OrderPaid, result.Data.Status)
}

func TestPaymentWebhook_WrongSecret(t *testing.T) {
	mockSvc := &mockPaymentConfirmer{
		confirmFn: func(ctx context.Context, id uuid.UUID, intentID string) (*model.Order, error) {
			t.Fatal("handler must not reach the service with a bad secret")
			return nil, nil
		},
	}
	app := setupWebhookApp(mockSvc, "hook-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewBufferString(webhookBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhookSecretHeader, "wrong")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPaymentWebhook_MissingSecretHeader(t *testing.T) {
	app := setupWebhookApp(&mockPaymentConfirmer{}, "hook-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewBufferString(webhookBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPaymentWebhook_EmptySecretDisablesCheck(t *testing.T) {
	app := setupWebhookApp(&mockPaymentConfirmer{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewBufferString(webhookBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPaymentWebhook_IntentMismatch(t *testing.T) {
	mockSvc := &mockPaymentConfirmer{
		confirmFn: func(ctx context.Context, id uuid.UUID, intentID string) (*model.Order, error) {
			return nil, service.ErrIntentMismatch
		},
	}
	app := setupWebhookApp(mockSvc, "")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewBufferString(webhookBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPaymentWebhook_RejectedOrderConflicts(t *testing.T) {
	mockSvc := &mockPaymentConfirmer{
		confirmFn: func(ctx context.Context, id uuid.UUID, intentID string) (*model.Order, error) {
			return nil, fmt.Errorf("%w: rejected -> paid", service.ErrInvalidTransition)
		},
	}
	app := setupWebhookApp(mockSvc, "")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewBufferString(webhookBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestPaymentWebhook_MissingIntentID(t *testing.T) {
	app := setupWebhookApp(&mockPaymentConfirmer{}, "")

	body := fmt.Sprintf(`{"order_id": %q}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
