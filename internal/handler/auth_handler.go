package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
)

// AuthServiceInterface defines the interface for auth business logic.
type AuthServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Profile(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service   AuthServiceInterface
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given service and validator.
func NewAuthHandler(svc AuthServiceInterface, v *validator.Validate) *AuthHandler {
	return &AuthHandler{service: svc, validator: v}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	resp, err := h.service.Register(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "email already registered"})
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to register user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	log.Info().Str("user_id", resp.User.ID.String()).Msg("user registered")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": resp})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	resp, err := h.service.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "invalid email or password"})
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to log in user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "data": resp})
}

// Me handles GET /api/auth/me. Requires RequireAuth middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := ClaimsFrom(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	user, err := h.service.Profile(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
		}
		log.Error().Err(err).Str("user_id", claims.UserID.String()).Msg("failed to load profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}
