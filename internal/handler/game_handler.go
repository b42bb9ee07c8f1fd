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

// GameServiceInterface defines the interface for game business logic.
type GameServiceInterface interface {
	ListGames(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]model.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error)
	CreateGame(ctx context.Context, req *model.CreateGameRequest) (*model.Game, error)
	UpdateGame(ctx context.Context, id uuid.UUID, req *model.UpdateGameRequest) (*model.Game, error)
	DeleteGame(ctx context.Context, id uuid.UUID) error
	ListPackages(ctx context.Context, gameID uuid.UUID, activeOnly bool) ([]model.Package, error)
}

// GameHandler handles HTTP requests for game operations.
type GameHandler struct {
	service   GameServiceInterface
	validator *validator.Validate
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(svc GameServiceInterface, v *validator.Validate) *GameHandler {
	return &GameHandler{service: svc, validator: v}
}

// mapOfferError maps offer constraint violations to a 400 response,
// reporting which invariant failed.
func mapOfferError(c *fiber.Ctx, err error) error {
	var ce *model.ConstraintError
	if errors.As(err, &ce) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": ce.Error()})
	}
	return nil
}

// List handles GET /api/games. The optional category query filters by
// category id; only active games are returned.
func (h *GameHandler) List(c *fiber.Ctx) error {
	var categoryID *uuid.UUID
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid category id"})
		}
		categoryID = &id
	}

	games, err := h.service.ListGames(c.Context(), categoryID, true)
	if err != nil {
		log.Error().Err(err).Msg("failed to list games")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": games})
}

// Get handles GET /api/games/:id.
func (h *GameHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid game id"})
	}

	game, err := h.service.GetGame(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "game not found"})
		}
		log.Error().Err(err).Str("game_id", id.String()).Msg("failed to get game")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": game})
}

// Packages handles GET /api/games/:id/packages.
func (h *GameHandler) Packages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid game id"})
	}

	packages, err := h.service.ListPackages(c.Context(), id, true)
	if err != nil {
		log.Error().Err(err).Str("game_id", id.String()).Msg("failed to list packages")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": packages})
}

// Create handles POST /api/admin/games.
func (h *GameHandler) Create(c *fiber.Ctx) error {
	var req model.CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	created, err := h.service.CreateGame(c.Context(), &req)
	if err != nil {
		if resp := mapOfferError(c, err); resp != nil {
			return resp
		}
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "category not found"})
		}
		if errors.Is(err, service.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "slug already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().Err(err).Str("slug", req.Slug).Msg("failed to create game")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// Update handles PUT /api/admin/games/:id.
func (h *GameHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid game id"})
	}

	var req model.UpdateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	updated, err := h.service.UpdateGame(c.Context(), id, &req)
	if err != nil {
		if resp := mapOfferError(c, err); resp != nil {
			return resp
		}
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "game not found"})
		}
		if errors.Is(err, service.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "slug already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().Err(err).Str("game_id", id.String()).Msg("failed to update game")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/admin/games/:id.
func (h *GameHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid game id"})
	}

	if err := h.service.DeleteGame(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "game not found"})
		}
		log.Error().Err(err).Str("game_id", id.String()).Msg("failed to delete game")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
