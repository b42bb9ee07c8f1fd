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

// CategoryServiceInterface defines the interface for category business logic.
type CategoryServiceInterface interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *model.UpdateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service   CategoryServiceInterface
	validator *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc CategoryServiceInterface, v *validator.Validate) *CategoryHandler {
	return &CategoryHandler{service: svc, validator: v}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// Create handles POST /api/admin/categories.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req model.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	created, err := h.service.CreateCategory(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "slug already exists"})
		}
		log.Error().Err(err).Str("slug", req.Slug).Msg("failed to create category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// Update handles PUT /api/admin/categories/:id.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid category id"})
	}

	var req model.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	updated, err := h.service.UpdateCategory(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "category not found"})
		}
		if errors.Is(err, service.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "slug already exists"})
		}
		log.Error().Err(err).Str("category_id", id.String()).Msg("failed to update category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/admin/categories/:id.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid category id"})
	}

	if err := h.service.DeleteCategory(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "category not found"})
		}
		log.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
