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

// PackageServiceInterface defines the interface for package business logic.
type PackageServiceInterface interface {
	CreatePackage(ctx context.Context, req *model.CreatePackageRequest) (*model.Package, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, req *model.UpdatePackageRequest) (*model.Package, error)
	DeletePackage(ctx context.Context, id uuid.UUID) error
}

// PackageHandler handles HTTP requests for admin package operations.
type PackageHandler struct {
	service   PackageServiceInterface
	validator *validator.Validate
}

// NewPackageHandler creates a new PackageHandler.
func NewPackageHandler(svc PackageServiceInterface, v *validator.Validate) *PackageHandler {
	return &PackageHandler{service: svc, validator: v}
}

// Create handles POST /api/admin/packages.
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var req model.CreatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	created, err := h.service.CreatePackage(c.Context(), &req)
	if err != nil {
		if resp := mapOfferError(c, err); resp != nil {
			return resp
		}
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "game not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().Err(err).Str("game_id", req.GameID.String()).Msg("failed to create package")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// Update handles PUT /api/admin/packages/:id.
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid package id"})
	}

	var req model.UpdatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": formatValidationError(err)})
	}

	updated, err := h.service.UpdatePackage(c.Context(), id, &req)
	if err != nil {
		if resp := mapOfferError(c, err); resp != nil {
			return resp
		}
		if errors.Is(err, service.ErrPackageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "package not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().Err(err).Str("package_id", id.String()).Msg("failed to update package")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/admin/packages/:id.
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid package id"})
	}

	if err := h.service.DeletePackage(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "package not found"})
		}
		log.Error().Err(err).Str("package_id", id.String()).Msg("failed to delete package")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
