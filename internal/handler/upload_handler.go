package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pixelvault/gamestore-api/internal/upload"
)

// maxUploadSize caps accepted image uploads at 5 MiB.
const maxUploadSize = 5 << 20

// UploadHandler handles admin image uploads for catalog assets.
type UploadHandler struct {
	uploader upload.Uploader
}

// NewUploadHandler creates a new UploadHandler with the given uploader.
func NewUploadHandler(u upload.Uploader) *UploadHandler {
	return &UploadHandler{uploader: u}
}

// Image handles POST /api/admin/uploads. It accepts a multipart form with a
// single "image" file field and returns the hosted URL.
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "image file is required"})
	}
	if fileHeader.Size > maxUploadSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"success": false, "message": "image exceeds maximum size of 5MB"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to open uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "internal server error"})
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Context(), file, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("image upload failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "failed to upload image"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"url": url}})
}
