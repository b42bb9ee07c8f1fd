package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups games for catalog browsing.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryRequest is the DTO for creating a category.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Slug     string `json:"slug" validate:"required,notblank,max=255"`
	ImageURL string `json:"image_url" validate:"omitempty,max=2048"`
}

// UpdateCategoryRequest is the DTO for updating a category.
type UpdateCategoryRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Slug     string `json:"slug" validate:"required,notblank,max=255"`
	ImageURL string `json:"image_url" validate:"omitempty,max=2048"`
}
