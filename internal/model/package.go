package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Package is a purchasable denomination of a package-based game
// (e.g. "1000 gems"), optionally carrying an offer price.
type Package struct {
	ID           uuid.UUID       `json:"id"`
	GameID       uuid.UUID       `json:"game_id"`
	Name         string          `json:"name"`
	Denomination string          `json:"denomination"`
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"is_active"`
	Offer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePackageRequest is the DTO for creating a package.
type CreatePackageRequest struct {
	GameID        uuid.UUID        `json:"game_id" validate:"required"`
	Name          string           `json:"name" validate:"required,notblank,max=255"`
	Denomination  string           `json:"denomination" validate:"max=255"`
	Price         decimal.Decimal  `json:"price"`
	IsActive      *bool            `json:"is_active"`
	IsOffer       bool             `json:"is_offer"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	FinalPrice    *decimal.Decimal `json:"final_price"`
}

// UpdatePackageRequest is the DTO for updating a package.
type UpdatePackageRequest = CreatePackageRequest
