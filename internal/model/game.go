package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GameType determines how a game is purchased.
type GameType string

const (
	// GameTypeDirectSale games are bought directly at the game's own price.
	GameTypeDirectSale GameType = "direct_sale"
	// GameTypePackageBased games are bought through one of their packages.
	GameTypePackageBased GameType = "package_based"
)

// Valid reports whether the game type is a known value.
func (t GameType) Valid() bool {
	return t == GameTypeDirectSale || t == GameTypePackageBased
}

// Game is a catalog entry, optionally carrying an offer price.
type Game struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	GameType    GameType        `json:"game_type"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	IsActive    bool            `json:"is_active"`
	Offer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateGameRequest is the DTO for creating a game.
type CreateGameRequest struct {
	CategoryID    uuid.UUID        `json:"category_id" validate:"required"`
	Name          string           `json:"name" validate:"required,notblank,max=255"`
	Slug          string           `json:"slug" validate:"required,notblank,max=255"`
	Description   string           `json:"description" validate:"max=4096"`
	GameType      GameType         `json:"game_type" validate:"required,oneof=direct_sale package_based"`
	Price         decimal.Decimal  `json:"price"`
	ImageURL      string           `json:"image_url" validate:"omitempty,max=2048"`
	IsActive      *bool            `json:"is_active"`
	IsOffer       bool             `json:"is_offer"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	FinalPrice    *decimal.Decimal `json:"final_price"`
}

// UpdateGameRequest is the DTO for updating a game. All fields are
// replaced; partial updates are not supported.
type UpdateGameRequest = CreateGameRequest
