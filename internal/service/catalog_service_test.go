package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelvault/gamestore-api/internal/model"
)

func validGameRequest(categoryID uuid.UUID) *model.CreateGameRequest {
	return &model.CreateGameRequest{
		CategoryID: categoryID,
		Name:       "Stellar Drift",
		Slug:       "Stellar-Drift",
		GameType:   model.GameTypeDirectSale,
		Price:      decimal.NewFromInt(60),
	}
}

func TestCatalogService_CreateGame(t *testing.T) {
	categoryID := uuid.New()
	categories := &mockCategoryRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Category, error) {
			if id == categoryID {
				return &model.Category{ID: categoryID, Name: "Action"}, nil
			}
			return nil, nil
		},
	}
	var inserted *model.Game
	games := &mockGameRepo{
		insertFn: func(ctx context.Context, g *model.Game) error {
			inserted = g
			return nil
		},
	}
	svc := NewCatalogService(categories, games, &mockPackageRepo{})

	g, err := svc.CreateGame(context.Background(), validGameRequest(categoryID))
	require.NoError(t, err)

	assert.Equal(t, "stellar-drift", g.Slug, "slug is normalized to lowercase")
	assert.True(t, g.IsActive, "games default to active")
	assert.False(t, g.IsOffer)
	require.NotNil(t, inserted)
}

func TestCatalogService_CreateGame_UnknownCategory(t *testing.T) {
	categories := &mockCategoryRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Category, error) {
			return nil, nil
		},
	}
	svc := NewCatalogService(categories, &mockGameRepo{}, &mockPackageRepo{})

	_, err := svc.CreateGame(context.Background(), validGameRequest(uuid.New()))
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_CreateGame_WithOffer(t *testing.T) {
	categoryID := uuid.New()
	categories := &mockCategoryRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Category, error) {
			return &model.Category{ID: categoryID}, nil
		},
	}
	svc := NewCatalogService(categories, &mockGameRepo{}, &mockPackageRepo{})

	req := validGameRequest(categoryID)
	req.IsOffer = true
	req.OriginalPrice = dp("60")
	req.FinalPrice = dp("45")

	g, err := svc.CreateGame(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, g.IsOffer)
	require.NotNil(t, g.DiscountPercentage)
	assert.True(t, g.DiscountPercentage.Equal(decimal.NewFromInt(25)), "got %s", g.DiscountPercentage)
}

func TestCatalogService_CreateGame_InvalidOffer(t *testing.T) {
	categoryID := uuid.New()
	svc := NewCatalogService(&mockCategoryRepo{}, &mockGameRepo{}, &mockPackageRepo{})

	req := validGameRequest(categoryID)
	req.IsOffer = true
	req.OriginalPrice = dp("45")
	req.FinalPrice = dp("60")

	_, err := svc.CreateGame(context.Background(), req)
	var cerr *model.ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "final_price", cerr.Field)
}

func TestCatalogService_UpdateGame_ClearsStaleOffer(t *testing.T) {
	var updated *model.Game
	games := &mockGameRepo{
		updateFn: func(ctx context.Context, g *model.Game) error {
			updated = g
			return nil
		},
	}
	svc := NewCatalogService(&mockCategoryRepo{}, games, &mockPackageRepo{})

	// Prices arrive in the payload but is_offer is off: the stored offer
	// fields must be cleared, not carried over.
	req := validGameRequest(uuid.New())
	req.IsOffer = false
	req.OriginalPrice = dp("60")
	req.FinalPrice = dp("45")

	g, err := svc.UpdateGame(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.False(t, g.IsOffer)
	assert.Nil(t, g.OriginalPrice)
	assert.Nil(t, g.FinalPrice)
	assert.Nil(t, g.DiscountPercentage)
	require.NotNil(t, updated)
}

func TestCatalogService_GetGame_NotFound(t *testing.T) {
	svc := NewCatalogService(&mockCategoryRepo{}, &mockGameRepo{}, &mockPackageRepo{})

	_, err := svc.GetGame(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestCatalogService_CreatePackage(t *testing.T) {
	gameID := uuid.New()
	games := &mockGameRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Game, error) {
			return &model.Game{ID: gameID, GameType: model.GameTypePackageBased, IsActive: true}, nil
		},
	}
	var inserted *model.Package
	packages := &mockPackageRepo{
		insertFn: func(ctx context.Context, p *model.Package) error {
			inserted = p
			return nil
		},
	}
	svc := NewCatalogService(&mockCategoryRepo{}, games, packages)

	p, err := svc.CreatePackage(context.Background(), &model.CreatePackageRequest{
		GameID:       gameID,
		Name:         "1000 gems",
		Denomination: "1000",
		Price:        decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.Equal(t, gameID, p.GameID)
	assert.True(t, p.IsActive)
	require.NotNil(t, inserted)
}

func TestCatalogService_CreatePackage_UnknownGame(t *testing.T) {
	svc := NewCatalogService(&mockCategoryRepo{}, &mockGameRepo{}, &mockPackageRepo{})

	_, err := svc.CreatePackage(context.Background(), &model.CreatePackageRequest{
		GameID: uuid.New(),
		Name:   "1000 gems",
		Price:  decimal.NewFromInt(25),
	})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestCatalogService_CreatePackage_NonPositivePrice(t *testing.T) {
	svc := NewCatalogService(&mockCategoryRepo{}, &mockGameRepo{}, &mockPackageRepo{})

	_, err := svc.CreatePackage(context.Background(), &model.CreatePackageRequest{
		GameID: uuid.New(),
		Name:   "free gems",
		Price:  decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCatalogService_CreateCategory_NormalizesSlug(t *testing.T) {
	svc := NewCatalogService(&mockCategoryRepo{}, &mockGameRepo{}, &mockPackageRepo{})

	c, err := svc.CreateCategory(context.Background(), &model.CreateCategoryRequest{
		Name: " Action ",
		Slug: " ACTION ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Action", c.Name)
	assert.Equal(t, "action", c.Slug)
}
