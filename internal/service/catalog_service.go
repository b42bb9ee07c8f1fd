package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pixelvault/gamestore-api/internal/model"
)

// CategoryRepositoryInterface defines the interface for category data access.
type CategoryRepositoryInterface interface {
	Insert(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

// GameRepositoryInterface defines the interface for game data access.
type GameRepositoryInterface interface {
	Insert(ctx context.Context, g *model.Game) error
	Update(ctx context.Context, g *model.Game) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]model.Game, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Game, error)
}

// PackageRepositoryInterface defines the interface for package data access.
type PackageRepositoryInterface interface {
	Insert(ctx context.Context, p *model.Package) error
	Update(ctx context.Context, p *model.Package) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByGame(ctx context.Context, gameID uuid.UUID, activeOnly bool) ([]model.Package, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Package, error)
}

// CatalogService provides business logic for categories, games, and
// packages. Every game/package write runs offer normalization, so stale
// offer fields can never linger and derived percentages are always
// recomputed.
type CatalogService struct {
	categories CategoryRepositoryInterface
	games      GameRepositoryInterface
	packages   PackageRepositoryInterface
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	categories CategoryRepositoryInterface,
	games GameRepositoryInterface,
	packages PackageRepositoryInterface,
) *CatalogService {
	return &CatalogService{categories: categories, games: games, packages: packages}
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory creates a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	c := &model.Category{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Slug:     strings.ToLower(strings.TrimSpace(req.Slug)),
		ImageURL: req.ImageURL,
	}
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategory replaces a category's fields.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *model.UpdateCategoryRequest) (*model.Category, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	c := &model.Category{
		ID:       id,
		Name:     strings.TrimSpace(req.Name),
		Slug:     strings.ToLower(strings.TrimSpace(req.Slug)),
		ImageURL: req.ImageURL,
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}

// buildGame validates a game write request and produces the record,
// including normalized offer fields.
func buildGame(req *model.CreateGameRequest) (*model.Game, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if !req.GameType.Valid() {
		return nil, fmt.Errorf("%w: unknown game type %q", ErrInvalidRequest, req.GameType)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidRequest)
	}

	offer, err := model.NormalizeOffer(req.IsOffer, req.OriginalPrice, req.FinalPrice)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &model.Game{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.ToLower(strings.TrimSpace(req.Slug)),
		Description: req.Description,
		GameType:    req.GameType,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    isActive,
		Offer:       offer,
	}, nil
}

// ListGames returns games, optionally filtered by category. Public
// listings pass activeOnly=true.
func (s *CatalogService) ListGames(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]model.Game, error) {
	return s.games.List(ctx, categoryID, activeOnly)
}

// GetGame returns a single game by id.
// Returns ErrGameNotFound when it does not exist.
func (s *CatalogService) GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// CreateGame creates a new game. Returns ErrCategoryNotFound when the
// category does not exist and a ConstraintError when offer fields violate
// the pricing invariants.
func (s *CatalogService) CreateGame(ctx context.Context, req *model.CreateGameRequest) (*model.Game, error) {
	g, err := buildGame(req)
	if err != nil {
		return nil, err
	}
	cat, err := s.categories.GetByID(ctx, g.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	g.ID = uuid.New()
	if err := s.games.Insert(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGame replaces a game's fields, re-running offer normalization.
func (s *CatalogService) UpdateGame(ctx context.Context, id uuid.UUID, req *model.UpdateGameRequest) (*model.Game, error) {
	g, err := buildGame(req)
	if err != nil {
		return nil, err
	}
	g.ID = id
	if err := s.games.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGame removes a game.
func (s *CatalogService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	return s.games.Delete(ctx, id)
}

// buildPackage validates a package write request and produces the record.
func buildPackage(req *model.CreatePackageRequest) (*model.Package, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than 0", ErrInvalidRequest)
	}

	offer, err := model.NormalizeOffer(req.IsOffer, req.OriginalPrice, req.FinalPrice)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &model.Package{
		GameID:       req.GameID,
		Name:         strings.TrimSpace(req.Name),
		Denomination: strings.TrimSpace(req.Denomination),
		Price:        req.Price,
		IsActive:     isActive,
		Offer:        offer,
	}, nil
}

// ListPackages returns a game's packages. Public listings pass
// activeOnly=true.
func (s *CatalogService) ListPackages(ctx context.Context, gameID uuid.UUID, activeOnly bool) ([]model.Package, error) {
	return s.packages.ListByGame(ctx, gameID, activeOnly)
}

// CreatePackage creates a package under an existing game.
func (s *CatalogService) CreatePackage(ctx context.Context, req *model.CreatePackageRequest) (*model.Package, error) {
	p, err := buildPackage(req)
	if err != nil {
		return nil, err
	}
	g, err := s.games.GetByID(ctx, p.GameID)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	p.ID = uuid.New()
	if err := s.packages.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePackage replaces a package's fields, re-running offer normalization.
func (s *CatalogService) UpdatePackage(ctx context.Context, id uuid.UUID, req *model.UpdatePackageRequest) (*model.Package, error) {
	p, err := buildPackage(req)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.packages.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePackage removes a package.
func (s *CatalogService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	return s.packages.Delete(ctx, id)
}
