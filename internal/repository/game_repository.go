package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
)

// GameRepository provides data access for games using pgx.
type GameRepository struct {
	pool PoolInterface
}

// NewGameRepository creates a new GameRepository with the given pool.
func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

// NewGameRepositoryWithPool creates a GameRepository with a custom pool
// interface. This is primarily used for testing.
func NewGameRepositoryWithPool(pool PoolInterface) *GameRepository {
	return &GameRepository{pool: pool}
}

const gameColumns = `id, category_id, name, slug, description, game_type, price, image_url,
	is_active, is_offer, original_price, final_price, discount_percentage, created_at, updated_at`

// nullDec converts an optional decimal to its nullable database form.
func nullDec(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// decPtr converts a nullable database decimal back to an optional decimal.
func decPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func scanGame(row pgx.Row) (*model.Game, error) {
	var g model.Game
	var orig, final, pct decimal.NullDecimal
	err := row.Scan(&g.ID, &g.CategoryID, &g.Name, &g.Slug, &g.Description, &g.GameType,
		&g.Price, &g.ImageURL, &g.IsActive, &g.IsOffer, &orig, &final, &pct,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.OriginalPrice = decPtr(orig)
	g.FinalPrice = decPtr(final)
	g.DiscountPercentage = decPtr(pct)
	return &g, nil
}

// Insert inserts a new game.
// Returns service.ErrSlugTaken when the slug already exists.
func (r *GameRepository) Insert(ctx context.Context, g *model.Game) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO games (id, category_id, name, slug, description, game_type, price, image_url,
			is_active, is_offer, original_price, final_price, discount_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		g.ID, g.CategoryID, g.Name, g.Slug, g.Description, g.GameType, g.Price, g.ImageURL,
		g.IsActive, g.IsOffer, nullDec(g.OriginalPrice), nullDec(g.FinalPrice), nullDec(g.DiscountPercentage))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrSlugTaken
		}
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// Update replaces a game's fields, including clearing offer columns when
// the write carries no offer.
// Returns service.ErrGameNotFound when no row matches.
func (r *GameRepository) Update(ctx context.Context, g *model.Game) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE games SET category_id = $2, name = $3, slug = $4, description = $5, game_type = $6,
			price = $7, image_url = $8, is_active = $9, is_offer = $10, original_price = $11,
			final_price = $12, discount_percentage = $13, updated_at = now()
		WHERE id = $1`,
		g.ID, g.CategoryID, g.Name, g.Slug, g.Description, g.GameType, g.Price, g.ImageURL,
		g.IsActive, g.IsOffer, nullDec(g.OriginalPrice), nullDec(g.FinalPrice), nullDec(g.DiscountPercentage))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrSlugTaken
		}
		return fmt.Errorf("update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrGameNotFound
	}
	return nil
}

// Delete removes a game.
// Returns service.ErrGameNotFound when no row matches.
func (r *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrGameNotFound
	}
	return nil
}

// List returns games ordered by name, optionally filtered by category
// and/or restricted to active ones.
func (r *GameRepository) List(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]model.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE 1=1`
	args := []any{}
	if categoryID != nil {
		args = append(args, *categoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := []model.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games rows: %w", err)
	}
	return games, nil
}

// GetByID retrieves a game by id.
// Returns nil, nil if the game is not found.
func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	g, err := scanGame(r.pool.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get game by id %s: %w", id, err)
	}
	return g, nil
}
