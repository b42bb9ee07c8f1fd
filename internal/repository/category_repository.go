package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
)

// CategoryRepository provides data access for categories using pgx.
type CategoryRepository struct {
	pool PoolInterface
}

// NewCategoryRepository creates a new CategoryRepository with the given pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// NewCategoryRepositoryWithPool creates a CategoryRepository with a custom
// pool interface. This is primarily used for testing.
func NewCategoryRepositoryWithPool(pool PoolInterface) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Insert inserts a new category.
// Returns service.ErrSlugTaken when the slug already exists.
func (r *CategoryRepository) Insert(ctx context.Context, c *model.Category) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug, image_url) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Slug, c.ImageURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrSlugTaken
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Update replaces a category's fields.
// Returns service.ErrCategoryNotFound when no row matches.
func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $2, slug = $3, image_url = $4 WHERE id = $1`,
		c.ID, c.Name, c.Slug, c.ImageURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrSlugTaken
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category.
// Returns service.ErrCategoryNotFound when no row matches.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCategoryNotFound
	}
	return nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, image_url, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories rows: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by id.
// Returns nil, nil if the category is not found.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug, image_url, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by id %s: %w", id, err)
	}
	return &c, nil
}
