package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pixelvault/gamestore-api/internal/model"
	"github.com/pixelvault/gamestore-api/internal/service"
)

// PackageRepository provides data access for packages using pgx.
type PackageRepository struct {
	pool PoolInterface
}

// NewPackageRepository creates a new PackageRepository with the given pool.
func NewPackageRepository(pool *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{pool: pool}
}

// NewPackageRepositoryWithPool creates a PackageRepository with a custom
// pool interface. This is primarily used for testing.
func NewPackageRepositoryWithPool(pool PoolInterface) *PackageRepository {
	return &PackageRepository{pool: pool}
}

const packageColumns = `id, game_id, name, denomination, price, is_active,
	is_offer, original_price, final_price, discount_percentage, created_at, updated_at`

func scanPackage(row pgx.Row) (*model.Package, error) {
	var p model.Package
	var orig, final, pct decimal.NullDecimal
	err := row.Scan(&p.ID, &p.GameID, &p.Name, &p.Denomination, &p.Price, &p.IsActive,
		&p.IsOffer, &orig, &final, &pct, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.OriginalPrice = decPtr(orig)
	p.FinalPrice = decPtr(final)
	p.DiscountPercentage = decPtr(pct)
	return &p, nil
}

// Insert inserts a new package.
func (r *PackageRepository) Insert(ctx context.Context, p *model.Package) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO packages (id, game_id, name, denomination, price, is_active,
			is_offer, original_price, final_price, discount_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.GameID, p.Name, p.Denomination, p.Price, p.IsActive,
		p.IsOffer, nullDec(p.OriginalPrice), nullDec(p.FinalPrice), nullDec(p.DiscountPercentage))
	if err != nil {
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// Update replaces a package's fields.
// Returns service.ErrPackageNotFound when no row matches.
func (r *PackageRepository) Update(ctx context.Context, p *model.Package) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE packages SET name = $2, denomination = $3, price = $4, is_active = $5,
			is_offer = $6, original_price = $7, final_price = $8, discount_percentage = $9,
			updated_at = now()
		WHERE id = $1`,
		p.ID, p.Name, p.Denomination, p.Price, p.IsActive,
		p.IsOffer, nullDec(p.OriginalPrice), nullDec(p.FinalPrice), nullDec(p.DiscountPercentage))
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPackageNotFound
	}
	return nil
}

// Delete removes a package.
// Returns service.ErrPackageNotFound when no row matches.
func (r *PackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrPackageNotFound
	}
	return nil
}

// ListByGame returns a game's packages ordered by price, optionally
// restricted to active ones.
func (r *PackageRepository) ListByGame(ctx context.Context, gameID uuid.UUID, activeOnly bool) ([]model.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE game_id = $1`
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY price"

	rows, err := r.pool.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("list packages for game %s: %w", gameID, err)
	}
	defer rows.Close()

	packages := []model.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		packages = append(packages, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packages rows: %w", err)
	}
	return packages, nil
}

// GetByID retrieves a package by id.
// Returns nil, nil if the package is not found.
func (r *PackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	p, err := scanPackage(r.pool.QueryRow(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package by id %s: %w", id, err)
	}
	return p, nil
}
