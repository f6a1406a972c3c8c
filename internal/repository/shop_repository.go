package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ShopRepository defines persistence access for shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Shop, error)
}

type shopRepository struct {
	pool *pgxpool.Pool
}

// NewShopRepository returns a Postgres-backed implementation.
func NewShopRepository(pool *pgxpool.Pool) ShopRepository {
	return &shopRepository{pool: pool}
}

func (r *shopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	const query = `
        INSERT INTO shops (owner_id, name, intro)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		shop.OwnerID,
		shop.Name,
		shop.Intro,
	).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
}

func (r *shopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	const query = `
        SELECT id, owner_id, name, intro, created_at, updated_at
        FROM shops WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *shopRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Shop, error) {
	const query = `
        SELECT id, owner_id, name, intro, created_at, updated_at
        FROM shops WHERE owner_id=$1`
	return r.fetchSingle(ctx, query, ownerID)
}

func (r *shopRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Shop, error) {
	var shop domain.Shop
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.Intro,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shop, nil
}
