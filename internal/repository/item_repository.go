package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ItemRepository defines persistence access for item listings.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Item, error)
}

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns a Postgres-backed implementation.
func NewItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &itemRepository{pool: pool}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (shop_id, name, price, comment, state)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.ShopID,
		item.Name,
		item.Price,
		item.Comment,
		item.State,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	const query = `
        SELECT id, shop_id, name, price, comment, state, created_at, updated_at
        FROM items WHERE id=$1`

	var item domain.Item
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.ShopID,
		&item.Name,
		&item.Price,
		&item.Comment,
		&item.State,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, shop_id, name, price, comment, state, created_at, updated_at
        FROM items WHERE shop_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	var result []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.ShopID,
			&item.Name,
			&item.Price,
			&item.Comment,
			&item.State,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
