package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// TradeRepository encapsulates trade persistence.
type TradeRepository interface {
	Create(ctx context.Context, trade *domain.Trade) error
	ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]domain.Trade, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Trade, error)
}

type tradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository returns a Postgres-backed implementation.
func NewTradeRepository(pool *pgxpool.Pool) TradeRepository {
	return &tradeRepository{pool: pool}
}

func (r *tradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	const query = `
        INSERT INTO trades (item_id, buyer_id, seller_id, price, state)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		trade.ItemID,
		trade.BuyerID,
		trade.SellerID,
		trade.Price,
		trade.State,
	).Scan(&trade.ID, &trade.CreatedAt, &trade.UpdatedAt)
}

func (r *tradeRepository) ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]domain.Trade, error) {
	const query = `
        SELECT id, item_id, buyer_id, seller_id, price, state, created_at, updated_at
        FROM trades WHERE buyer_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, buyerID, limit, offset)
}

func (r *tradeRepository) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Trade, error) {
	const query = `
        SELECT id, item_id, buyer_id, seller_id, price, state, created_at, updated_at
        FROM trades WHERE seller_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, sellerID, limit, offset)
}

func (r *tradeRepository) list(ctx context.Context, query, memberID string, limit, offset int) ([]domain.Trade, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrades(rows)
}

func scanTrades(rows pgx.Rows) ([]domain.Trade, error) {
	var result []domain.Trade
	for rows.Next() {
		var trade domain.Trade
		if err := rows.Scan(
			&trade.ID,
			&trade.ItemID,
			&trade.BuyerID,
			&trade.SellerID,
			&trade.Price,
			&trade.State,
			&trade.CreatedAt,
			&trade.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, trade)
	}
	return result, rows.Err()
}
