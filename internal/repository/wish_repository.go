package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// WishRepository defines persistence access for wishlist relations.
type WishRepository interface {
	GetByPair(ctx context.Context, memberID, itemID string) (*domain.Wish, error)
	Insert(ctx context.Context, wish *domain.Wish) error
	Delete(ctx context.Context, memberID, itemID string) error
	ListItemsByMember(ctx context.Context, memberID string) ([]domain.Item, error)
}

type wishRepository struct {
	pool *pgxpool.Pool
}

// NewWishRepository returns a Postgres-backed implementation.
func NewWishRepository(pool *pgxpool.Pool) WishRepository {
	return &wishRepository{pool: pool}
}

func (r *wishRepository) GetByPair(ctx context.Context, memberID, itemID string) (*domain.Wish, error) {
	const query = `
        SELECT id, member_id, item_id, created_at
        FROM wishes WHERE member_id=$1 AND item_id=$2`

	var wish domain.Wish
	if err := r.pool.QueryRow(ctx, query, memberID, itemID).Scan(
		&wish.ID,
		&wish.MemberID,
		&wish.ItemID,
		&wish.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &wish, nil
}

func (r *wishRepository) Insert(ctx context.Context, wish *domain.Wish) error {
	const query = `
        INSERT INTO wishes (member_id, item_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		wish.MemberID,
		wish.ItemID,
	).Scan(&wish.ID, &wish.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *wishRepository) Delete(ctx context.Context, memberID, itemID string) error {
	const query = `DELETE FROM wishes WHERE member_id=$1 AND item_id=$2`

	cmd, err := r.pool.Exec(ctx, query, memberID, itemID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *wishRepository) ListItemsByMember(ctx context.Context, memberID string) ([]domain.Item, error) {
	const query = `
        SELECT i.id, i.shop_id, i.name, i.price, i.comment, i.state, i.created_at, i.updated_at
        FROM wishes w
        JOIN items i ON i.id = w.item_id
        WHERE w.member_id=$1
        ORDER BY w.created_at DESC`

	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}
