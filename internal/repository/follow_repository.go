package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ErrDuplicate is returned when an insert violates a unique pair constraint.
// The follows and wishes tables serialize concurrent toggles through their
// unique indexes, so a lost check-then-act race surfaces here.
var ErrDuplicate = errors.New("duplicate relation")

const uniqueViolationCode = "23505"

// FollowRepository defines persistence access for follow relations.
type FollowRepository interface {
	GetByPair(ctx context.Context, followerID, shopID string) (*domain.Follow, error)
	GetByID(ctx context.Context, id string) (*domain.Follow, error)
	Insert(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, shopID string) error
	DeleteByID(ctx context.Context, id string) error
	ListFollowersByShop(ctx context.Context, shopID string) ([]domain.FollowMember, error)
	ListFollowingsByMember(ctx context.Context, memberID string) ([]domain.FollowMember, error)
}

type followRepository struct {
	pool *pgxpool.Pool
}

// NewFollowRepository returns a Postgres-backed implementation.
func NewFollowRepository(pool *pgxpool.Pool) FollowRepository {
	return &followRepository{pool: pool}
}

func (r *followRepository) GetByPair(ctx context.Context, followerID, shopID string) (*domain.Follow, error) {
	const query = `
        SELECT id, follower_id, shop_id, created_at
        FROM follows WHERE follower_id=$1 AND shop_id=$2`

	var follow domain.Follow
	if err := r.pool.QueryRow(ctx, query, followerID, shopID).Scan(
		&follow.ID,
		&follow.FollowerID,
		&follow.ShopID,
		&follow.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *followRepository) GetByID(ctx context.Context, id string) (*domain.Follow, error) {
	const query = `
        SELECT id, follower_id, shop_id, created_at
        FROM follows WHERE id=$1`

	var follow domain.Follow
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&follow.ID,
		&follow.FollowerID,
		&follow.ShopID,
		&follow.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *followRepository) Insert(ctx context.Context, follow *domain.Follow) error {
	const query = `
        INSERT INTO follows (follower_id, shop_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		follow.FollowerID,
		follow.ShopID,
	).Scan(&follow.ID, &follow.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, shopID string) error {
	const query = `DELETE FROM follows WHERE follower_id=$1 AND shop_id=$2`

	cmd, err := r.pool.Exec(ctx, query, followerID, shopID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *followRepository) DeleteByID(ctx context.Context, id string) error {
	const query = `DELETE FROM follows WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *followRepository) ListFollowersByShop(ctx context.Context, shopID string) ([]domain.FollowMember, error) {
	const query = `
        SELECT m.id, m.nickname, s.id, s.name
        FROM follows f
        JOIN members m ON m.id = f.follower_id
        JOIN shops s ON s.id = f.shop_id
        WHERE f.shop_id=$1
        ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFollowMembers(rows)
}

func (r *followRepository) ListFollowingsByMember(ctx context.Context, memberID string) ([]domain.FollowMember, error) {
	const query = `
        SELECT m.id, m.nickname, s.id, s.name
        FROM follows f
        JOIN shops s ON s.id = f.shop_id
        JOIN members m ON m.id = s.owner_id
        WHERE f.follower_id=$1
        ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFollowMembers(rows)
}

func scanFollowMembers(rows pgx.Rows) ([]domain.FollowMember, error) {
	var result []domain.FollowMember
	for rows.Next() {
		var fm domain.FollowMember
		if err := rows.Scan(&fm.MemberID, &fm.Nickname, &fm.ShopID, &fm.ShopName); err != nil {
			return nil, err
		}
		result = append(result, fm)
	}
	return result, rows.Err()
}
