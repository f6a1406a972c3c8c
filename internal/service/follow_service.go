package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// FollowResult reports the relation state after a toggle or status read.
type FollowResult struct {
	ShopID    string
	FollowID  string
	Following bool
}

// FollowService implements the follow toggle and its listings.
type FollowService struct {
	follows   repository.FollowRepository
	shops     repository.ShopRepository
	allowSelf bool
}

// NewFollowService builds the service.
func NewFollowService(follows repository.FollowRepository, shops repository.ShopRepository, allowSelf bool) *FollowService {
	return &FollowService{follows: follows, shops: shops, allowSelf: allowSelf}
}

// Toggle creates the (follower, shop) relation when absent and deletes it when
// present. Serialization relies on the unique pair constraint in the store; a
// lost race surfaces as a conflict rather than a duplicate row.
func (s *FollowService) Toggle(ctx context.Context, member *domain.Member, shopID string) (*FollowResult, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shop", map[string]any{"shop_id": shopID})
		}
		return nil, err
	}
	if !s.allowSelf && shop.OwnerID == member.ID {
		return nil, apperrors.NewValidationError("cannot follow own shop", nil)
	}

	existing, err := s.follows.GetByPair(ctx, member.ID, shopID)
	switch {
	case err == nil:
		if err := s.follows.Delete(ctx, member.ID, shopID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewConflict("relation already removed", nil)
			}
			return nil, err
		}
		return &FollowResult{ShopID: shopID, FollowID: existing.ID, Following: false}, nil
	case errors.Is(err, pgx.ErrNoRows):
		follow := &domain.Follow{FollowerID: member.ID, ShopID: shopID}
		if err := s.follows.Insert(ctx, follow); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, apperrors.NewConflict("relation already exists", nil)
			}
			return nil, err
		}
		return &FollowResult{ShopID: shopID, FollowID: follow.ID, Following: true}, nil
	default:
		return nil, err
	}
}

// Status reports whether the member currently follows the shop.
func (s *FollowService) Status(ctx context.Context, member *domain.Member, shopID string) (*FollowResult, error) {
	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shop", map[string]any{"shop_id": shopID})
		}
		return nil, err
	}

	follow, err := s.follows.GetByPair(ctx, member.ID, shopID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &FollowResult{ShopID: shopID, Following: false}, nil
		}
		return nil, err
	}
	return &FollowResult{ShopID: shopID, FollowID: follow.ID, Following: true}, nil
}

// Unfollow removes a relation by id; only its owner may remove it.
func (s *FollowService) Unfollow(ctx context.Context, member *domain.Member, followID string) error {
	follow, err := s.follows.GetByID(ctx, followID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("follow", map[string]any{"follow_id": followID})
		}
		return err
	}
	if follow.FollowerID != member.ID {
		return apperrors.NewForbidden("not the owner of this relation")
	}
	if err := s.follows.DeleteByID(ctx, followID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflict("relation already removed", nil)
		}
		return err
	}
	return nil
}

// FollowersOfMember lists members following the given member's shop.
func (s *FollowService) FollowersOfMember(ctx context.Context, memberID string) ([]domain.FollowMember, error) {
	shop, err := s.shops.GetByOwner(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shop", map[string]any{"member_id": memberID})
		}
		return nil, err
	}
	return s.follows.ListFollowersByShop(ctx, shop.ID)
}

// FollowingsOfMember lists shops the member follows.
func (s *FollowService) FollowingsOfMember(ctx context.Context, memberID string) ([]domain.FollowMember, error) {
	return s.follows.ListFollowingsByMember(ctx, memberID)
}

// FollowersOfShop lists followers of a shop directly.
func (s *FollowService) FollowersOfShop(ctx context.Context, shopID string) ([]domain.FollowMember, error) {
	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shop", map[string]any{"shop_id": shopID})
		}
		return nil, err
	}
	return s.follows.ListFollowersByShop(ctx, shopID)
}
