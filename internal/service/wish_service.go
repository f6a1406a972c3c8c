package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// WishResult reports the wishlist state after a toggle or status read.
type WishResult struct {
	ItemID string
	Wished bool
}

// WishService implements the wishlist toggle, same shape as follows.
type WishService struct {
	wishes repository.WishRepository
	items  repository.ItemRepository
}

// NewWishService builds the service.
func NewWishService(wishes repository.WishRepository, items repository.ItemRepository) *WishService {
	return &WishService{wishes: wishes, items: items}
}

// Toggle creates the (member, item) wish when absent and deletes it when present.
func (s *WishService) Toggle(ctx context.Context, member *domain.Member, itemID string) (*WishResult, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", map[string]any{"item_id": itemID})
		}
		return nil, err
	}

	_, err := s.wishes.GetByPair(ctx, member.ID, itemID)
	switch {
	case err == nil:
		if err := s.wishes.Delete(ctx, member.ID, itemID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewConflict("wish already removed", nil)
			}
			return nil, err
		}
		return &WishResult{ItemID: itemID, Wished: false}, nil
	case errors.Is(err, pgx.ErrNoRows):
		wish := &domain.Wish{MemberID: member.ID, ItemID: itemID}
		if err := s.wishes.Insert(ctx, wish); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, apperrors.NewConflict("wish already exists", nil)
			}
			return nil, err
		}
		return &WishResult{ItemID: itemID, Wished: true}, nil
	default:
		return nil, err
	}
}

// Status reports whether the member currently wishes the item.
func (s *WishService) Status(ctx context.Context, member *domain.Member, itemID string) (*WishResult, error) {
	_, err := s.wishes.GetByPair(ctx, member.ID, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &WishResult{ItemID: itemID, Wished: false}, nil
		}
		return nil, err
	}
	return &WishResult{ItemID: itemID, Wished: true}, nil
}

// Wishlist lists the items the member has wished.
func (s *WishService) Wishlist(ctx context.Context, member *domain.Member) ([]domain.Item, error) {
	return s.wishes.ListItemsByMember(ctx, member.ID)
}
