package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// TradeService records trades and serves the mypage listings.
type TradeService struct {
	trades repository.TradeRepository
	items  repository.ItemRepository
	shops  repository.ShopRepository
}

// NewTradeService builds the service.
func NewTradeService(trades repository.TradeRepository, items repository.ItemRepository, shops repository.ShopRepository) *TradeService {
	return &TradeService{trades: trades, items: items, shops: shops}
}

// Create records a purchase of the item by the buyer.
func (s *TradeService) Create(ctx context.Context, buyer *domain.Member, itemID string) (*domain.Trade, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", map[string]any{"item_id": itemID})
		}
		return nil, err
	}

	shop, err := s.shops.GetByID(ctx, item.ShopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID == buyer.ID {
		return nil, apperrors.NewValidationError("cannot buy own item", nil)
	}

	trade := &domain.Trade{
		ItemID:   item.ID,
		BuyerID:  buyer.ID,
		SellerID: shop.OwnerID,
		Price:    item.Price,
		State:    domain.TradeStateRequested,
	}
	if err := s.trades.Create(ctx, trade); err != nil {
		return nil, err
	}
	return trade, nil
}

// ReadOrders lists trades where the member is the buyer.
func (s *TradeService) ReadOrders(ctx context.Context, member *domain.Member, limit, offset int) ([]domain.Trade, error) {
	return s.trades.ListByBuyer(ctx, member.ID, limit, offset)
}

// ReadSales lists trades where the member is the seller.
func (s *TradeService) ReadSales(ctx context.Context, member *domain.Member, limit, offset int) ([]domain.Trade, error) {
	return s.trades.ListBySeller(ctx, member.ID, limit, offset)
}
