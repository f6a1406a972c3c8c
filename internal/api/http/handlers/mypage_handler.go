package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// MyPageHandler serves the authenticated member's own listings.
type MyPageHandler struct {
	trades  *service.TradeService
	follows *service.FollowService
	wishes  *service.WishService
}

// NewMyPageHandler constructs handler.
func NewMyPageHandler(trades *service.TradeService, follows *service.FollowService, wishes *service.WishService) *MyPageHandler {
	return &MyPageHandler{trades: trades, follows: follows, wishes: wishes}
}

// Orders handles GET /api/mypages/orders; results are scoped to the caller.
func (h *MyPageHandler) Orders(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit := c.QueryInt("size", 20)
	offset := c.QueryInt("page", 0) * limit
	trades, err := h.trades.ReadOrders(c.Context(), principal.Member, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tradeResponses(trades)})
}

// Sales handles GET /api/mypages/sales.
func (h *MyPageHandler) Sales(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit := c.QueryInt("size", 20)
	offset := c.QueryInt("page", 0) * limit
	trades, err := h.trades.ReadSales(c.Context(), principal.Member, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tradeResponses(trades)})
}

// FollowerList handles GET /api/mypages/followerlists; it returns the shops
// the caller follows.
func (h *MyPageHandler) FollowerList(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	members, err := h.follows.FollowingsOfMember(c.Context(), principal.Member.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followMemberResponses(members)})
}

// Wishlist handles GET /api/mypages/wishlists.
func (h *MyPageHandler) Wishlist(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	items, err := h.wishes.Wishlist(c.Context(), principal.Member)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": itemResponses(items)})
}

func tradeResponses(trades []domain.Trade) []dto.TradeResponse {
	out := make([]dto.TradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, dto.TradeResponse{
			ID:        t.ID,
			ItemID:    t.ItemID,
			BuyerID:   t.BuyerID,
			SellerID:  t.SellerID,
			Price:     t.Price,
			State:     string(t.State),
			CreatedAt: t.CreatedAt,
		})
	}
	return out
}

func itemResponses(items []domain.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, dto.ItemResponse{
			ID:     i.ID,
			ShopID: i.ShopID,
			Name:   i.Name,
			Price:  i.Price,
			State:  string(i.State),
		})
	}
	return out
}
