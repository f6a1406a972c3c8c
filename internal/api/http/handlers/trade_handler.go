package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// TradeHandler records trades.
type TradeHandler struct {
	trades *service.TradeService
}

// NewTradeHandler constructs handler.
func NewTradeHandler(trades *service.TradeService) *TradeHandler {
	return &TradeHandler{trades: trades}
}

// Create handles POST /api/trades.
func (h *TradeHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TradeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ItemID == "" {
		return apperrors.NewValidationError("item_id required", nil)
	}

	trade, err := h.trades.Create(c.Context(), principal.Member, req.ItemID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.TradeResponse{
		ID:        trade.ID,
		ItemID:    trade.ItemID,
		BuyerID:   trade.BuyerID,
		SellerID:  trade.SellerID,
		Price:     trade.Price,
		State:     string(trade.State),
		CreatedAt: trade.CreatedAt,
	}})
}
