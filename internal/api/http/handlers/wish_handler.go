package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// WishHandler exposes the wishlist toggle.
type WishHandler struct {
	wishes *service.WishService
}

// NewWishHandler constructs handler.
func NewWishHandler(wishes *service.WishService) *WishHandler {
	return &WishHandler{wishes: wishes}
}

// Toggle handles POST /api/items/:itemID/wishes.
func (h *WishHandler) Toggle(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	result, err := h.wishes.Toggle(c.Context(), principal.Member, c.Params("itemID"))
	if err != nil {
		return err
	}

	status := http.StatusOK
	if result.Wished {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.WishResponse{ItemID: result.ItemID, Wished: result.Wished}})
}

// Status handles GET /api/items/:itemID/wishes.
func (h *WishHandler) Status(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	result, err := h.wishes.Status(c.Context(), principal.Member, c.Params("itemID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.WishResponse{ItemID: result.ItemID, Wished: result.Wished}})
}
