package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// FollowHandler exposes the follow toggle and its listings.
type FollowHandler struct {
	follows *service.FollowService
}

// NewFollowHandler constructs handler.
func NewFollowHandler(follows *service.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// Toggle handles POST /api/shops/:shopID/follows. Creating the relation
// answers 201, removing it answers 200.
func (h *FollowHandler) Toggle(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	result, err := h.follows.Toggle(c.Context(), principal.Member, c.Params("shopID"))
	if err != nil {
		return err
	}

	status := http.StatusOK
	if result.Following {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": followResponse(result)})
}

// Status handles GET /api/shops/:shopID/follows.
func (h *FollowHandler) Status(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	result, err := h.follows.Status(c.Context(), principal.Member, c.Params("shopID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followResponse(result)})
}

// ShopFollowers handles GET /api/shops/:shopID/followers.
func (h *FollowHandler) ShopFollowers(c *fiber.Ctx) error {
	members, err := h.follows.FollowersOfShop(c.Context(), c.Params("shopID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followMemberResponses(members)})
}

// MemberFollowers handles GET /api/members/:memberID/followers.
func (h *FollowHandler) MemberFollowers(c *fiber.Ctx) error {
	members, err := h.follows.FollowersOfMember(c.Context(), c.Params("memberID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followMemberResponses(members)})
}

// MemberFollowings handles GET /api/members/:memberID/followings.
func (h *FollowHandler) MemberFollowings(c *fiber.Ctx) error {
	members, err := h.follows.FollowingsOfMember(c.Context(), c.Params("memberID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followMemberResponses(members)})
}

// Unfollow handles DELETE /api/follows/:followID.
func (h *FollowHandler) Unfollow(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.follows.Unfollow(c.Context(), principal.Member, c.Params("followID")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func followResponse(result *service.FollowResult) dto.FollowResponse {
	return dto.FollowResponse{
		ShopID:    result.ShopID,
		FollowID:  result.FollowID,
		Following: result.Following,
	}
}

func followMemberResponses(members []domain.FollowMember) []dto.FollowMemberResponse {
	out := make([]dto.FollowMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.FollowMemberResponse{
			MemberID: m.MemberID,
			Nickname: m.Nickname,
			ShopID:   m.ShopID,
			ShopName: m.ShopName,
		})
	}
	return out
}
