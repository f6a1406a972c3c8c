package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// AuthHandler exposes signup, login and token refresh endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Nickname == "" || req.Password == "" {
		return apperrors.NewValidationError("username, nickname, password required", nil)
	}

	member, err := h.auth.Signup(c.Context(), req.Username, req.Nickname, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.MemberResponse{ID: member.ID, Username: member.Username, Nickname: member.Nickname},
	})
}

// Login handles POST /api/auth/login. Issued tokens are attached both to the
// JSON body and as response headers.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	member, pair, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	setTokenHeaders(c, pair)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"member": dto.MemberResponse{ID: member.ID, Username: member.Username, Nickname: member.Nickname},
			"auth":   tokenPairResponse(pair),
		},
	})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token required", nil)
	}

	pair, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	setTokenHeaders(c, pair)
	return c.JSON(fiber.Map{"data": tokenPairResponse(pair)})
}

// Me handles GET /api/auth/members/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	member := principal.Member
	return c.JSON(fiber.Map{
		"data": dto.MemberResponse{ID: member.ID, Username: member.Username, Nickname: member.Nickname},
	})
}

func setTokenHeaders(c *fiber.Ctx, pair *auth.TokenPair) {
	c.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)
	c.Set("Refresh-Token", pair.RefreshToken)
}

func tokenPairResponse(pair *auth.TokenPair) dto.TokenPairResponse {
	return dto.TokenPairResponse{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}
