package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the current request.
type Principal struct {
	Member      *domain.Member
	Authorities []domain.MemberRole
}

// Middleware resolves bearer tokens into request-scoped principals. It never
// rejects a request itself; requests with a missing or invalid token simply
// proceed unauthenticated and the access rule table decides downstream.
type Middleware struct {
	tokens  *TokenManager
	members repository.MemberRepository
}

// NewMiddleware constructs the authorization filter.
func NewMiddleware(tokens *TokenManager, members repository.MemberRepository) *Middleware {
	return &Middleware{tokens: tokens, members: members}
}

// Handle extracts and validates the bearer token, loading the member and
// installing a Principal on success.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	tokenStr, ok := bearerToken(c)
	if !ok {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil || claims.TokenType != TokenTypeAccess {
		// Invalid tokens are not an error here; the raw value is never logged.
		return c.Next()
	}

	member, err := m.members.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Next()
		}
		return apperrors.MapError(err)
	}
	if member.Status != domain.MemberStatusActive {
		return c.Next()
	}

	c.Locals(principalKey, &Principal{Member: member, Authorities: member.Authorities()})
	return c.Next()
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// PrincipalFromContext retrieves the authenticated member, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
