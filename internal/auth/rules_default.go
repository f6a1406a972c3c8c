package auth

import "github.com/gofiber/fiber/v2"

// DefaultRules returns the production access rule list, ordered. The trailing
// catch-all allow rule reproduces the historical surface; removing it flips
// every unlisted route to the table's default policy.
func DefaultRules() []Rule {
	return []Rule{
		// member/auth routes
		{Method: fiber.MethodGet, Pattern: "/api/auth/members/me", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/auth/members/*", Requirement: RequirePublic},
		{Method: fiber.MethodPut, Pattern: "/api/auth/members/me/**", Requirement: RequireAuthenticated},
		{Method: fiber.MethodDelete, Pattern: "/api/auth/members/me/**", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/auth/**", Requirement: RequirePublic},
		{Method: fiber.MethodPost, Pattern: "/api/auth/login", Requirement: RequirePublic},
		{Method: fiber.MethodPost, Pattern: "/api/auth/signup", Requirement: RequirePublic},
		{Method: fiber.MethodPost, Pattern: "/api/auth/refresh", Requirement: RequirePublic},

		// category browsing
		{Method: fiber.MethodGet, Pattern: "/api/categories", Requirement: RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/categories/*", Requirement: RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/categories/*/categories", Requirement: RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/categories/*/items", Requirement: RequirePublic},

		// item search
		{Method: fiber.MethodGet, Pattern: "/api/items", Requirement: RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/top-items", Requirement: RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/nearby-items", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/members/*/items", Requirement: RequirePublic},

		// wishlist
		{Method: fiber.MethodPost, Pattern: "/api/items/*/wishes", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/items/*/wishes", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/mypages/wishlists", Requirement: RequireAuthenticated},

		// follow
		{Method: fiber.MethodPost, Pattern: "/api/shops/*/follows", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/shops/*/follows", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/shops/*/followers", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/members/*/followers", Requirement: RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/members/*/followings", Requirement: RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/api/mypages/followerlists", Requirement: RequireAuthenticated},
		{Method: fiber.MethodDelete, Pattern: "/api/follows/*", Requirement: RequireAuthenticated},

		// reviews
		{Method: fiber.MethodPost, Pattern: "/api/reviews", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/members/*/reviews", Requirement: RequirePublic},
		{Method: fiber.MethodPut, Pattern: "/api/reviews/*", Requirement: RequireAuthenticated},
		{Method: fiber.MethodDelete, Pattern: "/api/reviews/*", Requirement: RequireAuthenticated},

		// trades
		{Method: fiber.MethodGet, Pattern: "/api/mypages/orders", Requirement: RequireAuthenticated},
		{Method: fiber.MethodGet, Pattern: "/api/mypages/sales", Requirement: RequireAuthenticated},
		{Method: fiber.MethodPost, Pattern: "/api/trades", Requirement: RequireAuthenticated},

		// chat
		{Method: fiber.MethodPost, Pattern: "/chat/**", Requirement: RequirePublic},
		{Method: fiber.MethodGet, Pattern: "/chat/**", Requirement: RequirePublic},
		{Pattern: "/ws/**", Requirement: RequirePublic},

		// health probes
		{Method: fiber.MethodGet, Pattern: "/health/**", Requirement: RequirePublic},

		{Pattern: "/**", Requirement: RequirePublic},
	}
}
