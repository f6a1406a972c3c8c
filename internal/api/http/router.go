package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Follows        *handlers.FollowHandler
	Wishes         *handlers.WishHandler
	Trades         *handlers.TradeHandler
	MyPage         *handlers.MyPageHandler
	Chat           *handlers.ChatHandler
	AuthMiddleware *auth.Middleware
	Rules          *auth.RuleTable
}

// RegisterRoutes wires the filter chain and HTTP routes. The authorization
// filter installs the principal; the rule table then decides access before
// any handler runs.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)
	app.Use(cfg.Rules.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Get("/members/me", cfg.Auth.Me)

	api.Post("/shops/:shopID/follows", cfg.Follows.Toggle)
	api.Get("/shops/:shopID/follows", cfg.Follows.Status)
	api.Get("/shops/:shopID/followers", cfg.Follows.ShopFollowers)
	api.Get("/members/:memberID/followers", cfg.Follows.MemberFollowers)
	api.Get("/members/:memberID/followings", cfg.Follows.MemberFollowings)
	api.Delete("/follows/:followID", cfg.Follows.Unfollow)

	api.Post("/items/:itemID/wishes", cfg.Wishes.Toggle)
	api.Get("/items/:itemID/wishes", cfg.Wishes.Status)

	api.Post("/trades", cfg.Trades.Create)

	mypages := api.Group("/mypages")
	mypages.Get("/orders", cfg.MyPage.Orders)
	mypages.Get("/sales", cfg.MyPage.Sales)
	mypages.Get("/followerlists", cfg.MyPage.FollowerList)
	mypages.Get("/wishlists", cfg.MyPage.Wishlist)

	app.Post("/chat/messages", cfg.Chat.Publish)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat/:roomID", websocket.New(cfg.Chat.Subscribe))
}
