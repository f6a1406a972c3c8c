package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/marketplace-service/internal/api/http"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/chat"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	memberRepo := repository.NewMemberRepository(pool)
	shopRepo := repository.NewShopRepository(pool)
	followRepo := repository.NewFollowRepository(pool)
	itemRepo := repository.NewItemRepository(pool)
	wishRepo := repository.NewWishRepository(pool)
	tradeRepo := repository.NewTradeRepository(pool)

	authService := service.NewAuthService(*cfg, memberRepo, shopRepo)
	followService := service.NewFollowService(followRepo, shopRepo, cfg.Follow.AllowSelfFollow)
	wishService := service.NewWishService(wishRepo, itemRepo)
	tradeService := service.NewTradeService(tradeRepo, itemRepo, shopRepo)

	hub := chat.NewHub(cfg.Chat.SubscriberBuffer)
	relay := chat.NewRelay(chat.NewRedisBroker(redis.Client), logger)
	worker.NewChatRelayWorker(redis.Client, hub, logger).Start(ctx)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), memberRepo)
	rules := auth.NewRuleTable(auth.DefaultRules(), cfg.Auth.RulesDefaultAllow)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Follows:        handlers.NewFollowHandler(followService),
		Wishes:         handlers.NewWishHandler(wishService),
		Trades:         handlers.NewTradeHandler(tradeService),
		MyPage:         handlers.NewMyPageHandler(tradeService, followService, wishService),
		Chat:           handlers.NewChatHandler(relay, hub, logger),
		AuthMiddleware: authMiddleware,
		Rules:          rules,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
