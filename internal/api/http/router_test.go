package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	httptransport "github.com/spec-kit/marketplace-service/internal/api/http"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/chat"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
)

type stubMemberRepo struct {
	members map[string]*domain.Member
}

func (r *stubMemberRepo) Create(_ context.Context, m *domain.Member) error {
	m.ID = fmt.Sprintf("member-%d", len(r.members)+1)
	r.members[m.ID] = m
	return nil
}

func (r *stubMemberRepo) Update(_ context.Context, m *domain.Member) error {
	r.members[m.ID] = m
	return nil
}

func (r *stubMemberRepo) GetByID(_ context.Context, id string) (*domain.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return m, nil
}

func (r *stubMemberRepo) GetByUsername(_ context.Context, username string) (*domain.Member, error) {
	for _, m := range r.members {
		if m.Username == username {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type stubShopRepo struct {
	shops map[string]*domain.Shop
}

func (r *stubShopRepo) Create(_ context.Context, s *domain.Shop) error {
	s.ID = fmt.Sprintf("shop-%d", len(r.shops)+1)
	r.shops[s.ID] = s
	return nil
}

func (r *stubShopRepo) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (r *stubShopRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Shop, error) {
	for _, s := range r.shops {
		if s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type stubFollowRepo struct {
	m    sync.Mutex
	rows map[string]*domain.Follow
}

func followKey(followerID, shopID string) string { return followerID + "|" + shopID }

func (r *stubFollowRepo) GetByPair(_ context.Context, followerID, shopID string) (*domain.Follow, error) {
	r.m.Lock()
	defer r.m.Unlock()
	f, ok := r.rows[followKey(followerID, shopID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return f, nil
}

func (r *stubFollowRepo) GetByID(_ context.Context, id string) (*domain.Follow, error) {
	r.m.Lock()
	defer r.m.Unlock()
	for _, f := range r.rows {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubFollowRepo) Insert(_ context.Context, f *domain.Follow) error {
	r.m.Lock()
	defer r.m.Unlock()
	key := followKey(f.FollowerID, f.ShopID)
	if _, exists := r.rows[key]; exists {
		return repository.ErrDuplicate
	}
	f.ID = fmt.Sprintf("follow-%d", len(r.rows)+1)
	f.CreatedAt = time.Now()
	r.rows[key] = f
	return nil
}

func (r *stubFollowRepo) Delete(_ context.Context, followerID, shopID string) error {
	r.m.Lock()
	defer r.m.Unlock()
	key := followKey(followerID, shopID)
	if _, ok := r.rows[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, key)
	return nil
}

func (r *stubFollowRepo) DeleteByID(_ context.Context, id string) error {
	r.m.Lock()
	defer r.m.Unlock()
	for key, f := range r.rows {
		if f.ID == id {
			delete(r.rows, key)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubFollowRepo) ListFollowersByShop(_ context.Context, _ string) ([]domain.FollowMember, error) {
	return nil, nil
}

func (r *stubFollowRepo) ListFollowingsByMember(_ context.Context, _ string) ([]domain.FollowMember, error) {
	return nil, nil
}

type stubTradeRepo struct {
	trades []domain.Trade
}

func (r *stubTradeRepo) Create(_ context.Context, t *domain.Trade) error {
	t.ID = fmt.Sprintf("trade-%d", len(r.trades)+1)
	r.trades = append(r.trades, *t)
	return nil
}

func (r *stubTradeRepo) ListByBuyer(_ context.Context, buyerID string, _, _ int) ([]domain.Trade, error) {
	var out []domain.Trade
	for _, t := range r.trades {
		if t.BuyerID == buyerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTradeRepo) ListBySeller(_ context.Context, sellerID string, _, _ int) ([]domain.Trade, error) {
	var out []domain.Trade
	for _, t := range r.trades {
		if t.SellerID == sellerID {
			out = append(out, t)
		}
	}
	return out, nil
}

type stubItemRepo struct{}

func (stubItemRepo) Create(_ context.Context, _ *domain.Item) error { return nil }
func (stubItemRepo) GetByID(_ context.Context, _ string) (*domain.Item, error) {
	return nil, pgx.ErrNoRows
}
func (stubItemRepo) ListByShop(_ context.Context, _ string, _, _ int) ([]domain.Item, error) {
	return nil, nil
}

type stubWishRepo struct{}

func (stubWishRepo) GetByPair(_ context.Context, _, _ string) (*domain.Wish, error) {
	return nil, pgx.ErrNoRows
}
func (stubWishRepo) Insert(_ context.Context, _ *domain.Wish) error  { return nil }
func (stubWishRepo) Delete(_ context.Context, _, _ string) error     { return pgx.ErrNoRows }
func (stubWishRepo) ListItemsByMember(_ context.Context, _ string) ([]domain.Item, error) {
	return nil, nil
}

type nullBroker struct{}

func (nullBroker) Publish(_ context.Context, _ string, _ []byte) error { return nil }

func setupApp(t *testing.T) (*fiber.App, *service.AuthService, *domain.Member) {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret",
			AccessTokenTTLMinutes:  5,
			RefreshTokenTTLMinutes: 60,
			BcryptCost:             4,
		},
	}

	memberRepo := &stubMemberRepo{members: map[string]*domain.Member{
		"member-42": {ID: "member-42", Username: "alice", Nickname: "Alice", Status: domain.MemberStatusActive, Role: domain.RoleUser},
		"member-99": {ID: "member-99", Username: "bob", Nickname: "Bob", Status: domain.MemberStatusActive, Role: domain.RoleUser},
	}}
	shopRepo := &stubShopRepo{shops: map[string]*domain.Shop{
		"shop-7": {ID: "shop-7", OwnerID: "member-99", Name: "bob's shop"},
	}}
	followRepo := &stubFollowRepo{rows: make(map[string]*domain.Follow)}
	tradeRepo := &stubTradeRepo{}

	authService := service.NewAuthService(cfg, memberRepo, shopRepo)
	followService := service.NewFollowService(followRepo, shopRepo, false)
	wishService := service.NewWishService(stubWishRepo{}, stubItemRepo{})
	tradeService := service.NewTradeService(tradeRepo, stubItemRepo{}, shopRepo)

	hub := chat.NewHub(4)
	relay := chat.NewRelay(nullBroker{}, zap.NewNop())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Follows:        handlers.NewFollowHandler(followService),
		Wishes:         handlers.NewWishHandler(wishService),
		Trades:         handlers.NewTradeHandler(tradeService),
		MyPage:         handlers.NewMyPageHandler(tradeService, followService, wishService),
		Chat:           handlers.NewChatHandler(relay, hub, zap.NewNop()),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), memberRepo),
		Rules:          auth.NewRuleTable(auth.DefaultRules(), false),
	})

	return app, authService, memberRepo.members["member-42"]
}

func bearer(t *testing.T, svc *service.AuthService, memberID string) string {
	t.Helper()
	token, _, err := svc.TokenManager().GenerateToken(memberID, auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func TestMyPageOrders_RequiresAuthentication(t *testing.T) {
	app, svc, member := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/mypages/orders", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("without token status = %d, want 401", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/mypages/orders", nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, svc, member.ID))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("with token status = %d, want 200", resp.StatusCode)
	}
}

func TestMyPageOrders_InvalidTokensAreUnauthenticated(t *testing.T) {
	app, _, _ := setupApp(t)

	expired := auth.NewTokenManager("test-secret", -time.Minute, -time.Minute)
	expiredToken, _, err := expired.GenerateToken("member-42", auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "expired token", header: "Bearer " + expiredToken},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "wrong scheme", header: "Basic abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/mypages/orders", nil)
			req.Header.Set(fiber.HeaderAuthorization, tt.header)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestFollowToggleEndpoint(t *testing.T) {
	app, svc, member := setupApp(t)
	authHeader := bearer(t, svc, member.ID)

	toggle := func() (*http.Response, dto.FollowResponse) {
		req := httptest.NewRequest(http.MethodPost, "/api/shops/shop-7/follows", nil)
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		var body struct {
			Data dto.FollowResponse `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp, body.Data
	}

	resp, data := toggle()
	if resp.StatusCode != http.StatusCreated || !data.Following {
		t.Fatalf("first toggle: status=%d following=%v, want 201/true", resp.StatusCode, data.Following)
	}

	resp, data = toggle()
	if resp.StatusCode != http.StatusOK || data.Following {
		t.Fatalf("second toggle: status=%d following=%v, want 200/false", resp.StatusCode, data.Following)
	}

	// Without a token the rule table rejects before the handler runs.
	req := httptest.NewRequest(http.MethodPost, "/api/shops/shop-7/follows", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous toggle status = %d, want 401", resp.StatusCode)
	}
}

func TestPublicRoutesSkipAuthentication(t *testing.T) {
	app, _, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/members/member-99/followings", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public followings status = %d, want 200", resp.StatusCode)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	app, svc, _ := setupApp(t)

	// Seed a credentialed account through the service itself.
	if _, err := svc.Signup(context.Background(), "carol", "Carol", "password123"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	body := `{"username":"carol","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderAuthorization); got == "" {
		t.Errorf("login response missing Authorization header")
	}
	if got := resp.Header.Get("Refresh-Token"); got == "" {
		t.Errorf("login response missing Refresh-Token header")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"carol","password":"wrong"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", resp.StatusCode)
	}
}
