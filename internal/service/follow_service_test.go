package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// mockFollowRepository implements repository.FollowRepository with the same
// unique pair constraint the follows table enforces.
type mockFollowRepository struct {
	m       sync.Mutex
	rows    map[string]*domain.Follow
	nextID  int
	byIDIdx map[string]string
}

func newMockFollowRepo() *mockFollowRepository {
	return &mockFollowRepository{
		rows:    make(map[string]*domain.Follow),
		byIDIdx: make(map[string]string),
	}
}

func pairKey(followerID, shopID string) string {
	return followerID + "|" + shopID
}

func (m *mockFollowRepository) GetByPair(_ context.Context, followerID, shopID string) (*domain.Follow, error) {
	m.m.Lock()
	defer m.m.Unlock()
	follow, ok := m.rows[pairKey(followerID, shopID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *follow
	return &copied, nil
}

func (m *mockFollowRepository) GetByID(_ context.Context, id string) (*domain.Follow, error) {
	m.m.Lock()
	defer m.m.Unlock()
	key, ok := m.byIDIdx[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *m.rows[key]
	return &copied, nil
}

func (m *mockFollowRepository) Insert(_ context.Context, follow *domain.Follow) error {
	m.m.Lock()
	defer m.m.Unlock()
	key := pairKey(follow.FollowerID, follow.ShopID)
	if _, exists := m.rows[key]; exists {
		return repository.ErrDuplicate
	}
	m.nextID++
	follow.ID = fmt.Sprintf("follow-%d", m.nextID)
	follow.CreatedAt = time.Now()
	copied := *follow
	m.rows[key] = &copied
	m.byIDIdx[follow.ID] = key
	return nil
}

func (m *mockFollowRepository) Delete(_ context.Context, followerID, shopID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	key := pairKey(followerID, shopID)
	follow, ok := m.rows[key]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(m.rows, key)
	delete(m.byIDIdx, follow.ID)
	return nil
}

func (m *mockFollowRepository) DeleteByID(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	key, ok := m.byIDIdx[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(m.rows, key)
	delete(m.byIDIdx, id)
	return nil
}

func (m *mockFollowRepository) ListFollowersByShop(_ context.Context, shopID string) ([]domain.FollowMember, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var result []domain.FollowMember
	for _, f := range m.rows {
		if f.ShopID == shopID {
			result = append(result, domain.FollowMember{MemberID: f.FollowerID, ShopID: f.ShopID})
		}
	}
	return result, nil
}

func (m *mockFollowRepository) ListFollowingsByMember(_ context.Context, memberID string) ([]domain.FollowMember, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var result []domain.FollowMember
	for _, f := range m.rows {
		if f.FollowerID == memberID {
			result = append(result, domain.FollowMember{MemberID: memberID, ShopID: f.ShopID})
		}
	}
	return result, nil
}

func (m *mockFollowRepository) rowCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.rows)
}

// mockShopRepository implements repository.ShopRepository over a fixed set.
type mockShopRepository struct {
	shops map[string]*domain.Shop
}

func (m *mockShopRepository) Create(_ context.Context, shop *domain.Shop) error {
	m.shops[shop.ID] = shop
	return nil
}

func (m *mockShopRepository) GetByID(_ context.Context, id string) (*domain.Shop, error) {
	shop, ok := m.shops[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return shop, nil
}

func (m *mockShopRepository) GetByOwner(_ context.Context, ownerID string) (*domain.Shop, error) {
	for _, shop := range m.shops {
		if shop.OwnerID == ownerID {
			return shop, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func setupFollowService(t *testing.T, allowSelf bool) (*FollowService, *mockFollowRepository) {
	t.Helper()

	followRepo := newMockFollowRepo()
	shopRepo := &mockShopRepository{shops: map[string]*domain.Shop{
		"shop-7": {ID: "shop-7", OwnerID: "member-99", Name: "vintage things"},
	}}
	return NewFollowService(followRepo, shopRepo, allowSelf), followRepo
}

func TestFollowService_ToggleCreatesThenDeletes(t *testing.T) {
	svc, repo := setupFollowService(t, false)
	member := &domain.Member{ID: "member-3"}

	result, err := svc.Toggle(context.Background(), member, "shop-7")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !result.Following {
		t.Fatalf("first toggle should create the relation")
	}
	if repo.rowCount() != 1 {
		t.Fatalf("row count = %d, want 1", repo.rowCount())
	}

	result, err = svc.Toggle(context.Background(), member, "shop-7")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if result.Following {
		t.Fatalf("second toggle should delete the relation")
	}
	if repo.rowCount() != 0 {
		t.Fatalf("toggle pair is not a no-op: %d rows left", repo.rowCount())
	}
}

func TestFollowService_ToggleUnknownShop(t *testing.T) {
	svc, _ := setupFollowService(t, false)

	_, err := svc.Toggle(context.Background(), &domain.Member{ID: "member-3"}, "shop-404")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestFollowService_SelfFollowPolicy(t *testing.T) {
	owner := &domain.Member{ID: "member-99"}

	svc, _ := setupFollowService(t, false)
	_, err := svc.Toggle(context.Background(), owner, "shop-7")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("self follow error = %v, want VALIDATION_FAILED", err)
	}

	svc, _ = setupFollowService(t, true)
	if _, err := svc.Toggle(context.Background(), owner, "shop-7"); err != nil {
		t.Fatalf("self follow with permissive policy: %v", err)
	}
}

func TestFollowService_ConcurrentToggles(t *testing.T) {
	svc, repo := setupFollowService(t, false)
	member := &domain.Member{ID: "member-3"}

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			// Conflicts from lost races are acceptable; duplicates are not.
			_, _ = svc.Toggle(context.Background(), member, "shop-7")
		}()
	}
	wg.Wait()

	if count := repo.rowCount(); count > 1 {
		t.Fatalf("concurrent toggles left %d rows, want at most 1", count)
	}
}

func TestFollowService_UnfollowOwnership(t *testing.T) {
	svc, _ := setupFollowService(t, false)
	member := &domain.Member{ID: "member-3"}

	result, err := svc.Toggle(context.Background(), member, "shop-7")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	err = svc.Unfollow(context.Background(), &domain.Member{ID: "member-8"}, result.FollowID)
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "FORBIDDEN" {
		t.Fatalf("foreign unfollow error = %v, want FORBIDDEN", err)
	}

	if err := svc.Unfollow(context.Background(), member, result.FollowID); err != nil {
		t.Fatalf("owner unfollow: %v", err)
	}
}
