package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// AuthService coordinates signup, login and token refresh flows.
type AuthService struct {
	members    repository.MemberRepository
	shops      repository.ShopRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, members repository.MemberRepository, shops repository.ShopRepository) *AuthService {
	return &AuthService{
		members:    members,
		shops:      shops,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a member account together with its shop.
func (s *AuthService) Signup(ctx context.Context, username, nickname, password string) (*domain.Member, error) {
	if _, err := s.members.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	member := &domain.Member{
		Username:     username,
		Nickname:     nickname,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.MemberStatusActive,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	shop := &domain.Shop{OwnerID: member.ID, Name: nickname + "'s shop"}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, err
	}
	return member, nil
}

// Login authenticates credentials and mints an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Member, *auth.TokenPair, error) {
	member, err := s.members.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if member.Status != domain.MemberStatusActive {
		return nil, nil, apperrors.NewForbidden("account suspended")
	}

	pair, err := s.tokenMgr.GeneratePair(member.ID)
	if err != nil {
		return nil, nil, err
	}
	return member, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair. Access tokens
// are rejected here regardless of validity.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, apperrors.NewUnauthorized("refresh token required")
	}

	member, err := s.members.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("unknown subject")
		}
		return nil, err
	}
	if member.Status != domain.MemberStatusActive {
		return nil, apperrors.NewForbidden("account suspended")
	}

	return s.tokenMgr.GeneratePair(member.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
