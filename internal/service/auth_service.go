package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/config"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
	apperrors "github.com/spec-kit/school-service/pkg/util"
)

// TokenPair bundles the credentials returned by login.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates login and token refresh. Token verification in
// front of routes happens in auth.Middleware; this service owns issuance.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:  users,
		tokens: auth.NewTokenManager(cfg),
	}
}

// TokenManager exposes the shared codec for the auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login authenticates by email and password and issues both tokens bound to
// the user's current {id, role, school}.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, nil, apperrors.NewInternal(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
	}
	if !user.IsActive {
		return nil, nil, apperrors.NewUnauthenticated("account is deactivated")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, apperrors.NewInternal(err)
	}
	return user, pair, nil
}

// Refresh verifies a refresh token against the refresh secret, re-loads the
// account and re-issues a short-lived access token bound to its current
// {id, role, school}.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthenticated("not authorized")
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthenticated("not authorized")
	}
	if !user.IsActive {
		return "", time.Time{}, apperrors.NewUnauthenticated("not authorized")
	}

	access, exp, err := s.tokens.Issue(user.ID, user.Role, user.SchoolIDValue())
	if err != nil {
		return "", time.Time{}, apperrors.NewInternal(err)
	}
	return access, exp, nil
}

func (s *AuthService) issuePair(user *domain.User) (*TokenPair, error) {
	access, accessExp, err := s.tokens.Issue(user.ID, user.Role, user.SchoolIDValue())
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.IssueRefresh(user.ID, user.Role, user.SchoolIDValue())
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
