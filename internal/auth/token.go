package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/school-service/internal/config"
	"github.com/spec-kit/school-service/internal/domain"
)

// ErrInvalidToken is the uniform verification failure. Expiry, signature
// mismatch and malformed payloads all collapse into it; the wrapped cause is
// for server-side logs only and must never reach a response body.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies the signed session tokens carrying
// {subject, role, school}. Access and refresh tokens use distinct secrets.
type TokenManager struct {
	secret        []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:        []byte(cfg.JWTSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTokenTTL(),
		refreshTTL:    cfg.RefreshTokenTTL(),
	}
}

// Claims describes the JWT payload. SchoolID is empty for platform-level
// accounts with no tenant.
type Claims struct {
	Role     domain.Role `json:"role,omitempty"`
	SchoolID string      `json:"school_id,omitempty"`
	jwt.RegisteredClaims
}

// Issue builds and signs a short-lived access token for the subject.
func (tm *TokenManager) Issue(subjectID string, role domain.Role, schoolID string) (string, time.Time, error) {
	return tm.sign(subjectID, role, schoolID, tm.secret, tm.accessTTL)
}

// IssueRefresh builds a long-lived refresh token against the refresh secret.
func (tm *TokenManager) IssueRefresh(subjectID string, role domain.Role, schoolID string) (string, time.Time, error) {
	return tm.sign(subjectID, role, schoolID, tm.refreshSecret, tm.refreshTTL)
}

// Verify validates an access token and returns its claims.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	return parse(tokenStr, tm.secret)
}

// VerifyRefresh validates a refresh token against the refresh secret.
func (tm *TokenManager) VerifyRefresh(tokenStr string) (*Claims, error) {
	return parse(tokenStr, tm.refreshSecret)
}

func (tm *TokenManager) sign(subjectID string, role domain.Role, schoolID string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Role:     role,
		SchoolID: schoolID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
