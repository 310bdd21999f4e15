package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
	apperrors "github.com/spec-kit/school-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the normalized view of the authenticated caller attached to
// the request context. It is rebuilt from storage on every request and never
// cached across requests.
type Principal struct {
	ID            string
	Name          string
	Email         string
	Role          domain.Role
	SchoolID      string
	EmailVerified bool
}

// LastSeenSink receives fire-and-forget last-seen updates. Record must never
// block and its failures must never surface to the request.
type LastSeenSink interface {
	Record(userID string)
}

// Middleware verifies session tokens and loads principals in front of every
// protected route.
type Middleware struct {
	tokens   *TokenManager
	users    repository.UserRepository
	lastSeen LastSeenSink
	logger   *zap.Logger
}

// NewMiddleware constructs the auth middleware. lastSeen may be nil in
// contexts that do not track activity (tests, admin tooling).
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, lastSeen LastSeenSink, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, lastSeen: lastSeen, logger: logger}
}

// Protect is the mandatory gate for authenticated routes. Email verification
// and tenant activation are intentionally not enforced here; they compose as
// separate gates so routes like "me" and "logout" keep working for accounts
// whose school is not yet active.
func (m *Middleware) Protect(c *fiber.Ctx) error {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		m.logger.Warn("request without credentials", zap.String("ip", c.IP()), zap.String("path", c.Path()))
		return apperrors.NewUnauthenticated("not authorized")
	}

	claims, err := m.tokens.Verify(tokenStr)
	if err != nil {
		// the cause (expired vs forged vs malformed) stays in the log
		m.logger.Warn("token verification failed", zap.String("ip", c.IP()), zap.Error(err))
		return apperrors.NewUnauthenticated("not authorized")
	}

	user, err := m.users.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			m.logger.Warn("token subject not found", zap.String("ip", c.IP()), zap.String("subject", claims.Subject))
		} else {
			m.logger.Error("principal lookup failed", zap.Error(err))
		}
		return apperrors.NewUnauthenticated("not authorized")
	}

	if !user.IsActive {
		m.logger.Warn("deactivated account", zap.String("user_id", user.ID), zap.String("ip", c.IP()))
		return apperrors.NewUnauthenticated("not authorized")
	}

	// A token minted for one school must not be replayed against an account
	// that has since moved to another. Tenant-less principals (platform
	// accounts) skip the check when either side has no school.
	if claims.SchoolID != "" && user.SchoolID != nil && claims.SchoolID != *user.SchoolID {
		m.logger.Warn("token school mismatch",
			zap.String("user_id", user.ID),
			zap.String("token_school", claims.SchoolID),
			zap.String("user_school", *user.SchoolID))
		return apperrors.NewUnauthenticated("not authorized")
	}

	WithPrincipal(c, &Principal{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		SchoolID:      user.SchoolIDValue(),
		EmailVerified: user.EmailVerified,
	})

	if m.lastSeen != nil {
		m.lastSeen.Record(user.ID)
	}

	return c.Next()
}

// RequireVerifiedEmail composes after Protect on routes that require a
// confirmed email address.
func RequireVerifiedEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("not authorized")
		}
		if !principal.EmailVerified {
			return apperrors.NewForbidden("email address is not verified", nil)
		}
		return c.Next()
	}
}

// WithPrincipal attaches a principal to the request context. Protect calls
// it after a successful load; composed gates and tests use it directly.
func WithPrincipal(c *fiber.Ctx, principal *Principal) {
	c.Locals(principalKey, principal)
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// extractToken pulls the candidate token from the Authorization header, the
// token cookie, or the token query parameter. The query parameter exists for
// authenticated download links (PDF exports) where headers cannot be set.
func extractToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie := c.Cookies("token"); cookie != "" {
		return cookie
	}
	return c.Query("token")
}
