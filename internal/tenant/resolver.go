package tenant

import (
	"errors"
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
)

const schoolKey = "tenant_school"

// HeaderSchoolSubdomain lets trusted first-party clients (the admin
// frontend in development) name the tenant explicitly instead of relying on
// the Host header.
const HeaderSchoolSubdomain = "X-School-Subdomain"

// Resolver derives the active school from the request and attaches it to the
// context. Resolution is advisory: a miss or a lookup failure never blocks
// the request. Only RequireActiveSchool makes a tenant mandatory.
type Resolver struct {
	schools    repository.SchoolRepository
	mainDomain string
	logger     *zap.Logger
}

// NewResolver constructs the resolver. mainDomain is the tenant-agnostic
// host (marketing site, bare API root) that bypasses resolution.
func NewResolver(schools repository.SchoolRepository, mainDomain string, logger *zap.Logger) *Resolver {
	return &Resolver{schools: schools, mainDomain: mainDomain, logger: logger}
}

// Resolve runs first in the pipeline, before authentication.
func (r *Resolver) Resolve(c *fiber.Ctx) error {
	subdomain := strings.TrimSpace(c.Get(HeaderSchoolSubdomain))

	if subdomain == "" {
		host := stripPort(c.Hostname())
		if isLoopback(host) || strings.EqualFold(host, r.mainDomain) {
			return c.Next()
		}
		// tenant.domain.tld has at least three labels
		if labels := strings.Split(host, "."); len(labels) >= 3 {
			subdomain = labels[0]
		}
	}

	if subdomain == "" {
		return c.Next()
	}

	school, err := r.schools.GetBySubdomain(c.Context(), subdomain,
		domain.SchoolStatusActive, domain.SchoolStatusPending)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("school resolution failed",
				zap.String("subdomain", subdomain), zap.Error(err))
		}
		return c.Next()
	}

	WithSchool(c, school)
	return c.Next()
}

// SchoolFromContext retrieves the resolved school, if any.
func SchoolFromContext(c *fiber.Ctx) (*domain.School, bool) {
	val := c.Locals(schoolKey)
	if val == nil {
		return nil, false
	}
	school, ok := val.(*domain.School)
	return school, ok
}

// WithSchool attaches a school to the request context. The resolver and the
// activation gate call it; tests use it directly.
func WithSchool(c *fiber.Ctx, school *domain.School) {
	c.Locals(schoolKey, school)
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
