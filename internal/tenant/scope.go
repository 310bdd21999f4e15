package tenant

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
)

// ActiveSchoolID returns the school id governing this request: the resolved
// school when present, otherwise the principal's school. Empty on
// tenant-agnostic requests.
func ActiveSchoolID(c *fiber.Ctx) string {
	if school, ok := SchoolFromContext(c); ok {
		return school.ID
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.SchoolID
	}
	return ""
}

// ScopeWrite stamps the active school id onto an outgoing create/update
// payload, overriding whatever the caller supplied. No-op without a tenant.
func ScopeWrite(c *fiber.Ctx, payload domain.TenantTagged) {
	if id := ActiveSchoolID(c); id != "" {
		payload.SetSchoolID(id)
	}
}

// ScopeQuery stamps the active school id onto an outgoing query filter so
// list endpoints can never return cross-tenant rows. No-op without a tenant.
func ScopeQuery(c *fiber.Ctx, filter domain.TenantTagged) {
	if id := ActiveSchoolID(c); id != "" {
		filter.SetSchoolID(id)
	}
}
