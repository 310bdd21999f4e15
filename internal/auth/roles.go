package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/domain"
	apperrors "github.com/spec-kit/school-service/pkg/util"
)

// RequireRoles authorizes the principal against the accepted roles. The set
// is fixed at route-registration time. Comparison is case-insensitive;
// stored role values are never rewritten.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	return RequireRoleSet(roles)
}

// RequireRoleSet is the single-array form of RequireRoles.
func RequireRoleSet(roles []domain.Role) fiber.Handler {
	allowed := normalizeRoles(roles)

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("not authorized")
		}
		if principal.Role == "" {
			return apperrors.NewForbidden("account has no role assigned", nil)
		}
		if _, exists := allowed[strings.ToLower(string(principal.Role))]; !exists {
			return apperrors.NewForbidden(fmt.Sprintf("role %q is not permitted", principal.Role), nil)
		}
		return c.Next()
	}
}

// Named gates are pre-bound instances over the policy tables in
// internal/domain; the authorization matrix lives there, not here.

func IsAdmin() fiber.Handler   { return RequireRoleSet(domain.Policies[domain.PolicyAdmin]) }
func IsTeacher() fiber.Handler { return RequireRoleSet(domain.Policies[domain.PolicyTeacher]) }
func IsStudent() fiber.Handler { return RequireRoleSet(domain.Policies[domain.PolicyStudent]) }
func IsStaff() fiber.Handler   { return RequireRoleSet(domain.Policies[domain.PolicyStaff]) }

func IsAdminOrTeacher() fiber.Handler {
	return RequireRoleSet(domain.Policies[domain.PolicyAdminOrTeacher])
}

func HasFinancialAccess() fiber.Handler {
	return RequireRoleSet(domain.Policies[domain.PolicyFinancialAccess])
}

func HasStudentManagementAccess() fiber.Handler {
	return RequireRoleSet(domain.Policies[domain.PolicyStudentManagement])
}

func HasStaffManagementAccess() fiber.Handler {
	return RequireRoleSet(domain.Policies[domain.PolicyStaffManagement])
}

// OwnerLookup resolves the owning user id of the resource identified by a
// route parameter value.
type OwnerLookup func(ctx context.Context, resourceID string) (ownerUserID string, err error)

// OwnerOrRoles grants access when the principal's role is in the allowed set
// OR the principal owns the target resource. The lookup fails closed: any
// error denies access.
func OwnerOrRoles(param string, lookup OwnerLookup, roles ...domain.Role) fiber.Handler {
	allowed := normalizeRoles(roles)

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("not authorized")
		}
		if _, exists := allowed[strings.ToLower(string(principal.Role))]; exists {
			return c.Next()
		}

		resourceID := c.Params(param)
		if resourceID == "" {
			return apperrors.NewForbidden("access denied", nil)
		}
		ownerID, err := lookup(c.Context(), resourceID)
		if err != nil {
			return apperrors.NewForbidden("access denied", nil)
		}
		if ownerID == "" || ownerID != principal.ID {
			return apperrors.NewForbidden("access denied", nil)
		}
		return c.Next()
	}
}

func normalizeRoles(roles []domain.Role) map[string]struct{} {
	set := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		set[strings.ToLower(string(role))] = struct{}{}
	}
	return set
}
