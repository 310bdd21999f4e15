package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
	apperrors "github.com/spec-kit/school-service/pkg/util"
)

// RequireActiveSchool gates routes that need an operable tenant. It runs
// after auth.Middleware.Protect and re-fetches the principal's school on
// every request: suspensions happen out-of-band (billing) and must take
// effect without a re-login.
func RequireActiveSchool(schools repository.SchoolRepository, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("not authorized")
		}
		if principal.SchoolID == "" {
			return apperrors.NewForbidden("no school is associated with this account", nil)
		}

		school, err := schools.GetByID(c.Context(), principal.SchoolID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewForbidden("no school is associated with this account", nil)
			}
			logger.Error("school status lookup failed",
				zap.String("school_id", principal.SchoolID), zap.Error(err))
			return apperrors.NewInternal(err)
		}

		if school.Status != domain.SchoolStatusActive {
			return apperrors.NewForbidden("school is not active", map[string]any{
				"schoolStatus": string(school.Status),
				"schoolName":   school.Name,
			})
		}

		// downstream scoping sees the freshly verified school
		WithSchool(c, school)
		return c.Next()
	}
}
