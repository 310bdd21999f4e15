package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/school-service/internal/api/http/handlers"
	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
	"github.com/spec-kit/school-service/internal/service"
	"github.com/spec-kit/school-service/internal/tenant"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Auth             *handlers.AuthHandler
	Students         *handlers.StudentsHandler
	Directory        *handlers.DirectoryHandler
	StudentService   *service.StudentService
	DirectoryService *service.DirectoryService
	AuthMiddleware   *auth.Middleware
	Resolver         *tenant.Resolver
	Schools          repository.SchoolRepository
	Logger           *zap.Logger
}

// RegisterRoutes wires the middleware pipeline and HTTP routes. The tenant
// resolver runs in front of everything; Protect, the activation gate and the
// role gates compose per route.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Resolver.Resolve)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	session := authGroup.Group("", cfg.AuthMiddleware.Protect)
	session.Get("/me", cfg.Auth.Me)
	session.Post("/logout", cfg.Auth.Logout)

	students := app.Group("/students",
		cfg.AuthMiddleware.Protect,
		tenant.RequireActiveSchool(cfg.Schools, cfg.Logger),
	)
	students.Get("", auth.HasStudentManagementAccess(), cfg.Students.List)
	students.Post("", auth.HasStudentManagementAccess(), cfg.Students.Create)
	students.Get("/:id",
		auth.OwnerOrRoles("id", cfg.StudentService.OwnerLookup(),
			domain.Policies[domain.PolicyStudentManagement]...),
		cfg.Students.Get,
	)

	teachers := app.Group("/teachers",
		cfg.AuthMiddleware.Protect,
		tenant.RequireActiveSchool(cfg.Schools, cfg.Logger),
	)
	teachers.Get("/:id",
		auth.OwnerOrRoles("id", cfg.DirectoryService.TeacherOwnerLookup(),
			domain.Policies[domain.PolicyStaffManagement]...),
		cfg.Directory.GetTeacher,
	)

	staff := app.Group("/staff",
		cfg.AuthMiddleware.Protect,
		tenant.RequireActiveSchool(cfg.Schools, cfg.Logger),
	)
	staff.Get("/:id",
		auth.OwnerOrRoles("id", cfg.DirectoryService.StaffOwnerLookup(),
			domain.Policies[domain.PolicyStaffManagement]...),
		cfg.Directory.GetStaff,
	)

	users := app.Group("/users",
		cfg.AuthMiddleware.Protect,
		tenant.RequireActiveSchool(cfg.Schools, cfg.Logger),
	)
	users.Get("/:id",
		auth.OwnerOrRoles("id", cfg.DirectoryService.UserOwnerLookup(),
			domain.Policies[domain.PolicyStaffManagement]...),
		cfg.Directory.GetUser,
	)
}
