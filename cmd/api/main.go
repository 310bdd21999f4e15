package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/school-service/internal/api/http"
	"github.com/spec-kit/school-service/internal/api/http/handlers"
	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/config"
	"github.com/spec-kit/school-service/internal/observability"
	"github.com/spec-kit/school-service/internal/persistence"
	"github.com/spec-kit/school-service/internal/repository"
	"github.com/spec-kit/school-service/internal/service"
	"github.com/spec-kit/school-service/internal/tenant"
	"github.com/spec-kit/school-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	schoolRepo := repository.NewSchoolRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	lastSeen := worker.NewLastSeenRecorder(userRepo, logger, cfg.Auth.LastSeenBufferSize)
	defer lastSeen.Close()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	studentService := service.NewStudentService(studentRepo)
	directoryService := service.NewDirectoryService(userRepo, teacherRepo, staffRepo)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, lastSeen, logger)
	resolver := tenant.NewResolver(schoolRepo, cfg.App.MainDomain, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.App.Env == "production"})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:           handlers.NewHealthHandler(pg, redis),
		Auth:             handlers.NewAuthHandler(authService),
		Students:         handlers.NewStudentsHandler(studentService),
		Directory:        handlers.NewDirectoryHandler(directoryService),
		StudentService:   studentService,
		DirectoryService: directoryService,
		AuthMiddleware:   authMiddleware,
		Resolver:         resolver,
		Schools:          schoolRepo,
		Logger:           logger,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
