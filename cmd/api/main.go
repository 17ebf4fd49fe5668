package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/community-service/internal/api/http"
	"github.com/spec-kit/community-service/internal/api/http/handlers"
	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/cache"
	"github.com/spec-kit/community-service/internal/config"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/observability"
	"github.com/spec-kit/community-service/internal/persistence"
	"github.com/spec-kit/community-service/internal/repository"
	"github.com/spec-kit/community-service/internal/service"
	"github.com/spec-kit/community-service/internal/worker"
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
	memberRepo := repository.NewMemberRepository(pool)
	moderatorRepo := repository.NewModeratorRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	postRepo := repository.NewPostRepository(pool)

	guards := auth.NewGuardSet(
		auth.NewGuard(domain.RoleMember, existsLookup(memberRepo.ExistsActive)),
		auth.NewGuard(domain.RoleModerator, existsLookup(moderatorRepo.ExistsActive)),
		auth.NewGuard(domain.RoleAdmin, existsLookup(adminRepo.ExistsActive)),
	)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	auditService := service.NewAuditService(logger, metrics, redis.Client)
	worker.StartAuditWorker(auditService, dispatcher)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		MemberRepo:        memberRepo,
		ModeratorRepo:     moderatorRepo,
		AdminRepo:         adminRepo,
		PasswordResetRepo: resetRepo,
		Guards:            guards,
		Dispatcher:        dispatcher,
	})

	postCache := cache.NewPostCache(redis.Client, cfg.Cache.PostListTTL(), logger)
	postService := service.NewPostService(postRepo, postCache, dispatcher)
	accountService := service.NewAccountService(memberRepo, moderatorRepo, dispatcher, cfg.Auth.BcryptCost)

	resolver := auth.NewResolver(authService.TokenManager())
	authMiddleware := auth.NewMiddleware(resolver, guards, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Members:        handlers.NewMembersHandler(authService),
		Moderators:     handlers.NewModeratorsHandler(authService, postService),
		Admins:         handlers.NewAdminsHandler(authService, accountService),
		Posts:          handlers.NewPostsHandler(postService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// existsLookup adapts a repository's string-keyed existence check to the
// guard's uuid-keyed lookup.
func existsLookup(exists func(ctx context.Context, id string) (bool, error)) auth.LookupFunc {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		return exists(ctx, id.String())
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
