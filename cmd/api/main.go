package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/colegioeccos/requesthub/internal/api/http"
	"github.com/colegioeccos/requesthub/internal/api/http/handlers"
	"github.com/colegioeccos/requesthub/internal/auth"
	"github.com/colegioeccos/requesthub/internal/config"
	"github.com/colegioeccos/requesthub/internal/events"
	"github.com/colegioeccos/requesthub/internal/notifier"
	"github.com/colegioeccos/requesthub/internal/observability"
	"github.com/colegioeccos/requesthub/internal/persistence"
	"github.com/colegioeccos/requesthub/internal/repository"
	"github.com/colegioeccos/requesthub/internal/service"
	"github.com/colegioeccos/requesthub/internal/worker"
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
	principalRepo := repository.NewPrincipalRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	equipmentRepo := repository.NewEquipmentRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	identityService := service.NewIdentityService(*cfg, service.IdentityDependencies{
		PrincipalRepo: principalRepo,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	availabilityService := service.NewAvailabilityService(availabilityRepo, logger)
	equipmentService := service.NewEquipmentService(equipmentRepo)
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo:      requestRepo,
		EquipmentRepo:    equipmentRepo,
		AvailabilityRepo: availabilityRepo,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})

	adminDirectory := service.NewCachedAdminDirectory(principalRepo, redis.ClientHandle(), cfg.Notification.AdminCacheTTL(), logger)
	sender := notifier.NewSender(cfg.Notification, logger)
	notificationService := service.NewNotificationService(dispatcher, adminDirectory, sender, logger)
	worker.StartNotificationWorker(notificationService, adminDirectory, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(identityService.TokenManager(), principalRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(identityService),
		Requests:       handlers.NewRequestsHandler(requestService),
		AdminRequests:  handlers.NewAdminRequestsHandler(requestService),
		Availability:   handlers.NewAvailabilityHandler(availabilityService),
		Equipment:      handlers.NewEquipmentHandler(equipmentService),
		Users:          handlers.NewUsersHandler(identityService),
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
