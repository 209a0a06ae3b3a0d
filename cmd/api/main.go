package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/sq-invest/crm-service/internal/api/http"
	"github.com/sq-invest/crm-service/internal/api/http/handlers"
	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/config"
	"github.com/sq-invest/crm-service/internal/events"
	"github.com/sq-invest/crm-service/internal/observability"
	"github.com/sq-invest/crm-service/internal/persistence"
	"github.com/sq-invest/crm-service/internal/pipeline"
	"github.com/sq-invest/crm-service/internal/repository"
	"github.com/sq-invest/crm-service/internal/seed"
	"github.com/sq-invest/crm-service/internal/service"
	"github.com/sq-invest/crm-service/internal/session"
	"github.com/sq-invest/crm-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	accounts := repository.NewMemoryAccountRepository()
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		accounts = repository.NewAccountRepository(pg.PoolHandle())
	}
	if !pg.Enabled() || cfg.Postgres.SeedAccounts {
		if err := seed.Apply(ctx, accounts, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed roster", zap.Error(err))
		}
	}

	var (
		redisStore    *persistence.Redis
		memoryBackend *session.MemoryBackend
		slots         session.SlotFactory
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redisStore, err = persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redisStore.Close()
		slots = session.RedisSlots(redisStore.Client, cfg.SessionSlotTTL())
	default:
		logger.Warn("sessions are kept in process memory and do not survive a restart")
		memoryBackend = session.NewMemoryBackend()
		slots = session.MemorySlots(memoryBackend, cfg.SessionSlotTTL())
	}
	sessions := session.NewManager(cfg.Session.Namespace, slots, logger)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		Accounts:   accounts,
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	directoryService := service.NewDirectoryService(accounts, dispatcher, logger)
	if err := directoryService.Load(ctx); err != nil {
		logger.Fatal("failed to load directory", zap.Error(err))
	}

	pipelineService := service.NewPipelineService(pipeline.NewRegistry(seed.Contacts), dispatcher, metrics, logger)
	activityService := service.NewActivityService(dispatcher, logger, cfg.Activity)
	worker.StartSubscribers(directoryService, pipelineService, activityService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redisStore,
		}),
		Session:        handlers.NewSessionHandler(authService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		Pipeline:       handlers.NewPipelineHandler(pipelineService),
		Activity:       handlers.NewActivityHandler(activityService),
		Metrics:        metrics,
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), sessions),
	})

	sweeps := []worker.Sweep{
		{Name: "expired_sessions", Run: authService.ReapExpired},
		{Name: "idle_boards", Run: func(context.Context) int {
			return pipelineService.EvictIdle(cfg.Auth.TokenTTL())
		}},
	}
	if memoryBackend != nil {
		sweeps = append(sweeps, worker.Sweep{Name: "memory_slots", Run: func(context.Context) int {
			return memoryBackend.Sweep()
		}})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker.RunJanitor(gctx, cfg.Session.SweepInterval(), logger, sweeps...)
		return nil
	})
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", zap.Error(err))
	}
}
