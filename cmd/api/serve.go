package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/helpdesk-labs/ticket-api/internal/api/http"
	"github.com/helpdesk-labs/ticket-api/internal/api/http/handlers"
	"github.com/helpdesk-labs/ticket-api/internal/cache"
	"github.com/helpdesk-labs/ticket-api/internal/events"
	"github.com/helpdesk-labs/ticket-api/internal/observability"
	"github.com/helpdesk-labs/ticket-api/internal/persistence"
	"github.com/helpdesk-labs/ticket-api/internal/service"
	"github.com/helpdesk-labs/ticket-api/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()
	cfg, logger := rt.cfg, rt.logger

	if cfg.Postgres.RunMigrations {
		if err := rt.migrate(ctx); err != nil {
			logger.Error("failed to run migrations", zap.Error(err))
			return err
		}
	}

	userRepo, ticketRepo := rt.repositories()
	authService := service.NewAuthService(cfg.Auth, userRepo)

	if cfg.Seed.Enabled {
		accounts, err := rt.seedAccounts()
		if err != nil {
			return err
		}
		if _, err := persistence.SeedUsers(ctx, userRepo, authService.Hasher(), accounts, logger); err != nil {
			logger.Error("failed to seed users", zap.Error(err))
			return err
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	deps := service.TicketDependencies{
		TicketRepo: ticketRepo,
		Logger:     logger,
	}
	if redis.Enabled() {
		listCache := cache.NewTicketListCache(redis.Client, cfg.Redis.TicketListTTL())
		dispatcher := events.NewInMemoryDispatcher()
		worker.StartCacheInvalidation(dispatcher, listCache, logger)
		deps.Cache = listCache
		deps.Dispatcher = dispatcher
	}
	ticketService := service.NewTicketService(deps)

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(httptransport.ServerOptions{
		Name:           cfg.App.Name,
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.HTTP.RequestTimeout(),
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		Routes: httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
				"postgres": rt.pg,
				"redis":    redis,
			}),
			Auth:      handlers.NewAuthHandler(authService),
			Tickets:   handlers.NewTicketsHandler(ticketService),
			Metrics:   handlers.NewMetricsHandler(metrics),
			Tokens:    authService.TokenManager(),
			StaticDir: cfg.HTTP.StaticDir,
		},
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		logger.Error("fiber listen", zap.Error(err))
		return err
	case <-waitForShutdown(ctx, logger):
	}
	return app.Shutdown()
}

func waitForShutdown(ctx context.Context, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer close(done)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			logger.Info("shutting down", zap.String("signal", sig.String()))
		case <-ctx.Done():
			logger.Info("shutting down", zap.Error(ctx.Err()))
		}
	}()
	return done
}
