package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helpdesk-labs/ticket-api/internal/config"
	"github.com/helpdesk-labs/ticket-api/internal/observability"
	"github.com/helpdesk-labs/ticket-api/internal/persistence"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
	"github.com/helpdesk-labs/ticket-api/internal/repository/memory"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Ticket tracking HTTP API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ticket-api %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(versionCmd)
}

// stack holds what every command needs after startup.
type stack struct {
	cfg    *config.Config
	logger *zap.Logger
	pg     *persistence.Postgres
}

func bootstrap(ctx context.Context) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.App.Version == "dev" {
		cfg.App.Version = version
	}
	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}
	return &stack{cfg: cfg, logger: logger, pg: pg}, nil
}

func (r *stack) close() {
	r.pg.Close()
	_ = r.logger.Sync()
}

// repositories returns Postgres-backed stores, or in-memory ones when no
// DSN is configured.
func (r *stack) repositories() (repository.UserRepository, repository.TicketRepository) {
	if !r.pg.Enabled() {
		r.logger.Warn("using in-memory repositories; data is lost on restart")
		return memory.NewUserRepository(), memory.NewTicketRepository()
	}
	pool := r.pg.PoolHandle()
	return repository.NewUserRepository(pool), repository.NewTicketRepository(pool)
}

func (r *stack) migrate(ctx context.Context) error {
	if !r.pg.Enabled() {
		return nil
	}
	return persistence.RunMigrations(ctx, r.pg.PoolHandle(), r.logger)
}

func (r *stack) seedAccounts() ([]persistence.SeedAccount, error) {
	if r.cfg.Seed.File == "" {
		return persistence.DefaultSeedAccounts(), nil
	}
	return persistence.LoadSeedAccounts(r.cfg.Seed.File)
}
