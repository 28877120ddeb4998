package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpdesk-labs/ticket-api/internal/persistence"
	"github.com/helpdesk-labs/ticket-api/internal/service"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply embedded database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()
		if !rt.pg.Enabled() {
			return errors.New("POSTGRES_DSN is not set")
		}
		if err := rt.migrate(cmd.Context()); err != nil {
			return err
		}
		names, err := persistence.MigrationNames()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", len(names))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply migrations and create bootstrap accounts when none exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		if !rt.pg.Enabled() {
			return errors.New("POSTGRES_DSN is not set")
		}
		if err := rt.migrate(ctx); err != nil {
			return err
		}
		accounts, err := rt.seedAccounts()
		if err != nil {
			return err
		}
		users, _ := rt.repositories()
		authService := service.NewAuthService(rt.cfg.Auth, users)
		created, err := persistence.SeedUsers(ctx, users, authService.Hasher(), accounts, rt.logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %d accounts\n", created)
		return nil
	},
}
