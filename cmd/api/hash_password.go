package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpdesk-labs/ticket-api/internal/auth"
	"github.com/helpdesk-labs/ticket-api/internal/config"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for a seed file or manual insert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		hash, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost).Hash(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
