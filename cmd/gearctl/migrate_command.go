package main

import (
	"fmt"

	"gear-ledger/internal/infra/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := ctx.ensurePool()
			if err != nil {
				return err
			}
			if err := migrations.Up(cmd.Context(), pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := ctx.ensurePool()
			if err != nil {
				return err
			}
			return migrations.Down(cmd.Context(), pool)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := ctx.ensurePool()
			if err != nil {
				return err
			}
			return migrations.Status(cmd.Context(), pool)
		},
	})

	return migrateCmd
}
