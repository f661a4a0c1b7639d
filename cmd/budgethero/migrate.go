package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DaanHessen/budgethero/internal/store"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the PostgreSQL schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DSN == "" {
				return errors.New("migrate requires --dsn or BUDGETHERO_DATABASE_URL")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			migrator, err := store.NewMigrator(a.cfg.DSN)
			if err != nil {
				return err
			}
			switch args[0] {
			case "up":
				if err := migrator.Up(ctx); err != nil && !errors.Is(err, store.ErrNoChange) {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			case "down":
				if err := migrator.Down(ctx); err != nil && !errors.Is(err, store.ErrNoChange) {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations rolled back")
			default:
				return fmt.Errorf("unknown migrate action %q; use up|down", args[0])
			}
			return nil
		},
	}
	return cmd
}
