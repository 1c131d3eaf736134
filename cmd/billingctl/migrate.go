package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/energy-billing/internal/infrastructure/postgres"
	"github.com/jhoicas/energy-billing/pkg/config"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}
	step := func(use, short string, fn func(context.Context, *pgxpool.Pool) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if e.cfg.Storage.Driver != config.StoragePostgres {
					return fmt.Errorf("migrate requiere STORAGE_DRIVER=postgres")
				}
				ctx := cmd.Context()
				pool, err := postgres.NewPool(ctx, e.cfg.DB)
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := fn(ctx, pool); err != nil {
					return err
				}
				e.log.Info().Str("step", use).Msg("migraciones")
				return nil
			},
		}
	}
	cmd.AddCommand(
		step("up", "Aplica las migraciones pendientes", postgres.MigrateUp),
		step("down", "Revierte la última migración", postgres.MigrateDown),
		step("status", "Muestra el estado de las migraciones", postgres.MigrationStatus),
	)
	return cmd
}
