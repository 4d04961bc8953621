package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/painel-financeiro/internal/infrastructure/postgres"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema de la base",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			c, err := e.open(ctx)
			if err != nil {
				return err
			}
			applied, err := postgres.Migrate(ctx, c.Pool)
			if err != nil {
				return err
			}
			for _, name := range applied {
				e.log.Info().Str("script", name).Msg("migración aplicada")
			}
			return nil
		},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Inserta un grupo de demostración (dos empresas) en una transacción",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			c, err := e.open(ctx)
			if err != nil {
				return err
			}
			today := time.Now().In(c.Location)
			err = postgres.NewTxRunner(c.Pool).Run(ctx, func(q postgres.Querier) error {
				return postgres.SeedDemo(ctx, q, today)
			})
			if err != nil {
				return err
			}
			e.log.Info().Msg("datos de demostración insertados")
			return nil
		},
	}
}
