package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

func newAlertsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Verificaciones de alertas automáticas",
	}

	var ignoreLock bool
	run := &cobra.Command{
		Use:   "run",
		Short: "Ejecuta la verificación completa (cuentas vencidas + impuestos próximos)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()
			c, err := e.open(ctx)
			if err != nil {
				return err
			}
			if ignoreLock {
				return e.printJSON(c.Automation.RunFullCheck(ctx))
			}
			res, ran := c.Scheduler.RunNow(ctx)
			if !ran {
				e.log.Warn().Msg("verificación en curso en otra instancia; nada que hacer")
				return nil
			}
			return e.printJSON(res)
		},
	}
	run.Flags().BoolVar(&ignoreLock, "sin-lock", false, "Ejecuta aunque otra instancia tenga el lock")

	lowBalance := &cobra.Command{
		Use:   "saldo-baixo",
		Short: "Genera alertas de cuentas bancarias con saldo bajo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			c, err := e.open(ctx)
			if err != nil {
				return err
			}
			return e.printJSON(c.Automation.CheckLowBalances(ctx))
		},
	}

	var period string
	margins := &cobra.Command{
		Use:   "margem-negativa",
		Short: "Genera alertas de empresas con margen negativo en el período",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			c, err := e.open(ctx)
			if err != nil {
				return err
			}
			p := entity.PeriodOf(time.Now().In(c.Location))
			if period != "" {
				if p, err = entity.ParsePeriodKey(period); err != nil {
					return err
				}
			}
			return e.printJSON(c.Automation.CheckNegativeMargins(ctx, p))
		},
	}
	margins.Flags().StringVar(&period, "periodo", "", "Mes (YYYY-MM); por defecto el corriente")

	cmd.AddCommand(run, lowBalance, margins)
	return cmd
}
