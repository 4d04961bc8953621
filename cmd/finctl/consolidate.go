package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

type consolidateCmd struct {
	env       *env
	period    string
	companyID int64
}

func newConsolidateCmd(e *env) *cobra.Command {
	cc := &consolidateCmd{env: e}
	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Consolida una empresa o el grupo completo en un mes",
		RunE:  cc.run,
	}
	cmd.Flags().StringVar(&cc.period, "periodo", "", "Mes a consolidar (YYYY-MM)")
	cmd.Flags().Int64Var(&cc.companyID, "empresa", 0, "ID de empresa; sin valor consolida el grupo")
	_ = cmd.MarkFlagRequired("periodo")
	return cmd
}

func (cc *consolidateCmd) run(cmd *cobra.Command, _ []string) error {
	period, err := entity.ParsePeriodKey(cc.period)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	c, err := cc.env.open(ctx)
	if err != nil {
		return err
	}
	if cc.companyID > 0 {
		out, err := c.Consolidation.ConsolidateCompany(ctx, cc.companyID, period)
		if err != nil {
			return fmt.Errorf("consolidar empresa %d: %w", cc.companyID, err)
		}
		return cc.env.printJSON(out)
	}
	out, err := c.Consolidation.SummarizeGroup(ctx, period)
	if err != nil {
		return fmt.Errorf("consolidar grupo: %w", err)
	}
	return cc.env.printJSON(out)
}
