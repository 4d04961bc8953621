package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/reconciliation"
)

type reconcileCmd struct {
	env         *env
	companyID   int64
	from, to    string
	summaryOnly bool
	mark        string
}

func newReconcileCmd(e *env) *cobra.Command {
	rc := &reconcileCmd{env: e}
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Lista los ítems de conciliación de una empresa o marca un ítem como conciliado",
		RunE:  rc.run,
	}
	cmd.Flags().Int64Var(&rc.companyID, "empresa", 0, "ID de empresa")
	cmd.Flags().StringVar(&rc.from, "inicio", "", "Fecha inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.to, "fim", "", "Fecha final (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&rc.summaryOnly, "resumo", false, "Imprime solo el resumen")
	cmd.Flags().StringVar(&rc.mark, "marcar", "", "ID de ítem a marcar (banco-N, pagar-N, receber-N)")
	return cmd
}

func (rc *reconcileCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	if rc.mark != "" {
		if _, _, err := reconciliation.ParseItemID(rc.mark); err != nil {
			return err
		}
		c, err := rc.env.open(ctx)
		if err != nil {
			return err
		}
		ok, err := c.Reconciliation.MarkReconciled(ctx, rc.mark)
		if err != nil {
			return err
		}
		return rc.env.printJSON(map[string]any{"item_id": rc.mark, "conciliado": ok})
	}

	if rc.companyID <= 0 || rc.from == "" || rc.to == "" {
		return fmt.Errorf("--empresa, --inicio y --fim son obligatorios")
	}
	c, err := rc.env.open(ctx)
	if err != nil {
		return err
	}
	from, err := time.ParseInLocation("2006-01-02", rc.from, c.Location)
	if err != nil {
		return fmt.Errorf("--inicio: %w", err)
	}
	to, err := time.ParseInLocation("2006-01-02", rc.to, c.Location)
	if err != nil {
		return fmt.Errorf("--fim: %w", err)
	}

	items, err := c.Reconciliation.GetReconciliationItems(ctx, rc.companyID, from, to)
	if err != nil {
		return err
	}
	summary := reconciliation.Summarize(items)
	if rc.summaryOnly {
		return rc.env.printJSON(summary)
	}
	return rc.env.printJSON(struct {
		Items   []dto.ReconciliationItemDTO   `json:"itens"`
		Summary *dto.ReconciliationSummaryDTO `json:"resumo"`
	}{items, summary})
}
