package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var _ repository.CashFlowRepository = (*CashFlowRepo)(nil)

// CashFlowRepo movimientos de caja.
type CashFlowRepo struct {
	base
}

func NewCashFlowRepository(q Querier, timeout time.Duration) *CashFlowRepo {
	return &CashFlowRepo{base{q: q, timeout: timeout}}
}

func (r *CashFlowRepo) List(ctx context.Context, f repository.CashFlowFilter) ([]*entity.CashFlowEntry, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var w whereBuilder
	if f.CompanyID != nil {
		w.add("company_id = $%d", *f.CompanyID)
	}
	if f.Direction != "" {
		w.add("direction = $%d", f.Direction)
	}
	if f.From != nil {
		w.add("entry_date >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("entry_date <= $%d", *f.To)
	}
	query := `SELECT id, company_id, entry_date, direction, description, category, amount, payment_method, reference, created_at
		FROM cash_flow_entries` + w.sql() + ` ORDER BY entry_date, id`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list cash flow", err)
	}
	defer rows.Close()

	var list []*entity.CashFlowEntry
	for rows.Next() {
		var e entity.CashFlowEntry
		var amount decimal.NullDecimal
		var category, method, ref *string
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Date, &e.Direction, &e.Description, &category, &amount,
			&method, &ref, &e.CreatedAt); err != nil {
			return nil, mapError("scan cash flow", err)
		}
		e.Amount = dec(amount)
		e.Category, e.PaymentMethod, e.Reference = strOrEmpty(category), strOrEmpty(method), strOrEmpty(ref)
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list cash flow", err)
	}
	return list, nil
}
