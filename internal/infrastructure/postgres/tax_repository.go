package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo obligaciones tributarias.
type TaxRepo struct {
	base
}

func NewTaxRepository(q Querier, timeout time.Duration) *TaxRepo {
	return &TaxRepo{base{q: q, timeout: timeout}}
}

func (r *TaxRepo) List(ctx context.Context, f repository.TaxFilter) ([]*entity.TaxObligation, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var w whereBuilder
	if f.CompanyID != nil {
		w.add("company_id = $%d", *f.CompanyID)
	}
	if f.Period != "" {
		w.add("period = $%d", string(f.Period))
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	query := `SELECT id, company_id, tax_type, period, base_amount, rate, due_date, status, paid_at, created_at
		FROM tax_obligations` + w.sql() + ` ORDER BY due_date, id`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list taxes", err)
	}
	defer rows.Close()

	var list []*entity.TaxObligation
	for rows.Next() {
		var t entity.TaxObligation
		var period string
		var baseAmount, rate decimal.NullDecimal
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.TaxType, &period, &baseAmount, &rate, &t.DueDate,
			&t.Status, &t.PaidAt, &t.CreatedAt); err != nil {
			return nil, mapError("scan tax", err)
		}
		t.Period = entity.PeriodKey(period)
		t.BaseAmount, t.Rate = dec(baseAmount), dec(rate)
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list taxes", err)
	}
	return list, nil
}
