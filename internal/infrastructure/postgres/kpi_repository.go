package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var _ repository.KPIRepository = (*KPIRepo)(nil)

// KPIRepo indicadores mensuales cargados a mano.
type KPIRepo struct {
	base
}

func NewKPIRepository(q Querier, timeout time.Duration) *KPIRepo {
	return &KPIRepo{base{q: q, timeout: timeout}}
}

func (r *KPIRepo) List(ctx context.Context, companyID int64, period entity.PeriodKey) ([]*entity.KPIRecord, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, period, gross_revenue, taxes, fixed_costs, variable_costs, notes, created_at
		FROM kpi_records WHERE company_id = $1 AND period = $2 ORDER BY id`, companyID, string(period))
	if err != nil {
		return nil, mapError("list kpis", err)
	}
	defer rows.Close()

	var list []*entity.KPIRecord
	for rows.Next() {
		var k entity.KPIRecord
		var p string
		var revenue, taxes, fixed, variable decimal.NullDecimal
		var notes *string
		if err := rows.Scan(&k.ID, &k.CompanyID, &p, &revenue, &taxes, &fixed, &variable, &notes, &k.CreatedAt); err != nil {
			return nil, mapError("scan kpi", err)
		}
		k.Period = entity.PeriodKey(p)
		k.GrossRevenue, k.Taxes, k.FixedCosts, k.VariableCosts = dec(revenue), dec(taxes), dec(fixed), dec(variable)
		k.Notes = strOrEmpty(notes)
		list = append(list, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list kpis", err)
	}
	return list, nil
}
