package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// PayrollRepo funcionarios y su costo mensual.
type PayrollRepo struct {
	base
}

func NewPayrollRepository(q Querier, timeout time.Duration) *PayrollRepo {
	return &PayrollRepo{base{q: q, timeout: timeout}}
}

func (r *PayrollRepo) List(ctx context.Context, f repository.PayrollFilter) ([]*entity.PayrollRecord, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var w whereBuilder
	if f.CompanyID != nil {
		w.add("company_id = $%d", *f.CompanyID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	query := `SELECT id, company_id, name, role, contract_type, base_salary, benefits, status, hired_at, created_at
		FROM payroll_records` + w.sql() + ` ORDER BY id`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list payroll", err)
	}
	defer rows.Close()

	var list []*entity.PayrollRecord
	for rows.Next() {
		var p entity.PayrollRecord
		var salary, benefits decimal.NullDecimal
		var role, contract *string
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &role, &contract, &salary, &benefits,
			&p.Status, &p.HiredAt, &p.CreatedAt); err != nil {
			return nil, mapError("scan payroll", err)
		}
		p.BaseSalary, p.Benefits = dec(salary), dec(benefits)
		p.Role, p.ContractType = strOrEmpty(role), strOrEmpty(contract)
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list payroll", err)
	}
	return list, nil
}
