package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo cuentas a pagar / a recibir.
type AccountRepo struct {
	base
}

func NewAccountRepository(q Querier, timeout time.Duration) *AccountRepo {
	return &AccountRepo{base{q: q, timeout: timeout}}
}

// List filtra por empresa, tipo, estado y rango de vencimiento (ambos extremos inclusivos).
func (r *AccountRepo) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var w whereBuilder
	if f.CompanyID != nil {
		w.add("company_id = $%d", *f.CompanyID)
	}
	if f.Type != "" {
		w.add("type = $%d", f.Type)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("due_date >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("due_date <= $%d", *f.To)
	}
	query := `SELECT id, company_id, type, description, category, amount, due_date, status, priority, paid_at, created_at, updated_at
		FROM accounts` + w.sql() + ` ORDER BY due_date, id`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list accounts", err)
	}
	defer rows.Close()

	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		var amount decimal.NullDecimal
		var category, priority *string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Type, &a.Description, &category, &amount, &a.DueDate,
			&a.Status, &priority, &a.PaidAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, mapError("scan account", err)
		}
		a.Amount = dec(amount)
		a.Category, a.Priority = strOrEmpty(category), strOrEmpty(priority)
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list accounts", err)
	}
	return list, nil
}
