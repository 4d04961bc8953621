package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var _ repository.BankAccountRepository = (*BankAccountRepo)(nil)

// BankAccountRepo cuentas bancarias con saldo actual y anterior.
type BankAccountRepo struct {
	base
}

func NewBankAccountRepository(q Querier, timeout time.Duration) *BankAccountRepo {
	return &BankAccountRepo{base{q: q, timeout: timeout}}
}

// List devuelve las cuentas de la empresa o de todo el grupo si companyID es nil.
func (r *BankAccountRepo) List(ctx context.Context, companyID *int64) ([]*entity.BankAccount, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var w whereBuilder
	if companyID != nil {
		w.add("company_id = $%d", *companyID)
	}
	query := `SELECT id, company_id, name, bank, branch, number, current_balance, previous_balance, status, balance_at, created_at
		FROM bank_accounts` + w.sql() + ` ORDER BY company_id, id`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list bank accounts", err)
	}
	defer rows.Close()

	var list []*entity.BankAccount
	for rows.Next() {
		var b entity.BankAccount
		var current, previous decimal.NullDecimal
		var bank, branch, number *string
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &bank, &branch, &number, &current, &previous,
			&b.Status, &b.BalanceAt, &b.CreatedAt); err != nil {
			return nil, mapError("scan bank account", err)
		}
		b.CurrentBalance, b.PreviousBalance = dec(current), dec(previous)
		b.Bank, b.Branch, b.Number = strOrEmpty(bank), strOrEmpty(branch), strOrEmpty(number)
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list bank accounts", err)
	}
	return list, nil
}
