package repository

import (
	"context"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// BankAccountRepository consultas de solo lectura sobre cuentas bancarias.
type BankAccountRepository interface {
	// List devuelve las cuentas de la empresa, o de todas si companyID es nil.
	List(ctx context.Context, companyID *int64) ([]*entity.BankAccount, error)
}
