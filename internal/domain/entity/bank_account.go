package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados operativos de una cuenta bancaria.
const (
	BankAccountActive   = "Ativa"
	BankAccountInactive = "Inativa"
	BankAccountClosed   = "Encerrada"
)

// BankAccount cuenta bancaria de una empresa con su saldo actual y el anterior.
type BankAccount struct {
	ID              int64
	CompanyID       int64
	Name            string
	Bank            string
	Branch          string
	Number          string
	CurrentBalance  decimal.Decimal
	PreviousBalance decimal.Decimal
	Status          string // ver constantes BankAccount*
	BalanceAt       time.Time
	CreatedAt       time.Time
}

// IsActive informa si la cuenta está operativa.
func (b *BankAccount) IsActive() bool {
	return b.Status == BankAccountActive
}
