package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta (a pagar / a recibir).
const (
	AccountTypePayable    = "Pagar"
	AccountTypeReceivable = "Receber"
)

// Estados de una cuenta a pagar o a recibir.
const (
	AccountStatusPending   = "Pendente"
	AccountStatusPaid      = "Pago"
	AccountStatusReceived  = "Recebido"
	AccountStatusOverdue   = "Atrasado"
	AccountStatusCancelled = "Cancelado"
)

// Account es una cuenta a pagar o a recibir de una empresa.
type Account struct {
	ID          int64
	CompanyID   int64
	Type        string // ver constantes AccountType*
	Description string
	Category    string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      string // ver constantes AccountStatus*
	Priority    string // Baixa, Media, Alta
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSettled informa si la cuenta ya fue pagada (a pagar) o recibida (a recibir).
func (a *Account) IsSettled() bool {
	switch a.Type {
	case AccountTypePayable:
		return a.Status == AccountStatusPaid
	case AccountTypeReceivable:
		return a.Status == AccountStatusReceived
	}
	return false
}
