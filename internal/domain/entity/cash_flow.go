package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de un movimiento de flujo de caja.
const (
	CashFlowIn  = "Entrada"
	CashFlowOut = "Saida"
)

// CashFlowEntry movimiento de caja (entrada o salida) de una empresa.
type CashFlowEntry struct {
	ID            int64
	CompanyID     int64
	Date          time.Time
	Direction     string // ver constantes CashFlow*
	Description   string
	Category      string
	Amount        decimal.Decimal
	PaymentMethod string
	Reference     string
	CreatedAt     time.Time
}
