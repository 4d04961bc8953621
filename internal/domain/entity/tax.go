package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una obligación tributaria.
const (
	TaxStatusPending = "Pendente"
	TaxStatusPaid    = "Pago"
	TaxStatusOverdue = "Atrasado"
)

// TaxObligation obligación tributaria mensual de una empresa.
type TaxObligation struct {
	ID         int64
	CompanyID  int64
	TaxType    string    // ICMS, ISS, PIS, COFINS, IRPJ...
	Period     PeriodKey // competencia YYYY-MM
	BaseAmount decimal.Decimal
	Rate       decimal.Decimal // porcentaje, ej. 15 = 15%
	DueDate    time.Time
	Status     string // ver constantes TaxStatus*
	PaidAt     *time.Time
	CreatedAt  time.Time
}

// TaxAmount calcula el impuesto: base × alícuota / 100.
func (t *TaxObligation) TaxAmount() decimal.Decimal {
	return t.BaseAmount.Mul(t.Rate).Div(decimal.NewFromInt(100))
}
