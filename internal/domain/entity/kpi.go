package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIRecord indicador mensual cargado manualmente (faturamento y costos del período).
type KPIRecord struct {
	ID            int64
	CompanyID     int64
	Period        PeriodKey
	GrossRevenue  decimal.Decimal
	Taxes         decimal.Decimal
	FixedCosts    decimal.Decimal
	VariableCosts decimal.Decimal
	Notes         string
	CreatedAt     time.Time
}
