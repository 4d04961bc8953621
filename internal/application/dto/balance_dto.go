package dto

import "github.com/shopspring/decimal"

// CompanyBalanceDTO saldo bancario de una empresa (solo cuentas activas).
type CompanyBalanceDTO struct {
	CompanyID    int64           `json:"empresa_id"`
	TotalBalance decimal.Decimal `json:"saldo_total"`
	AccountCount int             `json:"quantidade_contas"`
}

// OverallBalanceDTO saldo bancario del grupo.
type OverallBalanceDTO struct {
	TotalBalance decimal.Decimal `json:"saldo_total"`
	AccountCount int             `json:"quantidade_contas"`
	CompanyCount int             `json:"quantidade_empresas"`
}

// BalanceVariationDTO variación del saldo actual frente al anterior.
// La mensual es una proyección lineal de la diaria (x30).
type BalanceVariationDTO struct {
	CurrentTotal     decimal.Decimal `json:"saldo_atual"`
	PreviousTotal    decimal.Decimal `json:"saldo_anterior"`
	DailyVariation   decimal.Decimal `json:"variacao_diaria"`
	DailyPercent     decimal.Decimal `json:"percentual_diario"`
	MonthlyVariation decimal.Decimal `json:"variacao_mensal"`
	MonthlyPercent   decimal.Decimal `json:"percentual_mensal"`
}
