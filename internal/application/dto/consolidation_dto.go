package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de resultado de una consolidación.
const (
	StatusProfit    = "Lucro"
	StatusLoss      = "Prejuizo"
	StatusBreakEven = "Equilibrio"
)

// ConsolidatedSummaryDTO resumen financiero de una empresa en un mes (GET /api/consolidacao/:periodo/empresas/:id).
// Invariantes: NetBalance = TotalInflows - TotalOutflows; MarginPercent = NetBalance / TotalInflows * 100 (0 sin entradas).
type ConsolidatedSummaryDTO struct {
	CompanyID   int64  `json:"empresa_id"`
	CompanyName string `json:"empresa_nome"`
	CNPJ        string `json:"cnpj"`
	Period      string `json:"periodo"` // YYYY-MM

	// Entradas
	Receivables         decimal.Decimal `json:"contas_receber"`           // vencen dentro del mes
	ReceivablesReceived decimal.Decimal `json:"contas_receber_recebidas"` // subconjunto ya cobrado
	CashInflows         decimal.Decimal `json:"fluxo_entradas"`
	GrossRevenue        decimal.Decimal `json:"faturamento_bruto"` // KPIs del mes
	TotalInflows        decimal.Decimal `json:"total_entradas"`

	// Salidas
	Payables      decimal.Decimal `json:"contas_pagar"`
	PayablesPaid  decimal.Decimal `json:"contas_pagar_pagas"`
	CashOutflows  decimal.Decimal `json:"fluxo_saidas"`
	FixedCosts    decimal.Decimal `json:"custos_fixos"`
	VariableCosts decimal.Decimal `json:"custos_variaveis"`
	Taxes         decimal.Decimal `json:"impostos"`           // base * alícuota / 100
	Payroll       decimal.Decimal `json:"custo_funcionarios"` // salario + beneficios, solo contratados
	TotalOutflows decimal.Decimal `json:"total_saidas"`

	// Resultado
	NetBalance    decimal.Decimal `json:"saldo_liquido"`
	Status        string          `json:"status"` // Lucro | Prejuizo | Equilibrio
	MarginPercent decimal.Decimal `json:"margem_percentual"`

	Counts ConsolidationCountsDTO `json:"quantidades"`
}

// ConsolidationCountsDTO cantidades de registros que entraron en la consolidación (drill-down).
type ConsolidationCountsDTO struct {
	Receivables int `json:"contas_receber"`
	Payables    int `json:"contas_pagar"`
	Employees   int `json:"funcionarios"`
	Taxes       int `json:"impostos"`
}

// SkippedCompanyDTO empresa excluida de un lote por error.
type SkippedCompanyDTO struct {
	CompanyID int64  `json:"empresa_id"`
	Reason    string `json:"motivo"`
}

// GroupSummaryDTO resumen del grupo (GET /api/consolidacao/:periodo).
type GroupSummaryDTO struct {
	Period         string                   `json:"periodo"`
	TotalCompanies int                      `json:"total_empresas"`
	TotalInflows   decimal.Decimal          `json:"total_entradas"`
	TotalOutflows  decimal.Decimal          `json:"total_saidas"`
	NetBalance     decimal.Decimal          `json:"saldo_total"`
	MarginPercent  decimal.Decimal          `json:"margem_geral"`
	ProfitCount    int                      `json:"empresas_com_lucro"`
	LossCount      int                      `json:"empresas_com_prejuizo"`
	BreakEvenCount int                      `json:"empresas_em_equilibrio"`
	Skipped        []SkippedCompanyDTO      `json:"empresas_ignoradas"`
	Companies      []ConsolidatedSummaryDTO `json:"detalhes_por_empresa"`
	GeneratedAt    time.Time                `json:"gerado_em"`
}
