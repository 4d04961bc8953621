package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationItemDTO movimiento (o cuenta bancaria) dentro de la vista de conciliación.
// BankBalance y BookBalance son los totales de la empresa, repetidos en cada ítem.
type ReconciliationItemDTO struct {
	ID          string          `json:"id"` // banco-N | pagar-N | receber-N
	Date        time.Time       `json:"data"`
	Type        string          `json:"tipo"` // Bancário | Conta a Pagar | Conta a Receber
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"` // negativo para cuentas a pagar
	BankBalance decimal.Decimal `json:"saldo_bancario"`
	BookBalance decimal.Decimal `json:"saldo_contabil"`
	Discrepancy decimal.Decimal `json:"discrepancia"` // BankBalance - BookBalance
	Status      string          `json:"status"`       // Reconciliado | Pendente
	CompanyID   int64           `json:"empresa_id"`
	CompanyName string          `json:"empresa_nome"`
	MarkedAt    *time.Time      `json:"marcado_em,omitempty"`
}

// ReconciliationSummaryDTO agregado de la conciliación de una empresa.
type ReconciliationSummaryDTO struct {
	TotalBankBalance  decimal.Decimal `json:"total_saldo_bancario"`
	TotalBookBalance  decimal.Decimal `json:"total_saldo_contabil"`
	TotalDiscrepancy  decimal.Decimal `json:"total_discrepancia"` // |banco - contable|
	ReconciledItems   int             `json:"itens_reconciliados"`
	PendingItems      int             `json:"itens_pendentes"`
	ReconciledPercent decimal.Decimal `json:"percentual_reconciliacao"` // [0, 100]
}

// ReconciliationQuery parámetros de GET /api/reconciliacao/:empresaId.
type ReconciliationQuery struct {
	From string `query:"inicio"` // YYYY-MM-DD
	To   string `query:"fim"`    // YYYY-MM-DD
}
