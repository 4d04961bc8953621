package dto

import "time"

// CheckResultDTO resultado de una fase de verificación automática.
type CheckResultDTO struct {
	Checked       int      `json:"verificados"`
	AlertsCreated int      `json:"alertas_gerados"`
	Errors        []string `json:"erros"`
}

// FullCheckResultDTO resultado de RunFullCheck (POST /api/alertas/verificar).
type FullCheckResultDTO struct {
	AccountsChecked int      `json:"contas_verificadas"`
	TaxesChecked    int      `json:"impostos_verificados"`
	AlertsCreated   int      `json:"alertas_gerados"`
	Errors          []string `json:"erros"`
	DurationMs      int64    `json:"duracao_ms"`
}

// AlertDTO alerta expuesta por la API.
type AlertDTO struct {
	ID         string    `json:"id"`
	Type       string    `json:"tipo"`
	Severity   string    `json:"severidade"`
	Title      string    `json:"titulo"`
	Message    string    `json:"mensagem"`
	EntityType string    `json:"entidade_tipo,omitempty"`
	EntityID   *int64    `json:"entidade_id,omitempty"`
	Read       bool      `json:"lido"`
	CreatedAt  time.Time `json:"criado_em"`
}

// MarkReadRequest cuerpo de PATCH /api/alertas/:id/lido.
type MarkReadRequest struct {
	Read *bool `json:"lido"`
}
