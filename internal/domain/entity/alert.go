package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeDueDate        = "Vencimento"
	AlertTypeNegativeMargin = "MargemNegativa"
	AlertTypeLowBalance     = "SaldoBaixo"
	AlertTypeNewRecord      = "NovoRegistro"
)

// Severidades de alerta.
const (
	SeverityInfo     = "Info"
	SeverityWarning  = "Aviso"
	SeverityCritical = "Critico"
)

// Tipos de entidad referenciada por una alerta.
const (
	EntityAccount     = "Conta"
	EntityTax         = "Imposto"
	EntityBankAccount = "ContaBancaria"
	EntityCompany     = "Empresa"
	EntityKPI         = "KPI"
)

// Alert notificación persistida. Solo cambia por el flag de lectura; nunca se borra automáticamente.
type Alert struct {
	ID         string
	Type       string // ver constantes AlertType*
	Severity   string // ver constantes Severity*
	Title      string
	Message    string
	EntityType string // vacío si no referencia entidad
	EntityID   *int64
	Read       bool
	CreatedAt  time.Time
}

// RefersTo informa si la alerta referencia exactamente la entidad (tipo + id).
func (a *Alert) RefersTo(entityType string, entityID int64) bool {
	return a.EntityType == entityType && a.EntityID != nil && *a.EntityID == entityID
}
