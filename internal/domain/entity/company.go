package entity

import "time"

// Estados del ciclo de vida de una empresa del grupo.
const (
	CompanyStatusOpen      = "Aberto"
	CompanyStatusClosed    = "Fechado"
	CompanyStatusSuspended = "Suspenso"
)

// Company representa una empresa del grupo económico (multi-empresa, enfoque Brasil).
type Company struct {
	ID        int64
	LegalName string // razão social
	TradeName string // nome fantasia
	CNPJ      string // identificador fiscal (con o sin máscara)
	City      string
	State     string
	Status    string // ver constantes CompanyStatus*
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName devuelve el nombre fantasía, la razón social o el fallback indicado.
func (c *Company) DisplayName(fallback string) string {
	if c == nil {
		return fallback
	}
	if c.TradeName != "" {
		return c.TradeName
	}
	if c.LegalName != "" {
		return c.LegalName
	}
	return fallback
}

// IsOpen informa si la empresa está operando.
func (c *Company) IsOpen() bool {
	return c != nil && c.Status == CompanyStatusOpen
}
