package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados laborales de un funcionario.
const (
	EmployeeStatusActive    = "Contratado"
	EmployeeStatusDismissed = "Demitido"
	EmployeeStatusLeave     = "Afastado"
	EmployeeStatusVacation  = "Ferias"
)

// PayrollRecord costo de nómina de un funcionario.
type PayrollRecord struct {
	ID           int64
	CompanyID    int64
	Name         string
	Role         string
	ContractType string // CLT, PJ, Estagiario, Temporario
	BaseSalary   decimal.Decimal
	Benefits     decimal.Decimal
	Status       string // ver constantes EmployeeStatus*
	HiredAt      *time.Time
	CreatedAt    time.Time
}

// MonthlyCost salario base más beneficios.
func (p *PayrollRecord) MonthlyCost() decimal.Decimal {
	return p.BaseSalary.Add(p.Benefits)
}
