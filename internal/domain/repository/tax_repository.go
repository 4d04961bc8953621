package repository

import (
	"context"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// TaxFilter filtros opcionales para obligaciones tributarias.
type TaxFilter struct {
	CompanyID *int64
	Period    entity.PeriodKey
	Status    string
}

// TaxRepository consultas de solo lectura sobre impuestos.
type TaxRepository interface {
	List(ctx context.Context, f TaxFilter) ([]*entity.TaxObligation, error)
}
