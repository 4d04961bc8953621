package repository

import (
	"context"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// PayrollFilter filtros opcionales para la nómina. Sin filtro de fecha: el costo es mensual.
type PayrollFilter struct {
	CompanyID *int64
	Status    string
}

// PayrollRepository consultas de solo lectura sobre funcionarios.
type PayrollRepository interface {
	List(ctx context.Context, f PayrollFilter) ([]*entity.PayrollRecord, error)
}
