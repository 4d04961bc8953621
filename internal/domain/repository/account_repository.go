package repository

import (
	"context"
	"time"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// AccountFilter filtros opcionales para cuentas a pagar/recibir.
// Campos en cero no filtran. From/To se comparan contra el vencimiento, ambos inclusivos.
type AccountFilter struct {
	CompanyID *int64
	Type      string
	Status    string
	From      *time.Time
	To        *time.Time
}

// AccountRepository consultas de solo lectura sobre cuentas a pagar y a recibir.
type AccountRepository interface {
	List(ctx context.Context, f AccountFilter) ([]*entity.Account, error)
}
