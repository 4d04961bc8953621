package repository

import (
	"context"
	"time"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// CashFlowFilter filtros opcionales para movimientos de caja (fechas inclusivas).
type CashFlowFilter struct {
	CompanyID *int64
	Direction string
	From      *time.Time
	To        *time.Time
}

// CashFlowRepository consultas de solo lectura sobre el flujo de caja.
type CashFlowRepository interface {
	List(ctx context.Context, f CashFlowFilter) ([]*entity.CashFlowEntry, error)
}
