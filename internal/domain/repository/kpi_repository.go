package repository

import (
	"context"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// KPIRepository indicadores mensuales cargados por empresa.
type KPIRepository interface {
	List(ctx context.Context, companyID int64, period entity.PeriodKey) ([]*entity.KPIRecord, error)
}
