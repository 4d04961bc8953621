package repository

import (
	"context"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// CompanyRepository puerto de lectura de empresas (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// List devuelve todas las empresas; status vacío = sin filtro.
	List(ctx context.Context, status string) ([]*entity.Company, error)
	// GetByID devuelve (nil, nil) si la empresa no existe.
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
}
