package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	base
}

// NewCompanyRepository construye el adaptador de lectura de empresas.
func NewCompanyRepository(q Querier, timeout time.Duration) *CompanyRepo {
	return &CompanyRepo{base{q: q, timeout: timeout}}
}

const companyColumns = `id, legal_name, trade_name, cnpj, city, state, status, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*entity.Company, error) {
	var c entity.Company
	var trade, city, state *string
	if err := row.Scan(&c.ID, &c.LegalName, &trade, &c.CNPJ, &city, &state, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.TradeName, c.City, c.State = strOrEmpty(trade), strOrEmpty(city), strOrEmpty(state)
	return &c, nil
}

// List devuelve las empresas ordenadas por id; status vacío = todas.
func (r *CompanyRepo) List(ctx context.Context, status string) ([]*entity.Company, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var w whereBuilder
	if status != "" {
		w.add("status = $%d", status)
	}
	rows, err := r.q.Query(ctx, `SELECT `+companyColumns+` FROM companies`+w.sql()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, mapError("list companies", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, mapError("scan company", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list companies", err)
	}
	return list, nil
}

// GetByID obtiene una empresa por ID. (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapError("get company", err)
	}
	return c, nil
}
