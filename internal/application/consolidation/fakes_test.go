package consolidation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var errStoreDown = errors.New("store down")

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// store fuente en memoria que implementa todos los puertos de lectura.
type store struct {
	companies []*entity.Company
	accounts  []*entity.Account
	cashFlow  []*entity.CashFlowEntry
	taxes     []*entity.TaxObligation
	payroll   []*entity.PayrollRecord
	kpis      []*entity.KPIRecord
	banks     []*entity.BankAccount

	failAccountsFor map[int64]bool // simula error de lectura para la empresa
	failList        bool
	accountCalls    atomic.Int32
	listCalls       atomic.Int32
	kpiCalls        atomic.Int32
}

func (s *store) repos() Repositories {
	return Repositories{
		Companies: companyRepo{s},
		Accounts:  accountRepo{s},
		CashFlow:  cashFlowRepo{s},
		Taxes:     taxRepo{s},
		Payroll:   payrollRepo{s},
		KPIs:      kpiRepo{s},
	}
}

type companyRepo struct{ s *store }

func (r companyRepo) List(_ context.Context, status string) ([]*entity.Company, error) {
	r.s.listCalls.Add(1)
	if r.s.failList {
		return nil, errStoreDown
	}
	var out []*entity.Company
	for _, c := range r.s.companies {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r companyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	for _, c := range r.s.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

type accountRepo struct{ s *store }

func (r accountRepo) List(_ context.Context, f repository.AccountFilter) ([]*entity.Account, error) {
	r.s.accountCalls.Add(1)
	if f.CompanyID != nil && r.s.failAccountsFor[*f.CompanyID] {
		return nil, errStoreDown
	}
	var out []*entity.Account
	for _, a := range r.s.accounts {
		if f.CompanyID != nil && a.CompanyID != *f.CompanyID {
			continue
		}
		if (f.Type != "" && a.Type != f.Type) || (f.Status != "" && a.Status != f.Status) {
			continue
		}
		if inRange(a.DueDate, f.From, f.To) {
			out = append(out, a)
		}
	}
	return out, nil
}

type cashFlowRepo struct{ s *store }

func (r cashFlowRepo) List(_ context.Context, f repository.CashFlowFilter) ([]*entity.CashFlowEntry, error) {
	var out []*entity.CashFlowEntry
	for _, e := range r.s.cashFlow {
		if f.CompanyID != nil && e.CompanyID != *f.CompanyID {
			continue
		}
		if f.Direction != "" && e.Direction != f.Direction {
			continue
		}
		if inRange(e.Date, f.From, f.To) {
			out = append(out, e)
		}
	}
	return out, nil
}

type taxRepo struct{ s *store }

func (r taxRepo) List(_ context.Context, f repository.TaxFilter) ([]*entity.TaxObligation, error) {
	var out []*entity.TaxObligation
	for _, t := range r.s.taxes {
		if f.CompanyID != nil && t.CompanyID != *f.CompanyID {
			continue
		}
		if (f.Period != "" && t.Period != f.Period) || (f.Status != "" && t.Status != f.Status) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type payrollRepo struct{ s *store }

func (r payrollRepo) List(_ context.Context, f repository.PayrollFilter) ([]*entity.PayrollRecord, error) {
	var out []*entity.PayrollRecord
	for _, p := range r.s.payroll {
		if f.CompanyID != nil && p.CompanyID != *f.CompanyID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type kpiRepo struct{ s *store }

func (r kpiRepo) List(_ context.Context, companyID int64, period entity.PeriodKey) ([]*entity.KPIRecord, error) {
	r.s.kpiCalls.Add(1)
	var out []*entity.KPIRecord
	for _, k := range r.s.kpis {
		if k.CompanyID == companyID && k.Period == period {
			out = append(out, k)
		}
	}
	return out, nil
}

type bankRepo struct{ s *store }

func (r bankRepo) List(_ context.Context, companyID *int64) ([]*entity.BankAccount, error) {
	if r.s.failList {
		return nil, errStoreDown
	}
	var out []*entity.BankAccount
	for _, b := range r.s.banks {
		if companyID == nil || b.CompanyID == *companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

func openCompany(id int64, name string) *entity.Company {
	return &entity.Company{ID: id, TradeName: name, LegalName: name + " LTDA", CNPJ: "00.000.000/0001-00", Status: entity.CompanyStatusOpen}
}
