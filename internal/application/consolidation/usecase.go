// Package consolidation contiene los casos de uso de consolidación financiera:
// resumen por empresa y mes, lote de todas las empresas abiertas y resumen del grupo.
package consolidation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/domain"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/cache"
)

// consolidateWorkers empresas consolidadas en paralelo dentro de ConsolidateAll.
const consolidateWorkers = 4

var hundred = decimal.NewFromInt(100)

// Repositories fuentes de lectura que alimentan la consolidación.
type Repositories struct {
	Companies repository.CompanyRepository
	Accounts  repository.AccountRepository
	CashFlow  repository.CashFlowRepository
	Taxes     repository.TaxRepository
	Payroll   repository.PayrollRepository
	KPIs      repository.KPIRepository
}

// UseCase calcula los resúmenes consolidados. No guarda estado mutable propio:
// lo único compartido entre llamadas es la caché, segura para acceso concurrente.
type UseCase struct {
	repos Repositories
	cache *cache.Service
	loc   *time.Location
	log   zerolog.Logger
	now   func() time.Time
}

// NewUseCase construye el caso de uso. cache puede ser nil (sin memoización).
// loc define los límites del mes; nil = UTC.
func NewUseCase(repos Repositories, c *cache.Service, loc *time.Location, log zerolog.Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{repos: repos, cache: c, loc: loc, log: log, now: time.Now}
}

// ConsolidateCompany devuelve el resumen de la empresa en el período (memoizado 15 min).
// Devuelve domain.ErrNotFound si la empresa no existe y domain.ErrInvalidInput si el período es inválido.
func (uc *UseCase) ConsolidateCompany(ctx context.Context, companyID int64, period entity.PeriodKey) (*dto.ConsolidatedSummaryDTO, error) {
	if _, err := entity.ParsePeriodKey(string(period)); err != nil {
		return nil, fmt.Errorf("consolidation.ConsolidateCompany: %v: %w", err, domain.ErrInvalidInput)
	}
	key := cache.Key("consolidado", companyID, period)
	summary, err := cache.GetOrSet(ctx, uc.cache, key, cache.TTLBalances, func(ctx context.Context) (*dto.ConsolidatedSummaryDTO, error) {
		return uc.compute(ctx, companyID, period)
	})
	if err != nil {
		return nil, fmt.Errorf("consolidation.ConsolidateCompany: %w", err)
	}
	return summary, nil
}

// compute hace las lecturas en paralelo y suma cada fuente por separado.
func (uc *UseCase) compute(ctx context.Context, companyID int64, period entity.PeriodKey) (*dto.ConsolidatedSummaryDTO, error) {
	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %d: %w", companyID, domain.ErrNotFound)
	}

	start, end, err := period.Bounds(uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	id := companyID

	// ── Lecturas independientes en paralelo ───────────────────────────────────
	type accountsResult struct {
		rows []*entity.Account
		err  error
	}
	type cashFlowResult struct {
		rows []*entity.CashFlowEntry
		err  error
	}
	type taxesResult struct {
		rows []*entity.TaxObligation
		err  error
	}
	type payrollResult struct {
		rows []*entity.PayrollRecord
		err  error
	}
	type kpisResult struct {
		rows []*entity.KPIRecord
		err  error
	}

	accCh := make(chan accountsResult, 1)
	cfCh := make(chan cashFlowResult, 1)
	taxCh := make(chan taxesResult, 1)
	payCh := make(chan payrollResult, 1)
	kpiCh := make(chan kpisResult, 1)

	go func() {
		rows, err := uc.repos.Accounts.List(ctx, repository.AccountFilter{CompanyID: &id, From: &start, To: &end})
		accCh <- accountsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repos.CashFlow.List(ctx, repository.CashFlowFilter{CompanyID: &id, From: &start, To: &end})
		cfCh <- cashFlowResult{rows, err}
	}()
	go func() {
		rows, err := uc.repos.Taxes.List(ctx, repository.TaxFilter{CompanyID: &id, Period: period})
		taxCh <- taxesResult{rows, err}
	}()
	go func() {
		rows, err := uc.repos.Payroll.List(ctx, repository.PayrollFilter{CompanyID: &id, Status: entity.EmployeeStatusActive})
		payCh <- payrollResult{rows, err}
	}()
	go func() {
		rows, err := uc.indicators(ctx, id, period)
		kpiCh <- kpisResult{rows, err}
	}()

	accs, cfs, taxes, payroll, kpis := <-accCh, <-cfCh, <-taxCh, <-payCh, <-kpiCh
	if err := errors.Join(accs.err, cfs.err, taxes.err, payroll.err, kpis.err); err != nil {
		return nil, err
	}

	s := &dto.ConsolidatedSummaryDTO{
		CompanyID:   company.ID,
		CompanyName: company.DisplayName(""),
		CNPJ:        company.CNPJ,
		Period:      period.String(),
	}

	// ── Entradas ──────────────────────────────────────────────────────────────
	for _, a := range accs.rows {
		if !withinDays(a.DueDate, start, end) {
			continue
		}
		switch a.Type {
		case entity.AccountTypeReceivable:
			s.Receivables = s.Receivables.Add(a.Amount)
			s.Counts.Receivables++
			if a.Status == entity.AccountStatusReceived {
				s.ReceivablesReceived = s.ReceivablesReceived.Add(a.Amount)
			}
		case entity.AccountTypePayable:
			s.Payables = s.Payables.Add(a.Amount)
			s.Counts.Payables++
			if a.Status == entity.AccountStatusPaid {
				s.PayablesPaid = s.PayablesPaid.Add(a.Amount)
			}
		}
	}
	for _, f := range cfs.rows {
		if !withinDays(f.Date, start, end) {
			continue
		}
		switch f.Direction {
		case entity.CashFlowIn:
			s.CashInflows = s.CashInflows.Add(f.Amount)
		case entity.CashFlowOut:
			s.CashOutflows = s.CashOutflows.Add(f.Amount)
		}
	}
	for _, k := range kpis.rows {
		s.GrossRevenue = s.GrossRevenue.Add(k.GrossRevenue)
		s.FixedCosts = s.FixedCosts.Add(k.FixedCosts)
		s.VariableCosts = s.VariableCosts.Add(k.VariableCosts)
	}

	// ── Salidas calculadas ───────────────────────────────────────────────────
	for _, t := range taxes.rows {
		if t.Period != period {
			continue
		}
		s.Taxes = s.Taxes.Add(t.TaxAmount())
		s.Counts.Taxes++
	}
	for _, p := range payroll.rows {
		if p.Status != entity.EmployeeStatusActive {
			continue
		}
		s.Payroll = s.Payroll.Add(p.MonthlyCost())
		s.Counts.Employees++
	}

	s.TotalInflows = s.Receivables.Add(s.CashInflows).Add(s.GrossRevenue)
	s.TotalOutflows = s.Payables.Add(s.CashOutflows).Add(s.FixedCosts).Add(s.VariableCosts).Add(s.Taxes).Add(s.Payroll)
	s.NetBalance, s.MarginPercent, s.Status = result(s.TotalInflows, s.TotalOutflows)
	return s, nil
}

// indicators lee los KPIs del mes (memoizados 30 min, independientes del resumen).
func (uc *UseCase) indicators(ctx context.Context, companyID int64, period entity.PeriodKey) ([]*entity.KPIRecord, error) {
	return cache.GetOrSet(ctx, uc.cache, cache.Key("kpis", companyID, period), cache.TTLIndicators, func(ctx context.Context) ([]*entity.KPIRecord, error) {
		return uc.repos.KPIs.List(ctx, companyID, period)
	})
}

// openCompanies lista las empresas abiertas (memoizada 1 h).
func (uc *UseCase) openCompanies(ctx context.Context) ([]*entity.Company, error) {
	return cache.GetOrSet(ctx, uc.cache, cache.Key("empresas", entity.CompanyStatusOpen), cache.TTLCompanies, func(ctx context.Context) ([]*entity.Company, error) {
		return uc.repos.Companies.List(ctx, entity.CompanyStatusOpen)
	})
}

// result aplica las reglas de saldo, margen y estado.
func result(inflows, outflows decimal.Decimal) (net, margin decimal.Decimal, status string) {
	net = inflows.Sub(outflows)
	if inflows.IsPositive() {
		margin = net.Div(inflows).Mul(hundred)
	}
	switch net.Sign() {
	case 1:
		status = dto.StatusProfit
	case -1:
		status = dto.StatusLoss
	default:
		status = dto.StatusBreakEven
	}
	return net, margin, status
}

// withinDays compara por día calendario (ambos extremos inclusivos).
func withinDays(t, start, end time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, start.Location())
	return !d.Before(start) && !d.After(end)
}

// ConsolidateAll consolida todas las empresas abiertas. Una empresa que falla se registra en el
// log y en la lista de ignoradas; el resto del lote no se ve afectado. El orden de la salida
// respeta el orden del listado de empresas. Solo falla si no se pueden listar las empresas.
func (uc *UseCase) ConsolidateAll(ctx context.Context, period entity.PeriodKey) ([]dto.ConsolidatedSummaryDTO, []dto.SkippedCompanyDTO, error) {
	if _, err := entity.ParsePeriodKey(string(period)); err != nil {
		return nil, nil, fmt.Errorf("consolidation.ConsolidateAll: %v: %w", err, domain.ErrInvalidInput)
	}
	companies, err := uc.openCompanies(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("consolidation.ConsolidateAll: %w", err)
	}

	type outcome struct {
		summary *dto.ConsolidatedSummaryDTO
		err     error
	}
	outcomes := make([]outcome, len(companies))
	sem := make(chan struct{}, consolidateWorkers)
	var wg sync.WaitGroup
	for i, c := range companies {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, companyID int64) {
			defer wg.Done()
			defer func() { <-sem }()
			s, err := uc.ConsolidateCompany(ctx, companyID, period)
			outcomes[i] = outcome{summary: s, err: err}
		}(i, c.ID)
	}
	wg.Wait()

	summaries := make([]dto.ConsolidatedSummaryDTO, 0, len(companies))
	var skipped []dto.SkippedCompanyDTO
	for i, o := range outcomes {
		if o.err != nil {
			uc.log.Warn().Err(o.err).
				Int64("empresa_id", companies[i].ID).
				Str("periodo", period.String()).
				Msg("empresa ignorada en la consolidación")
			skipped = append(skipped, dto.SkippedCompanyDTO{CompanyID: companies[i].ID, Reason: o.err.Error()})
			continue
		}
		summaries = append(summaries, *o.summary)
	}
	return summaries, skipped, nil
}

// SummarizeGroup agrega el lote de ConsolidateAll en el resumen del grupo.
func (uc *UseCase) SummarizeGroup(ctx context.Context, period entity.PeriodKey) (*dto.GroupSummaryDTO, error) {
	summaries, skipped, err := uc.ConsolidateAll(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("consolidation.SummarizeGroup: %w", err)
	}

	g := &dto.GroupSummaryDTO{
		Period:         period.String(),
		TotalCompanies: len(summaries),
		Skipped:        skipped,
		Companies:      summaries,
		GeneratedAt:    uc.now().In(uc.loc),
	}
	if g.Skipped == nil {
		g.Skipped = []dto.SkippedCompanyDTO{}
	}
	for _, s := range summaries {
		g.TotalInflows = g.TotalInflows.Add(s.TotalInflows)
		g.TotalOutflows = g.TotalOutflows.Add(s.TotalOutflows)
		switch s.Status {
		case dto.StatusProfit:
			g.ProfitCount++
		case dto.StatusLoss:
			g.LossCount++
		default:
			g.BreakEvenCount++
		}
	}
	g.NetBalance, g.MarginPercent, _ = result(g.TotalInflows, g.TotalOutflows)
	return g, nil
}
