package consolidation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/domain"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/cache"
)

const marzo = entity.PeriodKey("2024-03")

func newUseCase(s *store, c *cache.Service) *UseCase {
	return NewUseCase(s.repos(), c, time.UTC, zerolog.Nop())
}

func assertInvariants(t *testing.T, s *dto.ConsolidatedSummaryDTO) {
	t.Helper()
	assert.True(t, s.NetBalance.Equal(s.TotalInflows.Sub(s.TotalOutflows)), "saldo = entradas - salidas")
	if s.TotalInflows.IsPositive() {
		assert.True(t, s.MarginPercent.Equal(s.NetBalance.Div(s.TotalInflows).Mul(hundred)))
	} else {
		assert.True(t, s.MarginPercent.IsZero())
	}
	switch {
	case s.NetBalance.IsPositive():
		assert.Equal(t, dto.StatusProfit, s.Status)
	case s.NetBalance.IsNegative():
		assert.Equal(t, dto.StatusLoss, s.Status)
	default:
		assert.Equal(t, dto.StatusBreakEven, s.Status)
	}
}

func TestConsolidateCompany_CuentaAPagarVencidaDaPrejuizo(t *testing.T) {
	s := &store{
		companies: []*entity.Company{openCompany(1, "Alfa")},
		accounts: []*entity.Account{
			{ID: 10, CompanyID: 1, Type: entity.AccountTypePayable, Description: "Aluguel", Amount: dec("15000"), DueDate: day(2024, 3, 10), Status: entity.AccountStatusPending},
		},
	}
	got, err := newUseCase(s, nil).ConsolidateCompany(context.Background(), 1, marzo)
	require.NoError(t, err)

	assertDec(t, "15000", got.Payables)
	assert.True(t, got.TotalOutflows.GreaterThanOrEqual(dec("15000")))
	assert.True(t, got.TotalInflows.IsZero())
	assert.Equal(t, dto.StatusLoss, got.Status)
	assert.True(t, got.MarginPercent.IsZero())
	assert.Equal(t, 1, got.Counts.Payables)
	assertInvariants(t, got)
}

func TestConsolidateCompany_ImpuestoSumaBasePorAlicuota(t *testing.T) {
	s := &store{
		companies: []*entity.Company{openCompany(1, "Alfa")},
		taxes: []*entity.TaxObligation{
			{ID: 1, CompanyID: 1, TaxType: "IRPJ", Period: marzo, BaseAmount: dec("100000"), Rate: dec("15"), DueDate: day(2024, 3, 20), Status: entity.TaxStatusPending},
			{ID: 2, CompanyID: 1, TaxType: "ISS", Period: "2024-02", BaseAmount: dec("50000"), Rate: dec("5"), DueDate: day(2024, 2, 20), Status: entity.TaxStatusPending},
		},
	}
	got, err := newUseCase(s, nil).ConsolidateCompany(context.Background(), 1, marzo)
	require.NoError(t, err)

	assertDec(t, "15000", got.Taxes)
	assert.Equal(t, 1, got.Counts.Taxes)
	assertInvariants(t, got)
}

func TestConsolidateCompany_TodasLasFuentes(t *testing.T) {
	hired := day(2023, 1, 2)
	s := &store{
		companies: []*entity.Company{openCompany(1, "Alfa")},
		accounts: []*entity.Account{
			{ID: 1, CompanyID: 1, Type: entity.AccountTypeReceivable, Amount: dec("10000"), DueDate: day(2024, 3, 1), Status: entity.AccountStatusReceived},
			{ID: 2, CompanyID: 1, Type: entity.AccountTypeReceivable, Amount: dec("2500.50"), DueDate: day(2024, 3, 31), Status: entity.AccountStatusPending},
			{ID: 3, CompanyID: 1, Type: entity.AccountTypeReceivable, Amount: dec("999"), DueDate: day(2024, 4, 1), Status: entity.AccountStatusPending}, // fuera del mes
			{ID: 4, CompanyID: 1, Type: entity.AccountTypePayable, Amount: dec("3000"), DueDate: day(2024, 3, 15), Status: entity.AccountStatusPaid},
			{ID: 5, CompanyID: 2, Type: entity.AccountTypePayable, Amount: dec("7777"), DueDate: day(2024, 3, 15), Status: entity.AccountStatusPending}, // otra empresa
		},
		cashFlow: []*entity.CashFlowEntry{
			{ID: 1, CompanyID: 1, Date: day(2024, 3, 5), Direction: entity.CashFlowIn, Amount: dec("1200")},
			{ID: 2, CompanyID: 1, Date: day(2024, 3, 6), Direction: entity.CashFlowOut, Amount: dec("200")},
		},
		kpis: []*entity.KPIRecord{
			{ID: 1, CompanyID: 1, Period: marzo, GrossRevenue: dec("5000"), FixedCosts: dec("1000"), VariableCosts: dec("500")},
		},
		payroll: []*entity.PayrollRecord{
			{ID: 1, CompanyID: 1, BaseSalary: dec("3000"), Benefits: dec("600"), Status: entity.EmployeeStatusActive, HiredAt: &hired},
			{ID: 2, CompanyID: 1, BaseSalary: dec("9000"), Benefits: dec("900"), Status: entity.EmployeeStatusDismissed},
		},
	}
	got, err := newUseCase(s, nil).ConsolidateCompany(context.Background(), 1, marzo)
	require.NoError(t, err)

	assert.Equal(t, "Alfa", got.CompanyName)
	assert.Equal(t, "2024-03", got.Period)

	assertDec(t, "12500.50", got.Receivables)
	assertDec(t, "10000", got.ReceivablesReceived)
	assertDec(t, "1200", got.CashInflows)
	assertDec(t, "5000", got.GrossRevenue)
	assertDec(t, "18700.50", got.TotalInflows)

	assertDec(t, "3000", got.Payables)
	assertDec(t, "3000", got.PayablesPaid)
	assertDec(t, "200", got.CashOutflows)
	assertDec(t, "1000", got.FixedCosts)
	assertDec(t, "500", got.VariableCosts)
	assertDec(t, "3600", got.Payroll)
	assertDec(t, "8300", got.TotalOutflows)

	assertDec(t, "10400.50", got.NetBalance)
	assert.Equal(t, dto.StatusProfit, got.Status)
	assert.Equal(t, dto.ConsolidationCountsDTO{Receivables: 2, Payables: 1, Employees: 1, Taxes: 0}, got.Counts)
	assertInvariants(t, got)
}

func TestConsolidateCompany_SinActividadEsEquilibrio(t *testing.T) {
	s := &store{companies: []*entity.Company{openCompany(1, "Alfa")}}
	got, err := newUseCase(s, nil).ConsolidateCompany(context.Background(), 1, marzo)
	require.NoError(t, err)

	assert.True(t, got.TotalInflows.IsZero())
	assert.True(t, got.TotalOutflows.IsZero())
	assert.True(t, got.NetBalance.IsZero())
	assert.True(t, got.MarginPercent.IsZero())
	assert.Equal(t, dto.StatusBreakEven, got.Status)
}

func TestConsolidateCompany_EmpresaInexistente(t *testing.T) {
	_, err := newUseCase(&store{}, nil).ConsolidateCompany(context.Background(), 99, marzo)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsolidateCompany_PeriodoInvalido(t *testing.T) {
	s := &store{companies: []*entity.Company{openCompany(1, "Alfa")}}
	_, err := newUseCase(s, nil).ConsolidateCompany(context.Background(), 1, "2024-13")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsolidateCompany_ErrorDeLecturaSePropaga(t *testing.T) {
	s := &store{
		companies:       []*entity.Company{openCompany(1, "Alfa")},
		failAccountsFor: map[int64]bool{1: true},
	}
	_, err := newUseCase(s, nil).ConsolidateCompany(context.Background(), 1, marzo)
	assert.True(t, errors.Is(err, errStoreDown))
}

func TestConsolidateCompany_Idempotente(t *testing.T) {
	s := &store{
		companies: []*entity.Company{openCompany(1, "Alfa")},
		accounts: []*entity.Account{
			{ID: 1, CompanyID: 1, Type: entity.AccountTypeReceivable, Amount: dec("3333.33"), DueDate: day(2024, 3, 1), Status: entity.AccountStatusPending},
			{ID: 2, CompanyID: 1, Type: entity.AccountTypePayable, Amount: dec("1000"), DueDate: day(2024, 3, 2), Status: entity.AccountStatusPending},
		},
	}
	uc := newUseCase(s, nil)
	a, err := uc.ConsolidateCompany(context.Background(), 1, marzo)
	require.NoError(t, err)
	b, err := uc.ConsolidateCompany(context.Background(), 1, marzo)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assertInvariants(t, a)
}

func TestConsolidateCompany_UsaCache(t *testing.T) {
	s := &store{companies: []*entity.Company{openCompany(1, "Alfa")}}
	c := cache.NewService(cache.NewMemoryBackend(), time.Hour, zerolog.Nop())
	uc := newUseCase(s, c)

	_, err := uc.ConsolidateCompany(context.Background(), 1, marzo)
	require.NoError(t, err)
	_, err = uc.ConsolidateCompany(context.Background(), 1, marzo)
	require.NoError(t, err)

	assert.Equal(t, int32(1), s.accountCalls.Load(), "la segunda llamada se sirve desde caché")
}

func TestConsolidateAll_CacheaListaDeEmpresas(t *testing.T) {
	s := &store{companies: []*entity.Company{openCompany(1, "Alfa"), openCompany(2, "Beta")}}
	c := cache.NewService(cache.NewMemoryBackend(), time.Hour, zerolog.Nop())
	uc := newUseCase(s, c)

	for i := 0; i < 2; i++ {
		summaries, _, err := uc.ConsolidateAll(context.Background(), marzo)
		require.NoError(t, err)
		assert.Len(t, summaries, 2)
	}
	assert.Equal(t, int32(1), s.listCalls.Load())

	var cached []*entity.Company
	require.True(t, c.Get(context.Background(), cache.Key("empresas", entity.CompanyStatusOpen), &cached))
	assert.Len(t, cached, 2)
}

func TestConsolidateCompany_KPIsConTTLPropio(t *testing.T) {
	s := &store{
		companies: []*entity.Company{openCompany(1, "Alfa")},
		kpis:      []*entity.KPIRecord{{ID: 1, CompanyID: 1, Period: marzo, GrossRevenue: dec("5000")}},
	}
	c := cache.NewService(cache.NewMemoryBackend(), time.Hour, zerolog.Nop())
	uc := newUseCase(s, c)
	ctx := context.Background()

	_, err := uc.ConsolidateCompany(ctx, 1, marzo)
	require.NoError(t, err)
	c.Delete(ctx, cache.Key("consolidado", int64(1), marzo))

	got, err := uc.ConsolidateCompany(ctx, 1, marzo)
	require.NoError(t, err)

	assertDec(t, "5000", got.GrossRevenue)
	assert.Equal(t, int32(2), s.accountCalls.Load(), "el resumen se recalcula")
	assert.Equal(t, int32(1), s.kpiCalls.Load(), "los KPIs siguen en caché")
}

func TestConsolidateAll_IgnoraEmpresaConError(t *testing.T) {
	s := &store{
		companies: []*entity.Company{
			openCompany(1, "Alfa"),
			openCompany(2, "Beta"),
			openCompany(3, "Gama"),
			{ID: 4, TradeName: "Cerrada", Status: entity.CompanyStatusClosed},
		},
		failAccountsFor: map[int64]bool{2: true},
	}
	summaries, skipped, err := newUseCase(s, nil).ConsolidateAll(context.Background(), marzo)
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, int64(1), summaries[0].CompanyID)
	assert.Equal(t, int64(3), summaries[1].CompanyID)
	require.Len(t, skipped, 1)
	assert.Equal(t, int64(2), skipped[0].CompanyID)
	assert.NotEmpty(t, skipped[0].Reason)
}

func TestConsolidateAll_FallaAlListarEmpresas(t *testing.T) {
	_, _, err := newUseCase(&store{failList: true}, nil).ConsolidateAll(context.Background(), marzo)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestSummarizeGroup_Agrega(t *testing.T) {
	s := &store{
		companies: []*entity.Company{openCompany(1, "Alfa"), openCompany(2, "Beta"), openCompany(3, "Gama")},
		accounts: []*entity.Account{
			{ID: 1, CompanyID: 1, Type: entity.AccountTypeReceivable, Amount: dec("1000"), DueDate: day(2024, 3, 1)},
			{ID: 2, CompanyID: 2, Type: entity.AccountTypePayable, Amount: dec("400"), DueDate: day(2024, 3, 1)},
		},
	}
	uc := newUseCase(s, nil)
	uc.now = func() time.Time { return day(2024, 3, 31) }

	g, err := uc.SummarizeGroup(context.Background(), marzo)
	require.NoError(t, err)

	assert.Equal(t, 3, g.TotalCompanies)
	assertDec(t, "1000", g.TotalInflows)
	assertDec(t, "400", g.TotalOutflows)
	assertDec(t, "600", g.NetBalance)
	assertDec(t, "60", g.MarginPercent)
	assert.Equal(t, 1, g.ProfitCount)
	assert.Equal(t, 1, g.LossCount)
	assert.Equal(t, 1, g.BreakEvenCount)
	assert.Empty(t, g.Skipped)
	assert.Equal(t, day(2024, 3, 31), g.GeneratedAt)
}
