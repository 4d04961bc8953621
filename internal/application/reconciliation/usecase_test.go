package reconciliation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/ports"
	"github.com/jhoicas/painel-financeiro/internal/domain"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

type fakeCompanies struct{ list []*entity.Company }

func (f fakeCompanies) List(context.Context, string) ([]*entity.Company, error) { return f.list, nil }
func (f fakeCompanies) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	for _, c := range f.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

type fakeBanks struct {
	list []*entity.BankAccount
	err  error
}

func (f fakeBanks) List(_ context.Context, companyID *int64) ([]*entity.BankAccount, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.BankAccount
	for _, b := range f.list {
		if companyID == nil || b.CompanyID == *companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeAccounts struct{ list []*entity.Account }

func (f fakeAccounts) List(_ context.Context, flt repository.AccountFilter) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range f.list {
		if flt.CompanyID != nil && a.CompanyID != *flt.CompanyID {
			continue
		}
		if flt.From != nil && a.DueDate.Before(*flt.From) {
			continue
		}
		if flt.To != nil && a.DueDate.After(*flt.To) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeMarks struct {
	mu    sync.Mutex
	marks map[string]time.Time
}

func (f *fakeMarks) Mark(_ context.Context, m *repository.ReconciliationMark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.marks == nil {
		f.marks = map[string]time.Time{}
	}
	if _, ok := f.marks[m.ItemID]; !ok {
		f.marks[m.ItemID] = m.MarkedAt
	}
	return nil
}

func (f *fakeMarks) ListMarks(_ context.Context, ids []string) (map[string]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]time.Time{}
	for _, id := range ids {
		if at, ok := f.marks[id]; ok {
			out[id] = at
		}
	}
	return out, nil
}

type recordingNotifier struct{ events []ports.Event }

func (r *recordingNotifier) Publish(ev ports.Event) { r.events = append(r.events, ev) }

var alfa = &entity.Company{ID: 1, TradeName: "Alfa", Status: entity.CompanyStatusOpen}

func newUseCase(banks []*entity.BankAccount, accounts []*entity.Account, marks *fakeMarks, n ports.Notifier) *UseCase {
	var m repository.ReconciliationRepository
	if marks != nil {
		m = marks
	}
	uc := NewUseCase(fakeCompanies{[]*entity.Company{alfa}}, fakeBanks{list: banks}, fakeAccounts{accounts}, m, nil, n, zerolog.Nop())
	uc.now = func() time.Time { return day(2024, 3, 31) }
	return uc
}

func TestGetReconciliationItems_CuentaRecibidaConciliada(t *testing.T) {
	uc := newUseCase(
		[]*entity.BankAccount{{ID: 7, CompanyID: 1, Name: "Conta Movimento", Bank: "Itaú", CurrentBalance: dec("5000"), Status: entity.BankAccountActive, CreatedAt: day(2024, 1, 1)}},
		[]*entity.Account{{ID: 3, CompanyID: 1, Type: entity.AccountTypeReceivable, Description: "Venda", Amount: dec("4800"), DueDate: day(2024, 3, 10), Status: entity.AccountStatusReceived}},
		nil, nil,
	)
	items, err := uc.GetReconciliationItems(context.Background(), 1, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, items, 2)

	rec := items[0]
	assert.Equal(t, "receber-3", rec.ID)
	assert.Equal(t, ItemTypeReceivable, rec.Type)
	assert.Equal(t, StatusReconciled, rec.Status)
	assert.True(t, rec.BookBalance.Equal(dec("4800")))
	assert.True(t, rec.BankBalance.Equal(dec("5000")))

	bank := items[1]
	assert.Equal(t, "banco-7", bank.ID)
	assert.Equal(t, StatusPending, bank.Status)
	assert.Equal(t, "Conta Movimento - Itaú", bank.Description)

	for _, it := range items {
		assert.True(t, it.Discrepancy.Equal(it.BankBalance.Sub(it.BookBalance)))
		assert.Equal(t, "Alfa", it.CompanyName)
	}

	sum := Summarize(items)
	assert.True(t, sum.TotalDiscrepancy.Equal(dec("200")))
	assert.Equal(t, 1, sum.ReconciledItems)
	assert.Equal(t, 1, sum.PendingItems)
	assert.True(t, sum.ReconciledPercent.Equal(dec("50")))
}

func TestGetReconciliationItems_PagarEsNegativoYOrdenDescendente(t *testing.T) {
	uc := newUseCase(
		[]*entity.BankAccount{{ID: 1, CompanyID: 1, CurrentBalance: dec("1000"), CreatedAt: day(2023, 12, 1)}},
		[]*entity.Account{
			{ID: 1, CompanyID: 1, Type: entity.AccountTypePayable, Amount: dec("300"), DueDate: day(2024, 3, 5), Status: entity.AccountStatusPaid},
			{ID: 2, CompanyID: 1, Type: entity.AccountTypePayable, Amount: dec("200"), DueDate: day(2024, 3, 20), Status: entity.AccountStatusPending},
			{ID: 3, CompanyID: 1, Type: entity.AccountTypeReceivable, Amount: dec("900"), DueDate: day(2024, 3, 12), Status: entity.AccountStatusPending},
			{ID: 4, CompanyID: 1, Type: entity.AccountTypeReceivable, Amount: dec("50"), DueDate: day(2024, 5, 1)}, // fuera de rango
		},
		nil, nil,
	)
	items, err := uc.GetReconciliationItems(context.Background(), 1, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"pagar-2", "receber-3", "pagar-1", "banco-1"}, ids)
	assert.True(t, items[0].Amount.Equal(dec("-200")))
	assert.Equal(t, StatusReconciled, items[2].Status)
	assert.Equal(t, "Conta a Pagar", items[0].Description, "sin descripción usa el tipo")

	// contable = 900 - 500
	assert.True(t, items[0].BookBalance.Equal(dec("400")))

	sum := Summarize(items)
	assert.True(t, sum.TotalBankBalance.Equal(dec("1000")))
	assert.True(t, sum.TotalBookBalance.Equal(dec("400")))
	assert.True(t, sum.TotalDiscrepancy.Equal(dec("600")))
	assert.True(t, sum.ReconciledPercent.Equal(dec("25")))
}

func TestGetReconciliationItems_EmpresaDesconocida(t *testing.T) {
	uc := newUseCase(nil, nil, nil, nil)
	items, err := uc.GetReconciliationItems(context.Background(), 42, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	assert.Empty(t, items)

	sum := Summarize(items)
	assert.True(t, sum.ReconciledPercent.IsZero())
	assert.True(t, sum.TotalDiscrepancy.IsZero())
}

func TestGetReconciliationItems_RangoInvertido(t *testing.T) {
	uc := newUseCase(nil, nil, nil, nil)
	_, err := uc.GetReconciliationItems(context.Background(), 1, day(2024, 3, 31), day(2024, 3, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetReconciliationItems_ErrorDelAlmacenSePropaga(t *testing.T) {
	boom := errors.New("connection refused")
	uc := NewUseCase(fakeCompanies{[]*entity.Company{alfa}}, fakeBanks{err: boom}, fakeAccounts{}, nil, nil, nil, zerolog.Nop())
	_, err := uc.GetSummary(context.Background(), 1, day(2024, 3, 1), day(2024, 3, 31))
	assert.ErrorIs(t, err, boom)
}

func TestSummarize_PorcentajeEnRango(t *testing.T) {
	cases := [][]string{
		{},
		{StatusPending},
		{StatusReconciled},
		{StatusReconciled, StatusPending, StatusPending},
		{StatusReconciled, StatusReconciled, StatusReconciled},
	}
	for _, statuses := range cases {
		items := make([]dto.ReconciliationItemDTO, len(statuses))
		for i, st := range statuses {
			items[i] = dto.ReconciliationItemDTO{Type: ItemTypeReceivable, Status: st}
		}
		p := Summarize(items).ReconciledPercent
		assert.True(t, p.GreaterThanOrEqual(decimal.Zero) && p.LessThanOrEqual(hundred), "porcentaje %s fuera de [0,100]", p)
	}
}

func TestSummarize_PorcentajeSinRedondeo(t *testing.T) {
	items := []dto.ReconciliationItemDTO{
		{Type: ItemTypeReceivable, Status: StatusReconciled},
		{Type: ItemTypePayable, Status: StatusPending},
		{Type: ItemTypePayable, Status: StatusPending},
	}
	p := Summarize(items).ReconciledPercent

	want := decimal.NewFromInt(1).Div(decimal.NewFromInt(3)).Mul(hundred)
	assert.True(t, p.Equal(want), "esperado %s, obtenido %s", want, p)
	assert.False(t, p.Equal(p.Round(2)), "el motor no redondea: %s", p)
}

func TestParseItemID(t *testing.T) {
	prefix, id, err := ParseItemID("pagar-15")
	require.NoError(t, err)
	assert.Equal(t, "pagar", prefix)
	assert.Equal(t, int64(15), id)

	for _, bad := range []string{"", "pagar", "pagar-", "pagar-x", "caixa-1", "banco-0", "banco--3"} {
		_, _, err := ParseItemID(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestMarkReconciled_PersisteYExponeMarca(t *testing.T) {
	marks := &fakeMarks{}
	n := &recordingNotifier{}
	uc := newUseCase(
		nil,
		[]*entity.Account{{ID: 9, CompanyID: 1, Type: entity.AccountTypePayable, Amount: dec("10"), DueDate: day(2024, 3, 3), Status: entity.AccountStatusPending}},
		marks, n,
	)

	ok, err := uc.MarkReconciled(context.Background(), "pagar-9")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, n.events, 1)
	assert.Equal(t, ports.ChannelAccounts, n.events[0].Channel)

	items, err := uc.GetReconciliationItems(context.Background(), 1, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].MarkedAt)
	assert.Equal(t, day(2024, 3, 31), *items[0].MarkedAt)
	assert.Equal(t, StatusPending, items[0].Status, "la marca no cambia el estado calculado")
}

func TestMarkReconciled_IdInvalido(t *testing.T) {
	uc := newUseCase(nil, nil, &fakeMarks{}, nil)
	ok, err := uc.MarkReconciled(context.Background(), "xyz")
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
