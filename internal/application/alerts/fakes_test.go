package alerts

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/ports"
	"github.com/jhoicas/painel-financeiro/internal/domain"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var errStoreDown = errors.New("store down")

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

type fakeAccounts struct {
	list []*entity.Account
	err  error
}

func (f fakeAccounts) List(_ context.Context, flt repository.AccountFilter) ([]*entity.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Account
	for _, a := range f.list {
		if flt.Status == "" || a.Status == flt.Status {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTaxes struct {
	list []*entity.TaxObligation
	err  error
}

func (f fakeTaxes) List(_ context.Context, flt repository.TaxFilter) ([]*entity.TaxObligation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.TaxObligation
	for _, t := range f.list {
		if flt.Status == "" || t.Status == flt.Status {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeBanks struct{ list []*entity.BankAccount }

func (f fakeBanks) List(context.Context, *int64) ([]*entity.BankAccount, error) { return f.list, nil }

// memAlerts almacén de alertas en memoria.
type memAlerts struct {
	mu         sync.Mutex
	alerts     []*entity.Alert
	failCreate map[int64]bool // entity id cuya creación falla
	failExists bool
	listCalls  int
}

func (m *memAlerts) Create(_ context.Context, a *entity.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.EntityID != nil && m.failCreate[*a.EntityID] {
		return errStoreDown
	}
	cp := *a
	m.alerts = append(m.alerts, &cp)
	return nil
}

func (m *memAlerts) List(_ context.Context, unreadOnly bool) ([]*entity.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	var out []*entity.Alert
	for _, a := range m.alerts {
		if !unreadOnly || !a.Read {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memAlerts) ExistsUnread(_ context.Context, alertType, entityType string, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failExists {
		return false, errStoreDown
	}
	for _, a := range m.alerts {
		if a.Type == alertType && !a.Read && a.RefersTo(entityType, id) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAlerts) SetRead(_ context.Context, id string, read bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.alerts {
		if a.ID == id {
			a.Read = read
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memAlerts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.alerts)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *recordingNotifier) Publish(ev ports.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

type fakeConsolidator struct {
	summaries []dto.ConsolidatedSummaryDTO
	skipped   []dto.SkippedCompanyDTO
	err       error
}

func (f fakeConsolidator) ConsolidateAll(context.Context, entity.PeriodKey) ([]dto.ConsolidatedSummaryDTO, []dto.SkippedCompanyDTO, error) {
	return f.summaries, f.skipped, f.err
}
