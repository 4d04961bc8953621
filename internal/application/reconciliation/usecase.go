// Package reconciliation cruza los saldos bancarios con las cuentas a pagar/recibir
// de una empresa para exponer la discrepancia entre saldo bancario y contable.
package reconciliation

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/ports"
	"github.com/jhoicas/painel-financeiro/internal/domain"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/cache"
)

// Tipos de ítem.
const (
	ItemTypeBank       = "Bancário"
	ItemTypePayable    = "Conta a Pagar"
	ItemTypeReceivable = "Conta a Receber"
)

// Estados de ítem.
const (
	StatusReconciled = "Reconciliado"
	StatusPending    = "Pendente"
)

// Prefijos de los ids sintéticos.
const (
	prefixBank       = "banco"
	prefixPayable    = "pagar"
	prefixReceivable = "receber"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// UseCase conciliación bancaria por empresa.
type UseCase struct {
	companies repository.CompanyRepository
	banks     repository.BankAccountRepository
	accounts  repository.AccountRepository
	marks     repository.ReconciliationRepository
	cache     *cache.Service
	notifier  ports.Notifier
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. cache y notifier pueden ser nil.
func NewUseCase(
	companies repository.CompanyRepository,
	banks repository.BankAccountRepository,
	accounts repository.AccountRepository,
	marks repository.ReconciliationRepository,
	c *cache.Service,
	notifier ports.Notifier,
	log zerolog.Logger,
) *UseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &UseCase{
		companies: companies,
		banks:     banks,
		accounts:  accounts,
		marks:     marks,
		cache:     c,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// GetReconciliationItems devuelve los ítems de conciliación de la empresa con vencimiento en [from, to],
// ordenados por fecha descendente. Empresa inexistente = lista vacía, no error.
func (uc *UseCase) GetReconciliationItems(ctx context.Context, companyID int64, from, to time.Time) ([]dto.ReconciliationItemDTO, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("reconciliation.GetReconciliationItems: fin anterior al inicio: %w", domain.ErrInvalidInput)
	}
	key := cache.Key("reconciliacao", companyID, from.Format(dateLayout), to.Format(dateLayout))
	items, err := cache.GetOrSet(ctx, uc.cache, key, cache.TTLReconciliation, func(ctx context.Context) ([]dto.ReconciliationItemDTO, error) {
		return uc.build(ctx, companyID, from, to)
	})
	if err != nil {
		return nil, fmt.Errorf("reconciliation.GetReconciliationItems: %w", err)
	}
	// las marcas manuales no pasan por la caché
	if err := uc.applyMarks(ctx, items); err != nil {
		return nil, fmt.Errorf("reconciliation.GetReconciliationItems: marcas: %w", err)
	}
	return items, nil
}

func (uc *UseCase) build(ctx context.Context, companyID int64, from, to time.Time) ([]dto.ReconciliationItemDTO, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		uc.log.Warn().Int64("empresa_id", companyID).Msg("empresa no encontrada para conciliación")
		return []dto.ReconciliationItemDTO{}, nil
	}

	id := companyID
	banks, err := uc.banks.List(ctx, &id)
	if err != nil {
		return nil, err
	}
	accounts, err := uc.accounts.List(ctx, repository.AccountFilter{CompanyID: &id, From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	var payables, receivables []*entity.Account
	bankTotal, payTotal, recTotal := decimal.Zero, decimal.Zero, decimal.Zero
	for _, b := range banks {
		bankTotal = bankTotal.Add(b.CurrentBalance)
	}
	for _, a := range accounts {
		switch a.Type {
		case entity.AccountTypePayable:
			payables = append(payables, a)
			payTotal = payTotal.Add(a.Amount)
		case entity.AccountTypeReceivable:
			receivables = append(receivables, a)
			recTotal = recTotal.Add(a.Amount)
		}
	}
	bookTotal := recTotal.Sub(payTotal)
	discrepancy := bankTotal.Sub(bookTotal)
	name := company.DisplayName("")

	items := make([]dto.ReconciliationItemDTO, 0, len(banks)+len(accounts))
	newItem := func(id, typ, desc string, date time.Time, amount decimal.Decimal, status string) dto.ReconciliationItemDTO {
		return dto.ReconciliationItemDTO{
			ID:          id,
			Date:        date,
			Type:        typ,
			Description: desc,
			Amount:      amount,
			BankBalance: bankTotal,
			BookBalance: bookTotal,
			Discrepancy: discrepancy,
			Status:      status,
			CompanyID:   companyID,
			CompanyName: name,
		}
	}

	for _, b := range banks {
		date := b.CreatedAt
		if date.IsZero() {
			date = uc.now()
		}
		desc := fmt.Sprintf("%s - %s", b.Name, b.Bank)
		// sin extracto importado no hay con qué casar la cuenta bancaria
		items = append(items, newItem(itemID(prefixBank, b.ID), ItemTypeBank, desc, date, b.CurrentBalance, StatusPending))
	}
	for _, a := range payables {
		items = append(items, newItem(itemID(prefixPayable, a.ID), ItemTypePayable, describe(a, ItemTypePayable), a.DueDate, a.Amount.Neg(), status(a)))
	}
	for _, a := range receivables {
		items = append(items, newItem(itemID(prefixReceivable, a.ID), ItemTypeReceivable, describe(a, ItemTypeReceivable), a.DueDate, a.Amount, status(a)))
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })

	uc.log.Info().
		Int64("empresa_id", companyID).
		Int("items", len(items)).
		Str("saldo_bancario", bankTotal.String()).
		Str("saldo_contabil", bookTotal.String()).
		Msg("conciliación calculada")
	return items, nil
}

func (uc *UseCase) applyMarks(ctx context.Context, items []dto.ReconciliationItemDTO) error {
	if uc.marks == nil || len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	marks, err := uc.marks.ListMarks(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if at, ok := marks[items[i].ID]; ok {
			items[i].MarkedAt = &at
		}
	}
	return nil
}

func itemID(prefix string, id int64) string {
	return prefix + "-" + strconv.FormatInt(id, 10)
}

func describe(a *entity.Account, fallback string) string {
	if a.Description != "" {
		return a.Description
	}
	return fallback
}

func status(a *entity.Account) string {
	if a.IsSettled() {
		return StatusReconciled
	}
	return StatusPending
}

// GetSummary agrega los ítems de la empresa. El lado bancario suma solo ítems bancarios y el
// contable solo cuentas a pagar/recibir (con signo), para no contar dos veces los totales.
func (uc *UseCase) GetSummary(ctx context.Context, companyID int64, from, to time.Time) (*dto.ReconciliationSummaryDTO, error) {
	items, err := uc.GetReconciliationItems(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reconciliation.GetSummary: %w", err)
	}
	return Summarize(items), nil
}

// Summarize calcula el resumen a partir de una lista de ítems ya construida.
func Summarize(items []dto.ReconciliationItemDTO) *dto.ReconciliationSummaryDTO {
	s := &dto.ReconciliationSummaryDTO{ReconciledPercent: decimal.Zero}
	for _, it := range items {
		switch it.Type {
		case ItemTypeBank:
			s.TotalBankBalance = s.TotalBankBalance.Add(it.Amount)
		case ItemTypePayable, ItemTypeReceivable:
			s.TotalBookBalance = s.TotalBookBalance.Add(it.Amount)
		}
		if it.Status == StatusReconciled {
			s.ReconciledItems++
		} else {
			s.PendingItems++
		}
	}
	s.TotalDiscrepancy = s.TotalBankBalance.Sub(s.TotalBookBalance).Abs()
	if len(items) > 0 {
		s.ReconciledPercent = decimal.NewFromInt(int64(s.ReconciledItems)).
			Div(decimal.NewFromInt(int64(len(items)))).
			Mul(hundred)
	}
	return s
}

// ParseItemID valida un id sintético y devuelve su prefijo y el id del registro origen.
func ParseItemID(itemID string) (prefix string, id int64, err error) {
	prefix, raw, ok := strings.Cut(itemID, "-")
	if !ok {
		return "", 0, fmt.Errorf("id de ítem inválido %q: %w", itemID, domain.ErrInvalidInput)
	}
	switch prefix {
	case prefixBank, prefixPayable, prefixReceivable:
	default:
		return "", 0, fmt.Errorf("tipo de ítem desconocido %q: %w", prefix, domain.ErrInvalidInput)
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("id de ítem inválido %q: %w", itemID, domain.ErrInvalidInput)
	}
	return prefix, id, nil
}

// MarkReconciled registra la marca manual de conciliación del ítem. No altera el estado
// calculado del ítem; la marca se expone en MarkedAt.
func (uc *UseCase) MarkReconciled(ctx context.Context, itemID string) (bool, error) {
	if _, _, err := ParseItemID(itemID); err != nil {
		return false, fmt.Errorf("reconciliation.MarkReconciled: %w", err)
	}
	if uc.marks == nil {
		uc.log.Info().Str("item_id", itemID).Msg("ítem marcado como conciliado (sin persistencia)")
		return true, nil
	}
	mark := &repository.ReconciliationMark{
		ID:       uuid.New().String(),
		ItemID:   itemID,
		MarkedAt: uc.now(),
	}
	if err := uc.marks.Mark(ctx, mark); err != nil {
		return false, fmt.Errorf("reconciliation.MarkReconciled: %w", err)
	}
	uc.log.Info().Str("item_id", itemID).Msg("ítem marcado como conciliado")
	uc.notifier.Publish(ports.Event{
		Channel:   ports.ChannelAccounts,
		Type:      "reconciled",
		Data:      map[string]string{"item_id": itemID},
		Timestamp: mark.MarkedAt,
	})
	return true, nil
}
