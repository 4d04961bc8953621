// Package alerts genera alertas automáticas sobre cuentas vencidas, impuestos por vencer,
// saldos bajos y márgenes negativos, y expone la lectura de alertas pendientes.
//
// Política de fallas: un registro que no se puede procesar se registra en el log y en la
// lista de errores del resultado, sin interrumpir el lote. Una verificación nunca aborta.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/ports"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/cache"
	"github.com/jhoicas/painel-financeiro/pkg/money"
)

const (
	upcomingTaxWindowDays = 7
	dueDateLayout         = "02/01/2006"
	companyFallbackName   = "Empresa"
)

// UnreadCacheKey clave de la lista de alertas no leídas.
var UnreadCacheKey = cache.Key("alertas", "nao_lidos")

// Consolidator fuente de resúmenes para la verificación de márgenes.
type Consolidator interface {
	ConsolidateAll(ctx context.Context, period entity.PeriodKey) ([]dto.ConsolidatedSummaryDTO, []dto.SkippedCompanyDTO, error)
}

// Repositories puertos usados por la automatización.
type Repositories struct {
	Companies repository.CompanyRepository
	Accounts  repository.AccountRepository
	Taxes     repository.TaxRepository
	Banks     repository.BankAccountRepository
	Alerts    repository.AlertRepository
}

// Options parámetros de la automatización.
type Options struct {
	Location            *time.Location  // zona para truncar "hoy"; nil = UTC
	LowBalanceThreshold decimal.Decimal // saldo por debajo del cual se alerta
	Clock               func() time.Time
}

// Automation motor de alertas automáticas.
type Automation struct {
	repos        Repositories
	consolidator Consolidator
	cache        *cache.Service
	notifier     ports.Notifier
	log          zerolog.Logger
	loc          *time.Location
	threshold    decimal.Decimal
	now          func() time.Time
}

// NewAutomation construye el motor. consolidator, cache y notifier pueden ser nil.
func NewAutomation(repos Repositories, consolidator Consolidator, c *cache.Service, notifier ports.Notifier, opts Options, log zerolog.Logger) *Automation {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &Automation{
		repos:        repos,
		consolidator: consolidator,
		cache:        c,
		notifier:     notifier,
		log:          log,
		loc:          opts.Location,
		threshold:    opts.LowBalanceThreshold,
		now:          opts.Clock,
	}
}

// today hoy a las 00:00 en la zona configurada.
func (a *Automation) today() time.Time {
	return dateOnly(a.now().In(a.loc), a.loc)
}

// dateOnly conserva el día calendario tal como viene (las columnas DATE llegan en UTC).
func dateOnly(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysBetween días calendario de from a to (negativo si to es anterior).
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// OverdueSeverity severidad por días de atraso.
func OverdueSeverity(daysOverdue int) string {
	switch {
	case daysOverdue >= 8:
		return entity.SeverityCritical
	case daysOverdue >= 1:
		return entity.SeverityWarning
	default:
		return entity.SeverityInfo
	}
}

// UpcomingTaxSeverity severidad por días restantes hasta el vencimiento.
func UpcomingTaxSeverity(daysRemaining int) string {
	switch {
	case daysRemaining <= 2:
		return entity.SeverityCritical
	case daysRemaining <= 4:
		return entity.SeverityWarning
	default:
		return entity.SeverityInfo
	}
}

// companyNames resuelve nombres de empresa con memo por verificación.
type companyNames struct {
	repo  repository.CompanyRepository
	names map[int64]string
}

func (a *Automation) newCompanyNames() *companyNames {
	return &companyNames{repo: a.repos.Companies, names: make(map[int64]string)}
}

func (c *companyNames) get(ctx context.Context, id int64) (string, error) {
	if n, ok := c.names[id]; ok {
		return n, nil
	}
	company, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	n := company.DisplayName(companyFallbackName)
	c.names[id] = n
	return n, nil
}

// alreadyAlerted dedup: existe una alerta no leída del tipo para la entidad.
// Si la consulta falla se asume que no existe (mejor una alerta duplicada que una perdida).
func (a *Automation) alreadyAlerted(ctx context.Context, alertType, entityType string, id int64) bool {
	exists, err := a.repos.Alerts.ExistsUnread(ctx, alertType, entityType, id)
	if err != nil {
		a.log.Error().Err(err).Str("entidade_tipo", entityType).Int64("entidade_id", id).Msg("error al verificar alerta existente")
		return false
	}
	return exists
}

func (a *Automation) create(ctx context.Context, alert *entity.Alert) error {
	alert.ID = uuid.New().String()
	alert.Read = false
	alert.CreatedAt = a.now()
	if err := a.repos.Alerts.Create(ctx, alert); err != nil {
		return err
	}
	a.notifier.Publish(ports.Event{
		Channel:   ports.ChannelAlerts,
		Type:      "created",
		Data:      toDTO(alert),
		Timestamp: alert.CreatedAt,
	})
	return nil
}

// finish invalida la lista de no leídas si se crearon alertas.
func (a *Automation) finish(ctx context.Context, res *dto.CheckResultDTO) {
	if res.AlertsCreated > 0 {
		a.cache.Delete(ctx, UnreadCacheKey)
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
}

// CheckOverdueAccounts alerta las cuentas pendientes con vencimiento anterior a hoy.
func (a *Automation) CheckOverdueAccounts(ctx context.Context) (res dto.CheckResultDTO) {
	defer a.finish(ctx, &res)

	a.log.Info().Msg("iniciando verificación de cuentas vencidas")
	accounts, err := a.repos.Accounts.List(ctx, repository.AccountFilter{Status: entity.AccountStatusPending})
	if err != nil {
		msg := fmt.Sprintf("error general en la verificación de cuentas vencidas: %v", err)
		a.log.Error().Err(err).Msg("error general en la verificación de cuentas vencidas")
		res.Errors = append(res.Errors, msg)
		return res
	}

	today := a.today()
	names := a.newCompanyNames()
	for _, acc := range accounts {
		if acc.Status != entity.AccountStatusPending {
			continue
		}
		res.Checked++
		created, err := a.checkOverdueAccount(ctx, acc, today, names)
		if err != nil {
			msg := fmt.Sprintf("error al procesar cuenta %d: %v", acc.ID, err)
			a.log.Error().Err(err).Int64("conta_id", acc.ID).Msg("error al procesar cuenta")
			res.Errors = append(res.Errors, msg)
			continue
		}
		if created {
			res.AlertsCreated++
		}
	}

	a.log.Info().
		Int("verificadas", res.Checked).
		Int("alertas_gerados", res.AlertsCreated).
		Int("erros", len(res.Errors)).
		Msg("verificación de cuentas vencidas concluida")
	return res
}

func (a *Automation) checkOverdueAccount(ctx context.Context, acc *entity.Account, today time.Time, names *companyNames) (bool, error) {
	if acc.DueDate.IsZero() {
		return false, fmt.Errorf("fecha de vencimiento ausente")
	}
	due := dateOnly(acc.DueDate, a.loc)
	if !due.Before(today) {
		return false, nil
	}
	days := daysBetween(due, today)
	if a.alreadyAlerted(ctx, entity.AlertTypeDueDate, entity.EntityAccount, acc.ID) {
		return false, nil
	}
	name, err := names.get(ctx, acc.CompanyID)
	if err != nil {
		return false, fmt.Errorf("empresa %d: %w", acc.CompanyID, err)
	}
	severity := OverdueSeverity(days)
	id := acc.ID
	alert := &entity.Alert{
		Type:     entity.AlertTypeDueDate,
		Severity: severity,
		Title:    fmt.Sprintf("Conta Vencida: %s", acc.Description),
		Message: fmt.Sprintf("A conta \"%s\" da empresa %s está vencida há %d dia(s). Valor: R$ %s. Vencimento: %s.",
			acc.Description, name, days, money.FormatBRL(acc.Amount), due.Format(dueDateLayout)),
		EntityType: entity.EntityAccount,
		EntityID:   &id,
	}
	if err := a.create(ctx, alert); err != nil {
		return false, err
	}
	a.log.Info().Int64("conta_id", acc.ID).Int("dias_atraso", days).Str("severidade", severity).Msg("alerta generada para cuenta vencida")
	return true, nil
}

// CheckUpcomingTaxes alerta los impuestos pendientes que vencen entre hoy y hoy+7 días (inclusive).
func (a *Automation) CheckUpcomingTaxes(ctx context.Context) (res dto.CheckResultDTO) {
	defer a.finish(ctx, &res)

	a.log.Info().Msg("iniciando verificación de impuestos por vencer")
	taxes, err := a.repos.Taxes.List(ctx, repository.TaxFilter{Status: entity.TaxStatusPending})
	if err != nil {
		msg := fmt.Sprintf("error general en la verificación de impuestos por vencer: %v", err)
		a.log.Error().Err(err).Msg("error general en la verificación de impuestos por vencer")
		res.Errors = append(res.Errors, msg)
		return res
	}

	today := a.today()
	limit := today.AddDate(0, 0, upcomingTaxWindowDays)
	names := a.newCompanyNames()
	for _, tax := range taxes {
		if tax.Status != entity.TaxStatusPending {
			continue
		}
		res.Checked++
		created, err := a.checkUpcomingTax(ctx, tax, today, limit, names)
		if err != nil {
			msg := fmt.Sprintf("error al procesar impuesto %d: %v", tax.ID, err)
			a.log.Error().Err(err).Int64("imposto_id", tax.ID).Msg("error al procesar impuesto")
			res.Errors = append(res.Errors, msg)
			continue
		}
		if created {
			res.AlertsCreated++
		}
	}

	a.log.Info().
		Int("verificados", res.Checked).
		Int("alertas_gerados", res.AlertsCreated).
		Int("erros", len(res.Errors)).
		Msg("verificación de impuestos por vencer concluida")
	return res
}

func (a *Automation) checkUpcomingTax(ctx context.Context, tax *entity.TaxObligation, today, limit time.Time, names *companyNames) (bool, error) {
	if tax.DueDate.IsZero() {
		return false, fmt.Errorf("fecha de vencimiento ausente")
	}
	due := dateOnly(tax.DueDate, a.loc)
	if due.Before(today) || due.After(limit) {
		return false, nil
	}
	days := daysBetween(today, due)
	if a.alreadyAlerted(ctx, entity.AlertTypeDueDate, entity.EntityTax, tax.ID) {
		return false, nil
	}
	name, err := names.get(ctx, tax.CompanyID)
	if err != nil {
		return false, fmt.Errorf("empresa %d: %w", tax.CompanyID, err)
	}
	severity := UpcomingTaxSeverity(days)
	id := tax.ID
	alert := &entity.Alert{
		Type:     entity.AlertTypeDueDate,
		Severity: severity,
		Title:    fmt.Sprintf("Imposto Próximo do Vencimento: %s", tax.TaxType),
		Message: fmt.Sprintf("O imposto %s da empresa %s vence em %d dia(s). Base de Cálculo: R$ %s. Vencimento: %s.",
			tax.TaxType, name, days, money.FormatBRL(tax.BaseAmount), due.Format(dueDateLayout)),
		EntityType: entity.EntityTax,
		EntityID:   &id,
	}
	if err := a.create(ctx, alert); err != nil {
		return false, err
	}
	a.log.Info().Int64("imposto_id", tax.ID).Int("dias_restantes", days).Str("severidade", severity).Msg("alerta generada para impuesto por vencer")
	return true, nil
}

// RunFullCheck ejecuta cuentas vencidas e impuestos por vencer en secuencia.
// Los errores de una fase no impiden la otra.
func (a *Automation) RunFullCheck(ctx context.Context) dto.FullCheckResultDTO {
	a.log.Info().Msg("=== iniciando verificación completa de alertas automáticas ===")
	start := time.Now()

	accounts := a.CheckOverdueAccounts(ctx)
	taxes := a.CheckUpcomingTaxes(ctx)

	res := dto.FullCheckResultDTO{
		AccountsChecked: accounts.Checked,
		TaxesChecked:    taxes.Checked,
		AlertsCreated:   accounts.AlertsCreated + taxes.AlertsCreated,
		Errors:          append(append([]string{}, accounts.Errors...), taxes.Errors...),
		DurationMs:      time.Since(start).Milliseconds(),
	}

	a.log.Info().
		Int("contas_verificadas", res.AccountsChecked).
		Int("impostos_verificados", res.TaxesChecked).
		Int("alertas_gerados", res.AlertsCreated).
		Int("erros", len(res.Errors)).
		Int64("duracao_ms", res.DurationMs).
		Msg("=== verificación completa de alertas automáticas concluida ===")
	a.notifier.Publish(ports.Event{Channel: ports.ChannelDashboard, Type: "check_completed", Data: res, Timestamp: a.now()})
	return res
}

// CheckLowBalances alerta las cuentas bancarias activas con saldo por debajo del umbral.
// Saldo negativo = Critico; por debajo del umbral = Aviso.
func (a *Automation) CheckLowBalances(ctx context.Context) (res dto.CheckResultDTO) {
	defer a.finish(ctx, &res)

	banks, err := a.repos.Banks.List(ctx, nil)
	if err != nil {
		a.log.Error().Err(err).Msg("error general en la verificación de saldos bajos")
		res.Errors = append(res.Errors, fmt.Sprintf("error general en la verificación de saldos bajos: %v", err))
		return res
	}

	names := a.newCompanyNames()
	for _, b := range banks {
		if !b.IsActive() {
			continue
		}
		res.Checked++
		if !b.CurrentBalance.LessThan(a.threshold) {
			continue
		}
		if a.alreadyAlerted(ctx, entity.AlertTypeLowBalance, entity.EntityBankAccount, b.ID) {
			continue
		}
		name, err := names.get(ctx, b.CompanyID)
		if err != nil {
			a.log.Error().Err(err).Int64("conta_bancaria_id", b.ID).Msg("error al procesar cuenta bancaria")
			res.Errors = append(res.Errors, fmt.Sprintf("error al procesar cuenta bancaria %d: %v", b.ID, err))
			continue
		}
		severity := entity.SeverityWarning
		if b.CurrentBalance.IsNegative() {
			severity = entity.SeverityCritical
		}
		id := b.ID
		alert := &entity.Alert{
			Type:     entity.AlertTypeLowBalance,
			Severity: severity,
			Title:    fmt.Sprintf("Saldo Baixo: %s", b.Name),
			Message: fmt.Sprintf("A conta %s (%s) da empresa %s está com saldo de R$ %s, abaixo do limite de R$ %s.",
				b.Name, b.Bank, name, money.FormatBRL(b.CurrentBalance), money.FormatBRL(a.threshold)),
			EntityType: entity.EntityBankAccount,
			EntityID:   &id,
		}
		if err := a.create(ctx, alert); err != nil {
			a.log.Error().Err(err).Int64("conta_bancaria_id", b.ID).Msg("error al crear alerta de saldo bajo")
			res.Errors = append(res.Errors, fmt.Sprintf("error al procesar cuenta bancaria %d: %v", b.ID, err))
			continue
		}
		res.AlertsCreated++
	}
	return res
}

// CheckNegativeMargins alerta (Critico) las empresas con resultado negativo en el período.
// Las empresas que no se pudieron consolidar se reportan como errores.
func (a *Automation) CheckNegativeMargins(ctx context.Context, period entity.PeriodKey) (res dto.CheckResultDTO) {
	defer a.finish(ctx, &res)

	if a.consolidator == nil {
		res.Errors = append(res.Errors, "consolidación no configurada")
		return res
	}
	summaries, skipped, err := a.consolidator.ConsolidateAll(ctx, period)
	if err != nil {
		a.log.Error().Err(err).Str("periodo", period.String()).Msg("error general en la verificación de márgenes")
		res.Errors = append(res.Errors, fmt.Sprintf("error general en la verificación de márgenes: %v", err))
		return res
	}
	for _, s := range skipped {
		res.Errors = append(res.Errors, fmt.Sprintf("error al consolidar empresa %d: %s", s.CompanyID, s.Reason))
	}

	for _, s := range summaries {
		res.Checked++
		if s.Status != dto.StatusLoss {
			continue
		}
		if a.alreadyAlerted(ctx, entity.AlertTypeNegativeMargin, entity.EntityCompany, s.CompanyID) {
			continue
		}
		id := s.CompanyID
		name := s.CompanyName
		if name == "" {
			name = companyFallbackName
		}
		alert := &entity.Alert{
			Type:     entity.AlertTypeNegativeMargin,
			Severity: entity.SeverityCritical,
			Title:    fmt.Sprintf("Margem Negativa: %s", name),
			Message: fmt.Sprintf("A empresa %s fechou o período %s com saldo de R$ %s (margem %s).",
				name, s.Period, money.FormatBRL(s.NetBalance), money.FormatPercent(s.MarginPercent)),
			EntityType: entity.EntityCompany,
			EntityID:   &id,
		}
		if err := a.create(ctx, alert); err != nil {
			a.log.Error().Err(err).Int64("empresa_id", s.CompanyID).Msg("error al crear alerta de margen negativa")
			res.Errors = append(res.Errors, fmt.Sprintf("error al procesar empresa %d: %v", s.CompanyID, err))
			continue
		}
		res.AlertsCreated++
	}
	return res
}
