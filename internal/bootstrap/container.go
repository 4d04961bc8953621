// Package bootstrap arma el grafo de dependencias compartido por la API y el CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-financeiro/internal/application/alerts"
	"github.com/jhoicas/painel-financeiro/internal/application/consolidation"
	"github.com/jhoicas/painel-financeiro/internal/application/reconciliation"
	"github.com/jhoicas/painel-financeiro/internal/application/scheduler"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/cache"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/postgres"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/realtime"
	"github.com/jhoicas/painel-financeiro/pkg/config"
	"github.com/jhoicas/painel-financeiro/pkg/logger"
)

// Container servicios listos para usar.
type Container struct {
	Config         *config.Config
	Location       *time.Location
	Pool           *pgxpool.Pool
	Store          *postgres.Store
	Redis          *redis.Client // nil con caché en memoria
	Cache          *cache.Service
	Hub            *realtime.Hub
	Consolidation  *consolidation.UseCase
	Balances       *consolidation.BalanceService
	Reconciliation *reconciliation.UseCase
	Automation     *alerts.Automation
	Alerts         *alerts.Service
	Scheduler      *scheduler.Scheduler
}

// New conecta PostgreSQL (y Redis si está configurado) y construye los casos de uso.
// Close libera las conexiones.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: zona horaria %q: %w", cfg.Scheduler.Timezone, err)
	}
	threshold, err := decimal.NewFromString(cfg.Alerts.LowBalanceThreshold)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: LOW_BALANCE_THRESHOLD inválido: %w", err)
	}
	hour, minute, err := config.ParseClock(cfg.Scheduler.Time)
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: conexión a PostgreSQL: %w", err)
	}
	c := &Container{Config: cfg, Location: loc, Pool: pool}
	c.Store = postgres.NewStore(pool, time.Duration(cfg.DB.QueryTimeout)*time.Second)

	var backend cache.Backend
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("bootstrap: conexión a Redis: %w", err)
		}
		c.Redis = rdb
		backend = cache.NewRedisBackend(rdb, cfg.Cache.Prefix)
	} else {
		log.Warn().Msg("REDIS_ADDRESS vacío; caché en memoria del proceso")
		backend = cache.NewMemoryBackend()
	}
	c.Cache = cache.NewService(backend, time.Duration(cfg.Cache.DefaultTTLSeconds)*time.Second, log.Component("cache"))
	c.Hub = realtime.NewHub(0, log.Component("realtime"))

	s := c.Store
	c.Consolidation = consolidation.NewUseCase(consolidation.Repositories{
		Companies: s.Companies,
		Accounts:  s.Accounts,
		CashFlow:  s.CashFlow,
		Taxes:     s.Taxes,
		Payroll:   s.Payroll,
		KPIs:      s.KPIs,
	}, c.Cache, loc, log.Component("consolidation"))
	c.Balances = consolidation.NewBalanceService(s.BankAccounts, c.Cache)
	c.Reconciliation = reconciliation.NewUseCase(s.Companies, s.BankAccounts, s.Accounts, s.Reconciliation,
		c.Cache, c.Hub, log.Component("reconciliation"))
	c.Automation = alerts.NewAutomation(alerts.Repositories{
		Companies: s.Companies,
		Accounts:  s.Accounts,
		Taxes:     s.Taxes,
		Banks:     s.BankAccounts,
		Alerts:    s.Alerts,
	}, c.Consolidation, c.Cache, c.Hub, alerts.Options{
		Location:            loc,
		LowBalanceThreshold: threshold,
	}, log.Component("alerts"))
	c.Alerts = alerts.NewService(s.Alerts, c.Cache, c.Hub)

	var locker scheduler.Locker
	if c.Redis != nil {
		locker = scheduler.NewRedisLocker(c.Redis)
	}
	c.Scheduler, err = scheduler.New(c.Automation, locker, scheduler.Config{
		Hour:     hour,
		Minute:   minute,
		Location: loc,
	}, log.Component("scheduler"))
	if err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close detiene el scheduler y cierra Redis y el pool.
func (c *Container) Close() {
	if c.Scheduler != nil && c.Scheduler.IsRunning() {
		c.Scheduler.Stop()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
