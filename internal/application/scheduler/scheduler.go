// Package scheduler dispara la verificación diaria de alertas a una hora fija en una zona horaria fija.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
)

const (
	defaultRunTimeout = 10 * time.Minute
	lockKey           = "lock:alertas:verificacao-diaria"
)

// ErrLockNotObtained lo devuelve un Locker cuando otra réplica ya está ejecutando el job.
var ErrLockNotObtained = errors.New("scheduler: lock no obtenido")

// Job trabajo diario (implementado por alerts.Automation).
type Job interface {
	RunFullCheck(ctx context.Context) dto.FullCheckResultDTO
}

// Locker evita que varias réplicas ejecuten el mismo disparo.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// Config horario del disparo diario.
type Config struct {
	Hour       int
	Minute     int
	Location   *time.Location // nil = UTC
	RunTimeout time.Duration  // 0 = 10 min
}

// Scheduler ejecuta Job una vez por día. Start y Stop son idempotentes.
type Scheduler struct {
	job    Job
	locker Locker
	cfg    Config
	expr   string
	log    zerolog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// New valida el horario y construye el scheduler detenido. locker puede ser nil.
func New(job Job, locker Locker, cfg Config, log zerolog.Logger) (*Scheduler, error) {
	if cfg.Hour < 0 || cfg.Hour > 23 || cfg.Minute < 0 || cfg.Minute > 59 {
		return nil, fmt.Errorf("scheduler: horario inválido %02d:%02d", cfg.Hour, cfg.Minute)
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}
	return &Scheduler{
		job:    job,
		locker: locker,
		cfg:    cfg,
		expr:   fmt.Sprintf("%d %d * * *", cfg.Minute, cfg.Hour),
		log:    log,
	}, nil
}

// Start programa el disparo diario. Si ya está corriendo registra un aviso y no hace nada.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.log.Warn().Msg("scheduler de alertas ya está en ejecución")
		return nil
	}
	c := cron.New(cron.WithLocation(s.cfg.Location))
	if _, err := c.AddFunc(s.expr, func() { s.RunNow(context.Background()) }); err != nil {
		return fmt.Errorf("scheduler: programar %q: %w", s.expr, err)
	}
	c.Start()
	s.cron = c
	s.running = true
	s.log.Info().
		Str("horario", fmt.Sprintf("%02d:%02d", s.cfg.Hour, s.cfg.Minute)).
		Str("timezone", s.cfg.Location.String()).
		Msg("scheduler de alertas iniciado")
	return nil
}

// Stop detiene el scheduler y espera a que termine una ejecución en curso.
// Si no está corriendo registra un aviso y no hace nada.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.log.Warn().Msg("scheduler de alertas no está en ejecución")
		return
	}
	c := s.cron
	s.cron = nil
	s.running = false
	s.mu.Unlock()

	<-c.Stop().Done()
	s.log.Info().Msg("scheduler de alertas detenido")
}

// IsRunning informa si el disparo diario está programado.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun próxima ejecución programada (cero si está detenido).
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return time.Time{}
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunNow ejecuta el job en el momento, respetando el lock entre réplicas.
// Devuelve false si otra réplica tenía el lock.
func (s *Scheduler) RunNow(ctx context.Context) (dto.FullCheckResultDTO, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, lockKey, s.cfg.RunTimeout)
		if err != nil {
			if errors.Is(err, ErrLockNotObtained) {
				s.log.Info().Msg("verificación diaria en curso en otra instancia; se omite")
				return dto.FullCheckResultDTO{}, false
			}
			// sin lock disponible se ejecuta igual
			s.log.Warn().Err(err).Msg("no se pudo obtener el lock; se ejecuta sin lock")
		} else {
			defer release()
		}
	}

	s.log.Info().Msg("ejecutando verificación diaria de alertas")
	res := s.job.RunFullCheck(ctx)
	s.log.Info().
		Int("alertas_gerados", res.AlertsCreated).
		Int("erros", len(res.Errors)).
		Msg("verificación diaria de alertas concluida")
	return res, true
}
