package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
)

type countingJob struct{ calls atomic.Int32 }

func (j *countingJob) RunFullCheck(context.Context) dto.FullCheckResultDTO {
	j.calls.Add(1)
	return dto.FullCheckResultDTO{AlertsCreated: 2, Errors: []string{}}
}

type stubLocker struct {
	err      error
	released atomic.Bool
}

func (l *stubLocker) Acquire(context.Context, string, time.Duration) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	return func() { l.released.Store(true) }, nil
}

func saoPaulo(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("zoneinfo no disponible")
	}
	return loc
}

func TestNew_HorarioInvalido(t *testing.T) {
	_, err := New(&countingJob{}, nil, Config{Hour: 24}, zerolog.Nop())
	assert.Error(t, err)
	_, err = New(&countingJob{}, nil, Config{Hour: 8, Minute: 60}, zerolog.Nop())
	assert.Error(t, err)
}

func TestStartStop_Idempotentes(t *testing.T) {
	s, err := New(&countingJob{}, nil, Config{Hour: 8, Location: saoPaulo(t)}, zerolog.Nop())
	require.NoError(t, err)

	assert.False(t, s.IsRunning())
	s.Stop() // detenido: solo aviso

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())

	s.Stop()
	s.Stop()
	assert.False(t, s.IsRunning())
	assert.True(t, s.NextRun().IsZero())

	require.NoError(t, s.Start(), "se puede reiniciar")
	assert.True(t, s.IsRunning())
	s.Stop()
}

func TestNextRun_HoraLocalConfigurada(t *testing.T) {
	loc := saoPaulo(t)
	s, err := New(&countingJob{}, nil, Config{Hour: 8, Minute: 0, Location: loc}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	next := s.NextRun().In(loc)
	assert.Equal(t, 8, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Sub(time.Now()) <= 24*time.Hour)
}

func TestRunNow_EjecutaYLiberaLock(t *testing.T) {
	job := &countingJob{}
	locker := &stubLocker{}
	s, err := New(job, locker, Config{Hour: 8}, zerolog.Nop())
	require.NoError(t, err)

	res, ran := s.RunNow(context.Background())
	assert.True(t, ran)
	assert.Equal(t, 2, res.AlertsCreated)
	assert.Equal(t, int32(1), job.calls.Load())
	assert.True(t, locker.released.Load())
}

func TestRunNow_OtraReplicaTieneElLock(t *testing.T) {
	job := &countingJob{}
	s, err := New(job, &stubLocker{err: ErrLockNotObtained}, Config{Hour: 8}, zerolog.Nop())
	require.NoError(t, err)

	_, ran := s.RunNow(context.Background())
	assert.False(t, ran)
	assert.Equal(t, int32(0), job.calls.Load())
}

func TestRunNow_LockerCaidoEjecutaIgual(t *testing.T) {
	job := &countingJob{}
	s, err := New(job, &stubLocker{err: errors.New("dial tcp: connection refused")}, Config{Hour: 8}, zerolog.Nop())
	require.NoError(t, err)

	_, ran := s.RunNow(context.Background())
	assert.True(t, ran)
	assert.Equal(t, int32(1), job.calls.Load())
}
