package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Service caché de valores serializados en JSON sobre un Backend.
// Un Service nil o sin backend se comporta como caché siempre vacía.
type Service struct {
	backend    Backend
	defaultTTL time.Duration
	log        zerolog.Logger
}

// NewService construye el servicio. defaultTTL <= 0 usa una hora.
func NewService(backend Backend, defaultTTL time.Duration, log zerolog.Logger) *Service {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &Service{backend: backend, defaultTTL: defaultTTL, log: log}
}

// Key arma la clave uniendo las partes con ":" (ej. Key("consolidado", 42, "2024-03")).
func Key(parts ...any) string {
	ss := make([]string, len(parts))
	for i, p := range parts {
		ss[i] = fmt.Sprint(p)
	}
	return strings.Join(ss, ":")
}

// Get decodifica el valor de key en dest. Devuelve false ante miss, entrada vencida o cualquier
// falla del backend (la falla se registra, nunca se propaga).
func (s *Service) Get(ctx context.Context, key string, dest any) bool {
	found, err := s.lookup(ctx, key, dest)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache get falló; se trata como miss")
		return false
	}
	return found
}

// Set guarda value con el TTL dado (ttl <= 0 usa el TTL por defecto). Las fallas solo se registran.
func (s *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if s == nil || s.backend == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set: valor no serializable")
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if err := s.backend.Set(ctx, key, raw, ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set falló")
	}
}

// Delete elimina la clave.
func (s *Service) Delete(ctx context.Context, key string) {
	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache delete falló")
	}
}

// Clear vacía la caché.
func (s *Service) Clear(ctx context.Context) {
	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cache clear falló")
	}
}

// lookup distingue miss (false, nil) de falla del backend (false, err).
// Una entrada corrupta se descarta y cuenta como miss.
func (s *Service) lookup(ctx context.Context, key string, dest any) (bool, error) {
	if s == nil || s.backend == nil {
		return false, nil
	}
	raw, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache: entrada corrupta descartada")
		_ = s.backend.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// GetOrSet devuelve el valor cacheado bajo key o lo calcula con compute y lo guarda con ttl.
// Si compute falla no se guarda nada y el error se propaga. Si el backend falla, compute se
// invoca directamente sin pasar por la caché.
func GetOrSet[T any](ctx context.Context, s *Service, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := s.lookup(ctx, key, &cached)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache no disponible; cálculo directo")
		return compute(ctx)
	}
	if found {
		return cached, nil
	}
	v, err := compute(ctx)
	if err != nil {
		return v, err
	}
	s.Set(ctx, key, v, ttl)
	return v, nil
}
