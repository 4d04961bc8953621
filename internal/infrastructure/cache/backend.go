// Package cache implementa la capa de caché clave→valor con TTL por entrada.
//
// Dos backends intercambiables: MemoryBackend (un proceso, desarrollo y tests) y
// RedisBackend (producción). El Service encima serializa en JSON y degrada cualquier
// falla del backend a un miss: la caché nunca rompe una consulta.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackendClosed lo devuelven los backends usados después de Close.
var ErrBackendClosed = errors.New("cache: backend cerrado")

// Backend almacén de bytes con expiración absoluta por entrada.
// Debe soportar Get/Set/Delete concurrentes; en colisión de clave gana la última escritura.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Presets de TTL.
const (
	TTLCompanies      = time.Hour        // lista de empresas
	TTLBalances       = 15 * time.Minute // consolidado y saldos
	TTLIndicators     = 30 * time.Minute // datos derivados de KPIs
	TTLAlerts         = 5 * time.Minute  // listas de alertas
	TTLReconciliation = 20 * time.Minute
)
