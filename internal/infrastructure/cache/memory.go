package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryBackend backend en memoria. Las entradas vencidas se eliminan al leerlas (sin barrido en segundo plano).
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryBackend construye el backend con el reloj del sistema.
func NewMemoryBackend() *MemoryBackend {
	return NewMemoryBackendWithClock(time.Now)
}

// NewMemoryBackendWithClock permite inyectar el reloj (tests de expiración).
func NewMemoryBackendWithClock(now func() time.Time) *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]memoryEntry), now: now}
}

// Get devuelve el valor si existe y no venció.
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	e, ok := b.entries[key]
	b.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !b.now().Before(e.expiresAt) {
		b.mu.Lock()
		// otra goroutine pudo reescribir la clave entre ambos locks
		if cur, ok := b.entries[key]; ok && !b.now().Before(cur.expiresAt) {
			delete(b.entries, key)
		}
		b.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set guarda una copia del valor con expiración absoluta now+ttl.
func (b *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	b.mu.Lock()
	b.entries[key] = memoryEntry{value: cp, expiresAt: b.now().Add(ttl)}
	b.mu.Unlock()
	return nil
}

// Delete elimina la clave (no falla si no existe).
func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	delete(b.entries, key)
	b.mu.Unlock()
	return nil
}

// Clear vacía el backend.
func (b *MemoryBackend) Clear(_ context.Context) error {
	b.mu.Lock()
	b.entries = make(map[string]memoryEntry)
	b.mu.Unlock()
	return nil
}

// Len cantidad de entradas almacenadas, incluidas las vencidas aún no leídas.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
