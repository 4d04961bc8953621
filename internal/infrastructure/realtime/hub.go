// Package realtime distribuye eventos de cambio de datos a los clientes conectados, por canal.
package realtime

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-financeiro/internal/application/ports"
)

const defaultBuffer = 32

// Hub implementa ports.Notifier. Publish nunca bloquea: si el buffer de un suscriptor
// está lleno el evento se descarta para ese suscriptor.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*Subscription]struct{}
	buffer  int
	dropped atomic.Int64
	log     zerolog.Logger
	now     func() time.Time
}

var _ ports.Notifier = (*Hub)(nil)

// NewHub construye el hub. buffer <= 0 usa 32 eventos por suscriptor.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[*Subscription]struct{}), buffer: buffer, log: log, now: time.Now}
}

// Subscription suscripción a uno o más canales. Leer de C hasta que se cierre.
type Subscription struct {
	C        <-chan ports.Event
	ch       chan ports.Event
	channels map[string]struct{}
	hub      *Hub
	once     sync.Once
}

// Subscribe registra un suscriptor. Sin canales = todos los canales.
func (h *Hub) Subscribe(channels ...string) *Subscription {
	ch := make(chan ports.Event, h.buffer)
	s := &Subscription{C: ch, ch: ch, channels: make(map[string]struct{}, len(channels)), hub: h}
	for _, c := range channels {
		s.channels[c] = struct{}{}
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Close da de baja la suscripción y cierra C. Idempotente.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		close(s.ch)
		s.hub.mu.Unlock()
	})
}

func (s *Subscription) wants(channel string) bool {
	if len(s.channels) == 0 {
		return true
	}
	_, ok := s.channels[channel]
	return ok
}

// Publish entrega el evento a los suscriptores del canal sin bloquear al productor.
func (h *Hub) Publish(ev ports.Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = h.now()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if !s.wants(ev.Channel) {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			h.dropped.Add(1)
			h.log.Warn().Str("channel", ev.Channel).Str("type", ev.Type).Msg("suscriptor lento; evento descartado")
		}
	}
}

// Subscribers cantidad de suscriptores activos.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped eventos descartados desde el arranque.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

// ParseChannels interpreta "alertas,dashboard" descartando canales desconocidos.
func ParseChannels(raw string) []string {
	valid := make(map[string]struct{}, len(ports.Channels))
	for _, c := range ports.Channels {
		valid[c] = struct{}{}
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if _, ok := valid[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
