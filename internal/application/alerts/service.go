package alerts

import (
	"context"
	"fmt"

	"github.com/jhoicas/painel-financeiro/internal/application/dto"
	"github.com/jhoicas/painel-financeiro/internal/application/ports"
	"github.com/jhoicas/painel-financeiro/internal/domain"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
	"github.com/jhoicas/painel-financeiro/internal/infrastructure/cache"
)

// Service lectura de alertas y cambio del flag de lectura.
type Service struct {
	alerts   repository.AlertRepository
	cache    *cache.Service
	notifier ports.Notifier
}

// NewService construye el servicio.
func NewService(alerts repository.AlertRepository, c *cache.Service, notifier ports.Notifier) *Service {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &Service{alerts: alerts, cache: c, notifier: notifier}
}

// ListUnread alertas no leídas, más recientes primero (5 min en caché).
func (s *Service) ListUnread(ctx context.Context) ([]dto.AlertDTO, error) {
	out, err := cache.GetOrSet(ctx, s.cache, UnreadCacheKey, cache.TTLAlerts, func(ctx context.Context) ([]dto.AlertDTO, error) {
		return s.list(ctx, true)
	})
	if err != nil {
		return nil, fmt.Errorf("alerts.ListUnread: %w", err)
	}
	return out, nil
}

// ListAll todas las alertas, sin caché.
func (s *Service) ListAll(ctx context.Context) ([]dto.AlertDTO, error) {
	out, err := s.list(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("alerts.ListAll: %w", err)
	}
	return out, nil
}

func (s *Service) list(ctx context.Context, unreadOnly bool) ([]dto.AlertDTO, error) {
	rows, err := s.alerts.List(ctx, unreadOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toDTO(a))
	}
	return out, nil
}

// MarkRead cambia el flag de lectura. Devuelve domain.ErrNotFound si la alerta no existe.
func (s *Service) MarkRead(ctx context.Context, id string, read bool) error {
	if id == "" {
		return fmt.Errorf("alerts.MarkRead: id vacío: %w", domain.ErrInvalidInput)
	}
	if err := s.alerts.SetRead(ctx, id, read); err != nil {
		return fmt.Errorf("alerts.MarkRead: %w", err)
	}
	s.cache.Delete(ctx, UnreadCacheKey)
	s.notifier.Publish(ports.Event{
		Channel: ports.ChannelAlerts,
		Type:    "updated",
		Data:    map[string]any{"id": id, "lido": read},
	})
	return nil
}

func toDTO(a *entity.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:         a.ID,
		Type:       a.Type,
		Severity:   a.Severity,
		Title:      a.Title,
		Message:    a.Message,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Read:       a.Read,
		CreatedAt:  a.CreatedAt,
	}
}
