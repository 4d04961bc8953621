package repository

import (
	"context"

	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
)

// AlertRepository almacén de alertas. Solo se agregan filas; la única mutación es el flag de lectura.
// Las implementaciones no asumen acceso exclusivo: varios productores pueden crear alertas a la vez.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	List(ctx context.Context, unreadOnly bool) ([]*entity.Alert, error)
	// ExistsUnread informa si hay una alerta no leída del tipo dado para la entidad (tipo + id).
	ExistsUnread(ctx context.Context, alertType, entityType string, entityID int64) (bool, error)
	// SetRead devuelve domain.ErrNotFound si la alerta no existe.
	SetRead(ctx context.Context, id string, read bool) error
}
