package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/painel-financeiro/internal/domain"
	"github.com/jhoicas/painel-financeiro/internal/domain/entity"
	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas persistidas. Nunca se borran; solo cambia el flag de lectura.
type AlertRepo struct {
	base
}

func NewAlertRepository(q Querier, timeout time.Duration) *AlertRepo {
	return &AlertRepo{base{q: q, timeout: timeout}}
}

// Create inserta la alerta. Genera ID y fecha si vienen vacíos.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	var entityType *string
	if a.EntityType != "" {
		entityType = &a.EntityType
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (id, type, severity, title, message, entity_type, entity_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.Type, a.Severity, a.Title, a.Message, entityType, a.EntityID, a.Read, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create alert: id duplicado: %w", domain.ErrInvalidInput)
		}
		return mapError("create alert", err)
	}
	return nil
}

// List devuelve las alertas más recientes primero.
func (r *AlertRepo) List(ctx context.Context, unreadOnly bool) ([]*entity.Alert, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `SELECT id, type, severity, title, message, entity_type, entity_id, read, created_at FROM alerts`
	if unreadOnly {
		query += ` WHERE read = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("list alerts", err)
	}
	defer rows.Close()

	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		var entityType *string
		if err := rows.Scan(&a.ID, &a.Type, &a.Severity, &a.Title, &a.Message, &entityType, &a.EntityID,
			&a.Read, &a.CreatedAt); err != nil {
			return nil, mapError("scan alert", err)
		}
		a.EntityType = strOrEmpty(entityType)
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list alerts", err)
	}
	return list, nil
}

// ExistsUnread informa si hay una alerta no leída del tipo para la entidad.
func (r *AlertRepo) ExistsUnread(ctx context.Context, alertType, entityType string, entityID int64) (bool, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE type = $1 AND entity_type = $2 AND entity_id = $3 AND read = false
		)`, alertType, entityType, entityID).Scan(&exists)
	if err != nil {
		return false, mapError("exists unread alert", err)
	}
	return exists, nil
}

// SetRead cambia el flag de lectura. ErrNotFound si el id no existe.
func (r *AlertRepo) SetRead(ctx context.Context, id string, read bool) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("set alert read: %w", domain.ErrNotFound)
	}
	tag, err := r.q.Exec(ctx, `UPDATE alerts SET read = $1 WHERE id = $2`, read, id)
	if err != nil {
		return mapError("set alert read", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set alert read: %w", domain.ErrNotFound)
	}
	return nil
}
