package repository

import (
	"context"
	"time"
)

// ReconciliationMark marca manual de conciliación sobre un ítem sintético (banco-N, pagar-N, receber-N).
type ReconciliationMark struct {
	ID       string
	ItemID   string
	MarkedAt time.Time
}

// ReconciliationRepository persiste las marcas de conciliación.
type ReconciliationRepository interface {
	// Mark es idempotente: marcar dos veces el mismo ítem conserva la primera fecha.
	Mark(ctx context.Context, mark *ReconciliationMark) error
	// ListMarks devuelve itemID → fecha de marca para los ítems pedidos que estén marcados.
	ListMarks(ctx context.Context, itemIDs []string) (map[string]time.Time, error)
}
