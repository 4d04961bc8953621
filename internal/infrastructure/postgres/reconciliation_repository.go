package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/painel-financeiro/internal/domain/repository"
)

var _ repository.ReconciliationRepository = (*ReconciliationRepo)(nil)

// ReconciliationRepo marcas de conciliación por id de ítem sintético (banco-N, pagar-N, receber-N).
type ReconciliationRepo struct {
	base
}

func NewReconciliationRepository(q Querier, timeout time.Duration) *ReconciliationRepo {
	return &ReconciliationRepo{base{q: q, timeout: timeout}}
}

// Mark registra la marca. Idempotente: una segunda marca conserva la fecha original.
func (r *ReconciliationRepo) Mark(ctx context.Context, m *repository.ReconciliationMark) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.MarkedAt.IsZero() {
		m.MarkedAt = time.Now()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO reconciliation_marks (id, item_id, marked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id) DO UPDATE SET item_id = EXCLUDED.item_id
		RETURNING id, marked_at`, m.ID, m.ItemID, m.MarkedAt).Scan(&m.ID, &m.MarkedAt)
	if err != nil {
		return mapError("mark reconciled", err)
	}
	return nil
}

// ListMarks devuelve item_id → fecha de marca para los ids pedidos que estén marcados.
func (r *ReconciliationRepo) ListMarks(ctx context.Context, itemIDs []string) (map[string]time.Time, error) {
	marks := make(map[string]time.Time)
	if len(itemIDs) == 0 {
		return marks, nil
	}
	ctx, cancel := r.bound(ctx)
	defer cancel()

	rows, err := r.q.Query(ctx, `SELECT item_id, marked_at FROM reconciliation_marks WHERE item_id = ANY($1)`, itemIDs)
	if err != nil {
		return nil, mapError("list reconciliation marks", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, mapError("scan reconciliation mark", err)
		}
		marks[id] = at
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list reconciliation marks", err)
	}
	return marks, nil
}
