package postgres

import (
	"context"
	"fmt"

	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación de HistoryRepository sobre la tabla historial.
// Solo inserta y lee; el historial nunca se modifica.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador del historial.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create añade una entrada al historial.
func (r *HistoryRepo) Create(ctx context.Context, e *entity.HistoryEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO historial (id, action, details, "user", location, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Action, e.Details, e.User, e.Location, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// Latest devuelve las últimas entradas, descendente por timestamp.
func (r *HistoryRepo) Latest(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, action, details, "user", location, timestamp
		FROM historial ORDER BY timestamp DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Details, &e.User, &e.Location, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
