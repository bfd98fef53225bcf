package repository

import (
	"context"

	"github.com/reinierstore/store-api/internal/domain/entity"
)

// HistoryRepository define el puerto del historial de auditoría (solo inserción y lectura).
type HistoryRepository interface {
	Create(ctx context.Context, e *entity.HistoryEntry) error
	// Latest devuelve las últimas entradas, descendente por timestamp.
	Latest(ctx context.Context, limit int) ([]*entity.HistoryEntry, error)
}
