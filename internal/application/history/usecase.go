package history

import (
	"context"

	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

// latestLimit entradas devueltas por el listado del historial.
const latestLimit = 100

// HistoryUseCase vista de solo lectura del historial de auditoría. Las
// entradas las insertan los propios casos de uso dentro de sus transacciones;
// el historial nunca se modifica ni se borra.
type HistoryUseCase struct {
	repo repository.HistoryRepository
}

// NewHistoryUseCase construye el caso de uso de historial.
func NewHistoryUseCase(repo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// Latest devuelve las últimas 100 entradas, descendente por timestamp.
func (uc *HistoryUseCase) Latest(ctx context.Context) ([]dto.HistoryEntryResponse, error) {
	entries, err := uc.repo.Latest(ctx, latestLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			Details:   e.Details,
			User:      e.User,
			Location:  e.Location,
			Timestamp: e.Timestamp,
		})
	}
	return out, nil
}
