package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

// RegisterUseCase calcula el estado de caja del día y persiste el cierre
// diario. El cierre lo dispara el cron de las 23:59 o un POST manual.
type RegisterUseCase struct {
	saleRepo     repository.SaleRepository
	registerRepo repository.CashRegisterRepository
}

// NewRegisterUseCase construye el caso de uso de caja.
func NewRegisterUseCase(saleRepo repository.SaleRepository, registerRepo repository.CashRegisterRepository) *RegisterUseCase {
	return &RegisterUseCase{saleRepo: saleRepo, registerRepo: registerRepo}
}

// Today devuelve número y monto de las ventas completadas del día en curso.
func (uc *RegisterUseCase) Today(ctx context.Context) (*dto.CashRegisterStatusResponse, error) {
	from, to := dayBounds(time.Now())
	count, total, err := uc.saleRepo.SummaryBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.CashRegisterStatusResponse{TotalSales: count, TotalAmount: total}, nil
}

// Snapshot persiste el cierre de caja del día en curso.
func (uc *RegisterUseCase) Snapshot(ctx context.Context) error {
	now := time.Now()
	from, to := dayBounds(now)
	count, total, err := uc.saleRepo.SummaryBetween(ctx, from, to)
	if err != nil {
		return err
	}
	return uc.registerRepo.Create(ctx, &entity.CashRegister{
		ID:          uuid.New().String(),
		Date:        now,
		TotalSales:  count,
		TotalAmount: total,
		CreatedAt:   now,
	})
}

// History devuelve los últimos cierres de caja persistidos, más recientes
// primero. limit <= 0 usa el valor por defecto.
func (uc *RegisterUseCase) History(ctx context.Context, limit int) ([]dto.CashRegisterSnapshotResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := uc.registerRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashRegisterSnapshotResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CashRegisterSnapshotResponse{
			ID:          r.ID,
			Date:        r.Date,
			TotalSales:  r.TotalSales,
			TotalAmount: r.TotalAmount,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

const defaultHistoryLimit = 30

// dayBounds devuelve el inicio y el fin del día local de t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
