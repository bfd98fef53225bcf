package repository

import (
	"context"
	"time"

	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleRepository define el puerto de persistencia de ventas y sus líneas.
type SaleRepository interface {
	// Create inserta la venta y sus líneas.
	Create(ctx context.Context, s *entity.Sale) error
	// GetByID devuelve la venta con líneas, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve las últimas ventas (descendente por fecha) con líneas.
	List(ctx context.Context, limit int) ([]*entity.Sale, error)
	Update(ctx context.Context, id string, total decimal.Decimal, paymentMethod, status string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// SummaryBetween cuenta y suma las ventas completadas en el rango [from, to].
	SummaryBetween(ctx context.Context, from, to time.Time) (count int, total decimal.Decimal, err error)
}

// ReturnRepository define el puerto de solicitudes de devolución.
type ReturnRepository interface {
	Create(ctx context.Context, r *entity.ReturnRequest) error
	GetByID(ctx context.Context, id string) (*entity.ReturnRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// List devuelve todas las solicitudes, más recientes primero.
	List(ctx context.Context) ([]*entity.ReturnRequest, error)
}

// CashRegisterRepository persiste los cierres de caja diarios.
type CashRegisterRepository interface {
	Create(ctx context.Context, r *entity.CashRegister) error
	List(ctx context.Context, limit int) ([]*entity.CashRegister, error)
}
