package repository

import (
	"context"

	"github.com/reinierstore/store-api/internal/domain/entity"
)

// SalesStockRepository define el puerto del contador de sala de ventas.
// La mutación de una transferencia se modela explícita: Create cuando el
// producto nunca ha estado en sala, Increment sobre la fila existente. Las
// ventas usan Increment con delta negativo tras verificar la cantidad con
// GetForUpdate.
type SalesStockRepository interface {
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); nil (sin error) si el
	// producto no tiene fila en sala de ventas.
	GetForUpdate(ctx context.Context, productID string) (*entity.SalesStock, error)
	Create(ctx context.Context, productID string, stock int) error
	Increment(ctx context.Context, productID string, delta int) error
}
