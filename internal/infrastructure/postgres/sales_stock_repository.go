package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

var _ repository.SalesStockRepository = (*SalesStockRepo)(nil)

// SalesStockRepo implementación de SalesStockRepository sobre la tabla
// almacen_ventas (usable con pool o tx).
type SalesStockRepo struct {
	q Querier
}

// NewSalesStockRepository construye el adaptador del contador de sala de ventas.
func NewSalesStockRepository(q Querier) *SalesStockRepo {
	return &SalesStockRepo{q: q}
}

// GetForUpdate obtiene el contador de sala de un producto y bloquea la fila
// (SELECT FOR UPDATE); nil si nunca se ha transferido. Usar dentro de una
// transacción.
func (r *SalesStockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.SalesStock, error) {
	query := `SELECT product_id, stock, updated_at FROM almacen_ventas WHERE product_id = $1 FOR UPDATE`
	var s entity.SalesStock
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.Stock, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales stock: %w", err)
	}
	return &s, nil
}

// Create inserta la fila de sala de ventas de un producto con su stock inicial.
func (r *SalesStockRepo) Create(ctx context.Context, productID string, stock int) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO almacen_ventas (product_id, stock, updated_at) VALUES ($1, $2, now())`,
		productID, stock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales stock: %w", err)
	}
	return nil
}

// Increment suma delta (puede ser negativo para ventas) al contador existente.
func (r *SalesStockRepo) Increment(ctx context.Context, productID string, delta int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE almacen_ventas SET stock = stock + $2, updated_at = now() WHERE product_id = $1`,
		productID, delta,
	)
	if err != nil {
		return fmt.Errorf("increment sales stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
