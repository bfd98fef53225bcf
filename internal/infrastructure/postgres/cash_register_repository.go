package postgres

import (
	"context"
	"fmt"

	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo implementación de CashRegisterRepository sobre PostgreSQL.
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador de cierres de caja.
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

// Create persiste el cierre de caja de un día. La columna date es única:
// repetir el cierre del mismo día devuelve ErrDuplicate.
func (r *CashRegisterRepo) Create(ctx context.Context, c *entity.CashRegister) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cash_registers (id, date, total_sales, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Date, c.TotalSales, c.TotalAmount, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cash register: %w", err)
	}
	return nil
}

// List devuelve los últimos cierres de caja, el más reciente primero.
func (r *CashRegisterRepo) List(ctx context.Context, limit int) ([]*entity.CashRegister, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, date, total_sales, total_amount, created_at
		FROM cash_registers
		ORDER BY date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list cash registers: %w", err)
	}
	defer rows.Close()

	var out []*entity.CashRegister
	for rows.Next() {
		var c entity.CashRegister
		if err := rows.Scan(&c.ID, &c.Date, &c.TotalSales, &c.TotalAmount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash register: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
