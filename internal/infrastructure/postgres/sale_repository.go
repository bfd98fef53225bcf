package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y sus líneas.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, total, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Total, s.PaymentMethod, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, l := range s.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_products (sale_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			s.ID, l.ProductID, l.Quantity, l.Price,
		)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con líneas, o nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, total, payment_method, status, created_at, updated_at
		FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.Total, &s.PaymentMethod, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	lines, err := r.linesFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	s.Lines = lines[id]
	return &s, nil
}

// List devuelve las últimas ventas (descendente por fecha) con sus líneas.
func (r *SaleRepo) List(ctx context.Context, limit int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, total, payment_method, status, created_at, updated_at
		FROM sales ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Total, &s.PaymentMethod, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Lines = lines[s.ID]
	}
	return list, nil
}

// linesFor carga las líneas (con nombre de producto) de un conjunto de ventas.
func (r *SaleRepo) linesFor(ctx context.Context, saleIDs []string) (map[string][]entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sp.sale_id, sp.product_id, p.name, sp.quantity, sp.price
		FROM sale_products sp
		JOIN products p ON p.id = sp.product_id
		WHERE sp.sale_id = ANY($1)`, saleIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.SaleLine)
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.Price); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out[l.SaleID] = append(out[l.SaleID], l)
	}
	return out, rows.Err()
}

// Update corrige total, método de pago y estado.
func (r *SaleRepo) Update(ctx context.Context, id string, total decimal.Decimal, paymentMethod, status string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE sales SET total = $2, payment_method = $3, status = $4, updated_at = now()
		WHERE id = $1`,
		id, total, paymentMethod, status,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado de la venta.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// Delete elimina la venta y sus líneas (ON DELETE CASCADE en sale_products).
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// SummaryBetween cuenta y suma las ventas completadas del rango [from, to].
func (r *SaleRepo) SummaryBetween(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	var count int
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE created_at BETWEEN $1 AND $2 AND status = $3`,
		from, to, entity.SaleStatusCompleted,
	).Scan(&count, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sales summary: %w", err)
	}
	return count, total, nil
}
