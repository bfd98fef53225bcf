package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL. Las líneas
// devueltas se guardan serializadas en la columna products (JSONB), como en el
// esquema original de la tienda.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste una solicitud de devolución.
func (r *ReturnRepo) Create(ctx context.Context, req *entity.ReturnRequest) error {
	lines, err := json.Marshal(req.Lines)
	if err != nil {
		return fmt.Errorf("marshal return lines: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO return_requests (id, sale_id, products, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		req.ID, req.SaleID, lines, req.Total, req.Status, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return request: %w", err)
	}
	return nil
}

// GetByID devuelve la solicitud, o nil si no existe.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.ReturnRequest, error) {
	var req entity.ReturnRequest
	var lines []byte
	err := r.q.QueryRow(ctx, `
		SELECT id, sale_id, products, total, status, created_at
		FROM return_requests WHERE id = $1`, id,
	).Scan(&req.ID, &req.SaleID, &lines, &req.Total, &req.Status, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return request: %w", err)
	}
	if err := json.Unmarshal(lines, &req.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal return lines: %w", err)
	}
	return &req, nil
}

// UpdateStatus cambia el estado de la solicitud.
func (r *ReturnRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE return_requests SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update return status: %w", err)
	}
	return nil
}

// List devuelve todas las solicitudes, más recientes primero.
func (r *ReturnRepo) List(ctx context.Context) ([]*entity.ReturnRequest, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, products, total, status, created_at
		FROM return_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list return requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReturnRequest
	for rows.Next() {
		var req entity.ReturnRequest
		var lines []byte
		if err := rows.Scan(&req.ID, &req.SaleID, &lines, &req.Total, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan return request: %w", err)
		}
		if err := json.Unmarshal(lines, &req.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal return lines: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}
