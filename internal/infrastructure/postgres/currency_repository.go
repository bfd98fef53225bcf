package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

// CurrencyRepo implementación de CurrencyRepository sobre PostgreSQL.
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador de monedas.
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

// List devuelve todas las monedas, la base primero.
func (r *CurrencyRepo) List(ctx context.Context) ([]*entity.Currency, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, name, symbol, exchange_rate, is_default, updated_at
		FROM currencies
		ORDER BY is_default DESC, code ASC`)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Currency
	for rows.Next() {
		var c entity.Currency
		if err := rows.Scan(&c.Code, &c.Name, &c.Symbol, &c.ExchangeRate, &c.IsDefault, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// GetDefault devuelve la moneda base de la tienda.
func (r *CurrencyRepo) GetDefault(ctx context.Context) (*entity.Currency, error) {
	var c entity.Currency
	err := r.q.QueryRow(ctx, `
		SELECT code, name, symbol, exchange_rate, is_default, updated_at
		FROM currencies WHERE is_default = true`,
	).Scan(&c.Code, &c.Name, &c.Symbol, &c.ExchangeRate, &c.IsDefault, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default currency: %w", err)
	}
	return &c, nil
}

// UpdateRate actualiza la tasa de cambio de una moneda existente.
func (r *CurrencyRepo) UpdateRate(ctx context.Context, code string, rate decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE currencies SET exchange_rate = $2, updated_at = now() WHERE code = $1`,
		code, rate,
	)
	if err != nil {
		return fmt.Errorf("update currency rate: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
