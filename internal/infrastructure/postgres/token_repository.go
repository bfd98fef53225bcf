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

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo implementación de TokenRepository sobre PostgreSQL. Guarda el
// espejo revocable de cada JWT de sesión emitido.
type TokenRepo struct {
	q Querier
}

// NewTokenRepository construye el adaptador de tokens de sesión.
func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

// Create persiste la fila del token con su expiración explícita.
func (r *TokenRepo) Create(ctx context.Context, t *entity.Token) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tokens (id, token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Token, t.UserID, t.ExpiresAt, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// GetByValue obtiene la fila por el valor firmado. Devuelve nil si no existe.
func (r *TokenRepo) GetByValue(ctx context.Context, token string) (*entity.Token, error) {
	var t entity.Token
	err := r.q.QueryRow(ctx, `
		SELECT id, token, user_id, expires_at, created_at
		FROM tokens WHERE token = $1`, token,
	).Scan(&t.ID, &t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	return &t, nil
}

// Update reemplaza valor y expiración (rotación de sesión).
func (r *TokenRepo) Update(ctx context.Context, t *entity.Token) error {
	_, err := r.q.Exec(ctx,
		`UPDATE tokens SET token = $2, expires_at = $3 WHERE id = $1`,
		t.ID, t.Token, t.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}
	return nil
}

// DeleteByValue elimina las filas con ese valor (logout).
func (r *TokenRepo) DeleteByValue(ctx context.Context, token string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete token by value: %w", err)
	}
	return nil
}

// DeleteByID elimina una fila por ID.
func (r *TokenRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// DeleteExpired purga las filas vencidas; devuelve cuántas eliminó.
func (r *TokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return cmd.RowsAffected(), nil
}
