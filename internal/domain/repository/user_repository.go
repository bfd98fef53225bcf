package repository

import (
	"context"

	"github.com/reinierstore/store-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	// FindByEmail devuelve nil (sin error) si no hay usuario con ese email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}

// TokenRepository persiste el espejo revocable de los JWT de sesión.
type TokenRepository interface {
	Create(ctx context.Context, t *entity.Token) error
	// GetByValue devuelve nil (sin error) si el token no existe.
	GetByValue(ctx context.Context, token string) (*entity.Token, error)
	// Update reemplaza el valor y la expiración de una fila (rotación de sesión).
	Update(ctx context.Context, t *entity.Token) error
	DeleteByValue(ctx context.Context, token string) error
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
