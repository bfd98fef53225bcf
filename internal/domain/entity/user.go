package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// User representa un usuario del back-office o del panel de empleado.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Name         string
	Role         string // ADMIN, EMPLOYEE
	CreatedAt    time.Time
}

// Token es el espejo revocable en base de datos del JWT de sesión.
// Permite invalidar sesiones del lado del servidor antes de su expiración natural.
type Token struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired indica si la fila del token ya venció.
func (t Token) Expired(now time.Time) bool { return t.ExpiresAt.Before(now) }
