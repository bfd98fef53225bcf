package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse resultado del login. El token viaja en la cookie `session`,
// no en el cuerpo.
type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// SessionPayload identidad mínima expuesta por el endpoint de sesión.
type SessionPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionResponse respuesta de GET /api/empleado/auth/session.
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Session       *SessionPayload `json:"session,omitempty"`
}

// UserResponse usuario sin hash de contraseña.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
