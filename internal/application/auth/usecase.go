package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	"github.com/reinierstore/store-api/internal/domain/repository"
	"github.com/reinierstore/store-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para la emisión de sesiones.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// AuthUseCase casos de uso de sesión: login, verificación, rotación y logout.
// Cada JWT emitido se espeja en la tabla tokens; la verificación consulta esa
// tabla, de modo que el logout revoca la sesión aunque el JWT siga siendo
// criptográficamente válido.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokenRepo: tokenRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, firma el JWT de sesión y persiste la fila
// revocable con su expiración explícita. Devuelve el token para la cookie.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (string, *dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Session{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	row := &entity.Token{
		ID:        uuid.New().String(),
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.AddDate(0, 0, uc.jwtCfg.ExpDays),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.Create(ctx, row); err != nil {
		return "", nil, err
	}

	return token, &dto.LoginResponse{Success: true, User: *toUserResponse(user)}, nil
}

// Session verifica el token de la cookie. Cualquier fallo (firma, expiración,
// token revocado, cadena vacía) devuelve nil sin error: "sin sesión", para que
// los callers redirijan al login de forma uniforme.
func (uc *AuthUseCase) Session(ctx context.Context, token string) *dto.SessionPayload {
	if token == "" {
		return nil
	}
	sess, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil
	}
	// Revocación del lado del servidor: sin fila en tokens no hay sesión,
	// aunque la firma siga vigente.
	row, err := uc.tokenRepo.GetByValue(ctx, token)
	if err != nil || row == nil || row.Expired(time.Now()) {
		return nil
	}
	return &dto.SessionPayload{ID: sess.UserID, Email: sess.Email, Role: sess.Role}
}

// Refresh rota una sesión vigente: firma un JWT nuevo y actualiza la fila con
// la nueva expiración. Si la fila no existe o ya venció, la sesión no es
// renovable y la fila vencida se elimina.
func (uc *AuthUseCase) Refresh(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	row, err := uc.tokenRepo.GetByValue(ctx, token)
	if err != nil {
		return "", err
	}
	if row == nil {
		return "", domain.ErrUnauthorized
	}
	now := time.Now()
	if row.Expired(now) {
		_ = uc.tokenRepo.DeleteByID(ctx, row.ID)
		return "", domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, row.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUnauthorized
	}
	fresh, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Session{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return "", err
	}
	row.Token = fresh
	row.ExpiresAt = now.AddDate(0, 0, uc.jwtCfg.ExpDays)
	if err := uc.tokenRepo.Update(ctx, row); err != nil {
		return "", err
	}
	return fresh, nil
}

// Logout elimina la fila del token; la cookie la limpia el handler. Con la
// fila eliminada, Session deja de aceptar ese JWT de inmediato.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.tokenRepo.DeleteByValue(ctx, token)
}

// PurgeExpiredTokens elimina las filas de tokens ya vencidas. Lo invoca el
// job nocturno del scheduler; devuelve cuántas filas se eliminaron.
func (uc *AuthUseCase) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return uc.tokenRepo.DeleteExpired(ctx)
}

// ListUsers devuelve los usuarios sin hash de contraseña (vista de admin).
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
