package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/reinierstore/store-api/internal/application/auth"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain"
	"github.com/reinierstore/store-api/internal/domain/entity"
	pkgjwt "github.com/reinierstore/store-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct{ users map[string]*entity.User }

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeTokenRepo struct{ rows map[string]*entity.Token } // por ID

func (f *fakeTokenRepo) Create(_ context.Context, t *entity.Token) error {
	f.rows[t.ID] = t
	return nil
}

func (f *fakeTokenRepo) GetByValue(_ context.Context, token string) (*entity.Token, error) {
	for _, r := range f.rows {
		if r.Token == token {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeTokenRepo) Update(_ context.Context, t *entity.Token) error {
	f.rows[t.ID] = t
	return nil
}

func (f *fakeTokenRepo) DeleteByValue(_ context.Context, token string) error {
	for id, r := range f.rows {
		if r.Token == token {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteByID(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	now := time.Now()
	for id, r := range f.rows {
		if r.Expired(now) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testEmail    = "empleado@reinierstore.com"
	testPassword = "empleado1234"
)

func nuevoAuth(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": {
			ID:           "user-1",
			Email:        testEmail,
			PasswordHash: string(hash),
			Name:         "Empleado de sala",
			Role:         entity.RoleEmployee,
		},
	}}
	tokens := &fakeTokenRepo{rows: make(map[string]*entity.Token)}
	uc := auth.NewAuthUseCase(users, tokens, auth.JWTConfig{
		Secret: testSecret, ExpDays: 7, Issuer: "reinier-store-test",
	})
	return uc, users, tokens
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenVerificableYPersisteLaFila(t *testing.T) {
	uc, _, tokens := nuevoAuth(t)

	token, out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: testEmail, Password: testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, out.Success)
	assert.Equal(t, testEmail, out.User.Email)
	assert.Equal(t, entity.RoleEmployee, out.User.Role)

	// El token es un JWT válido con la identidad del usuario
	sess, err := pkgjwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, entity.RoleEmployee, sess.Role)

	// Y queda espejado en la tabla de tokens
	row, err := tokens.GetByValue(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, row, "el login debe persistir la fila revocable")
	assert.Equal(t, "user-1", row.UserID)
	assert.False(t, row.Expired(time.Now()))
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _, tokens := nuevoAuth(t)

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: testEmail, Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, tokens.rows, "un login fallido no debe persistir tokens")
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := nuevoAuth(t)

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@reinierstore.com", Password: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Session
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_TokenValido(t *testing.T) {
	uc, _, _ := nuevoAuth(t)
	token, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	sess := uc.Session(context.Background(), token)
	require.NotNil(t, sess)
	assert.Equal(t, "user-1", sess.ID)
	assert.Equal(t, testEmail, sess.Email)
	assert.Equal(t, entity.RoleEmployee, sess.Role)
}

func TestSession_FallosDevuelvenNilSinError(t *testing.T) {
	uc, _, _ := nuevoAuth(t)

	assert.Nil(t, uc.Session(context.Background(), ""), "cadena vacía: sin sesión")
	assert.Nil(t, uc.Session(context.Background(), "no.es.jwt"), "token malformado: sin sesión")

	// Firmado con otro secret
	ajeno, err := pkgjwt.Generate("otro-secret", pkgjwt.Session{UserID: "user-1"}, "x", 7)
	require.NoError(t, err)
	assert.Nil(t, uc.Session(context.Background(), ajeno), "firma ajena: sin sesión")

	// JWT válido pero sin fila en tokens (nunca emitido por Login)
	huerfano, err := pkgjwt.Generate(testSecret, pkgjwt.Session{UserID: "user-1", Role: entity.RoleEmployee}, "x", 7)
	require.NoError(t, err)
	assert.Nil(t, uc.Session(context.Background(), huerfano), "sin fila revocable: sin sesión")
}

func TestLogout_RevocaLaSesionDeInmediato(t *testing.T) {
	uc, _, tokens := nuevoAuth(t)
	token, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	require.NotNil(t, uc.Session(context.Background(), token))

	require.NoError(t, uc.Logout(context.Background(), token))

	assert.Empty(t, tokens.rows, "el logout debe eliminar la fila")
	assert.Nil(t, uc.Session(context.Background(), token),
		"el JWT sigue firmado pero la sesión debe quedar revocada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_RotaElTokenVigente(t *testing.T) {
	uc, _, _ := nuevoAuth(t)
	token, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	fresh, err := uc.Refresh(context.Background(), token)
	require.NoError(t, err)
	require.NotEmpty(t, fresh)

	assert.NotNil(t, uc.Session(context.Background(), fresh), "el token nuevo debe ser una sesión válida")
	assert.Nil(t, uc.Session(context.Background(), token), "el token anterior queda fuera de la tabla")
}

func TestRefresh_SinFilaNoEsRenovable(t *testing.T) {
	uc, _, _ := nuevoAuth(t)

	_, err := uc.Refresh(context.Background(), "token-desconocido")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Limpieza de tokens vencidos
// ──────────────────────────────────────────────────────────────────────────────

func TestPurgeExpiredTokens_EliminaSoloLasFilasVencidas(t *testing.T) {
	uc, _, tokens := nuevoAuth(t)
	vigente, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	tokens.rows["viejo"] = &entity.Token{
		ID:        "viejo",
		Token:     "token-vencido",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	n, err := uc.PurgeExpiredTokens(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), n, "solo la fila vencida debe eliminarse")
	assert.Len(t, tokens.rows, 1)
	assert.NotNil(t, uc.Session(context.Background(), vigente), "la sesión vigente sobrevive a la limpieza")
}
