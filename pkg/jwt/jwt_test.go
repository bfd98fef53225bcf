package jwt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/reinierstore/store-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "reinier-store-test"
)

var testSession = pkgjwt.Session{
	UserID: "00000000-0000-0000-0000-000000000001",
	Email:  "empleado@reinierstore.com",
	Role:   "EMPLOYEE",
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession, testIssuer, 7)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sess, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testSession.UserID, sess.UserID)
	assert.Equal(t, testSession.Email, sess.Email)
	assert.Equal(t, "EMPLOYEE", sess.Role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Vigencia de -1 día: el token nace expirado
	tok, err := pkgjwt.Generate(testSecret, testSession, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession, testIssuer, 7)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err, "firma con otro secret debe ser rechazada")
}

func TestJWT_TokenManipulado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSession, testIssuer, 7)
	require.NoError(t, err)

	// Alterar el payload invalida la firma
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	_, err = pkgjwt.Parse(testSecret, strings.Join(parts, "."))
	assert.Error(t, err, "token manipulado debe ser rechazado")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", testSession, testIssuer, 7)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "cualquier.token.aqui")
	assert.Error(t, err)
}
