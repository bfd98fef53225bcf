package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain/entity"
	apphttp "github.com/reinierstore/store-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	cookieAdmin    = "cookie-admin"
	cookieEmpleado = "cookie-empleado"
)

// fakeVerifier resuelve cookies conocidas a sesiones; todo lo demás es nil.
type fakeVerifier struct {
	sessions map[string]*dto.SessionPayload
}

func (f *fakeVerifier) Session(_ context.Context, token string) *dto.SessionPayload {
	return f.sessions[token]
}

func nuevoVerifier() *fakeVerifier {
	return &fakeVerifier{sessions: map[string]*dto.SessionPayload{
		cookieAdmin:    {ID: "user-admin", Email: "admin@reinierstore.com", Role: entity.RoleAdmin},
		cookieEmpleado: {ID: "user-emp", Email: "empleado@reinierstore.com", Role: entity.RoleEmployee},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware global (protección por prefijo /admin y /empleado)
//   - Algunas rutas de página y de API en cada área
//   - Un grupo con RequireSession + RequireRole para la parte admin de la API
func buildTestApp() *fiber.App {
	v := nuevoVerifier()
	app := fiber.New()
	app.Use(apphttp.SessionMiddleware(v))

	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "email": apphttp.GetEmail(c)})
	}
	app.Get("/", ok)
	app.Get("/admin/dashboard", ok)
	app.Get("/empleado/pos", ok)
	app.Get("/api/admin/historial", ok)
	app.Get("/api/empleado/auth/session", ok)

	staff := app.Group("/api/staff", apphttp.RequireSession(v))
	staff.Get("/ventas", ok)
	admin := staff.Group("/", apphttp.RequireRole(entity.RoleAdmin))
	admin.Get("/usuarios", ok)
	return app
}

// doRequest lanza un GET al path con la cookie de sesión indicada ("" = sin cookie).
func doRequest(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: visita de página sin sesión → redirección 302 al login del área.
func TestSessionMiddleware_PaginaSinSesionRedirigeAlLogin(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/admin/dashboard", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/auth/login", resp.Header.Get("Location"),
		"la página de admin debe redirigir al login de admin")

	resp2 := doRequest(t, app, "/empleado/pos", "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusFound, resp2.StatusCode)
	assert.Equal(t, "/empleado/login", resp2.Header.Get("Location"),
		"la página de empleado debe redirigir al login de empleado")
}

// Caso 2: llamada de API sin sesión → 401 JSON, nunca redirección.
func TestSessionMiddleware_APISinSesionRetorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/api/admin/historial", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED",
		"la API debe responder con el código UNAUTHORIZED, no redirigir")
}

// Caso 3: sesión válida con el rol del área → pasa y deja la identidad en locals.
func TestSessionMiddleware_SesionValidaPasa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/admin/dashboard", cookieAdmin)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin@reinierstore.com", body["email"],
		"el handler debe ver la identidad cargada por el middleware")
}

// Caso 4: EMPLOYEE en el área de admin → redirección (página) o 403 (API).
func TestSessionMiddleware_EmpleadoBloqueadoEnAreaAdmin(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, "/admin/dashboard", cookieEmpleado)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/auth/login", resp.Header.Get("Location"))

	resp2 := doRequest(t, app, "/api/admin/historial", cookieEmpleado)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
	body, _ := io.ReadAll(resp2.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 5: ADMIN puede entrar al área de empleado (multi-rol).
func TestSessionMiddleware_AdminAccedeAreaEmpleado(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/empleado/pos", cookieAdmin)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 6: las rutas exentas pasan aunque cuelguen de un prefijo protegido.
func TestSessionMiddleware_RutasExentasPasanSinCookie(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/api/empleado/auth/session", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"consultar la sesión no puede exigir sesión")
}

// Caso 7: las rutas fuera de las áreas protegidas son públicas.
func TestSessionMiddleware_RutaPublicaPasa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireSession / RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireSession_SinCookieRetorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/api/staff/ventas", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireSession_CookieInvalidaRetorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/api/staff/ventas", "cookie-desconocida")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireSession_EmpleadoAccedeRutasOperativas(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/api/staff/ventas", cookieEmpleado)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_EmpleadoBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/api/staff/usuarios", cookieEmpleado)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/api/staff/usuarios", cookieAdmin)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
