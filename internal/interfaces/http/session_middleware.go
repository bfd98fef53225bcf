package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain/entity"
)

// SessionCookie nombre de la cookie de sesión.
const SessionCookie = "session"

// Locals keys para la identidad de la sesión en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// sessionVerifier es el contrato mínimo que necesita el middleware para
// verificar la cookie. Lo implementa *auth.AuthUseCase; la interfaz permite
// fakes en los tests.
type sessionVerifier interface {
	Session(ctx context.Context, token string) *dto.SessionPayload
}

// protectedArea asocia un prefijo de rutas con los roles que pueden entrar y
// el login al que se redirige una visita de página sin sesión.
type protectedArea struct {
	prefix    string
	roles     []string
	loginPath string
}

// El orden importa: el primer prefijo que calce decide el área.
var areas = []protectedArea{
	{prefix: "/admin", roles: []string{entity.RoleAdmin}, loginPath: "/admin/auth/login"},
	{prefix: "/empleado", roles: []string{entity.RoleAdmin, entity.RoleEmployee}, loginPath: "/empleado/login"},
}

// Rutas exentas aunque cuelguen de un prefijo protegido: los logins y los
// endpoints de sesión (consultar y renovar son quienes la establecen).
var exemptPaths = map[string]bool{
	"/api/empleado/login":        true,
	"/api/admin/auth/login":      true,
	"/api/empleado/auth/session": true,
	"/api/empleado/auth/refresh": true,
	// Cerrar sesión con cookie ya inválida debe limpiar, no rebotar con 401
	"/api/empleado/logout": true,
	"/admin/auth/login":    true,
	"/empleado/login":      true,
}

// SessionMiddleware protege los prefijos /admin y /empleado (con o sin /api
// delante) verificando la cookie de sesión. Las visitas de página sin sesión o
// con rol insuficiente se redirigen al login de su área; las llamadas de API
// reciben 401/403 JSON. Deja la identidad en c.Locals para los handlers.
func SessionMiddleware(verifier sessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if exemptPaths[path] {
			return c.Next()
		}

		area, isAPI := matchArea(path)
		if area == nil {
			return c.Next()
		}

		sess := verifier.Session(c.Context(), c.Cookies(SessionCookie))
		if sess == nil {
			if isAPI {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code: "UNAUTHORIZED", Message: "sesión requerida",
				})
			}
			return c.Redirect(area.loginPath, fiber.StatusFound)
		}
		if !roleAllowed(sess.Role, area.roles) {
			if isAPI {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code: "FORBIDDEN", Message: "rol sin acceso a esta área",
				})
			}
			return c.Redirect(area.loginPath, fiber.StatusFound)
		}

		c.Locals(LocalUserID, sess.ID)
		c.Locals(LocalEmail, sess.Email)
		c.Locals(LocalRole, sess.Role)
		return c.Next()
	}
}

// RequireSession autentica un grupo de API por cookie: sin sesión válida
// responde 401 JSON. Deja la identidad en c.Locals para los handlers.
func RequireSession(verifier sessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := verifier.Session(c.Context(), c.Cookies(SessionCookie))
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "sesión requerida",
			})
		}
		c.Locals(LocalUserID, sess.ID)
		c.Locals(LocalEmail, sess.Email)
		c.Locals(LocalRole, sess.Role)
		return c.Next()
	}
}

// RequireRole restringe un grupo ya autenticado a los roles dados. Debe usarse
// DESPUÉS de SessionMiddleware (necesita LocalRole).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "sesión requerida",
			})
		}
		if !roleAllowed(role, roles) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "rol sin permiso para esta operación",
			})
		}
		return c.Next()
	}
}

// matchArea devuelve el área protegida del path, o nil si es público. El
// segundo valor indica si la llamada es de API (subárbol /api).
func matchArea(path string) (*protectedArea, bool) {
	probe := path
	isAPI := strings.HasPrefix(path, "/api/")
	if isAPI {
		probe = strings.TrimPrefix(path, "/api")
	}
	for i := range areas {
		if probe == areas[i].prefix || strings.HasPrefix(probe, areas[i].prefix+"/") {
			return &areas[i], isAPI
		}
	}
	return nil, isAPI
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// GetUserID devuelve el UserID de la sesión (después del middleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmail devuelve el email de la sesión (después del middleware).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol de la sesión (después del middleware).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
