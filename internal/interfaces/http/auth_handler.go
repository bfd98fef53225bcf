package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reinierstore/store-api/internal/application/auth"
	"github.com/reinierstore/store-api/internal/application/dto"
	"github.com/reinierstore/store-api/internal/domain/entity"
)

// AuthHandler maneja login, sesión, renovación y logout por cookie.
type AuthHandler struct {
	uc            *auth.AuthUseCase
	cookieMaxAge  time.Duration
	secureCookies bool
}

// NewAuthHandler construye el handler de auth. secureCookies debe ser true en
// producción para que la cookie viaje solo por HTTPS.
func NewAuthHandler(uc *auth.AuthUseCase, expDays int, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		uc:            uc,
		cookieMaxAge:  time.Duration(expDays) * 24 * time.Hour,
		secureCookies: secureCookies,
	}
}

// EmployeeLogin godoc
// @Summary      Iniciar sesión de empleado
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/empleado/login [post]
func (h *AuthHandler) EmployeeLogin(c *fiber.Ctx) error {
	return h.login(c, "")
}

// AdminLogin godoc
// @Summary      Iniciar sesión de administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/auth/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, entity.RoleAdmin)
}

// login verifica credenciales, y si requiredRole no está vacío exige ese rol.
// Con éxito deja el token en la cookie de sesión; el cuerpo nunca lo incluye.
func (h *AuthHandler) login(c *fiber.Ctx, requiredRole string) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	token, out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	if requiredRole != "" && out.User.Role != requiredRole {
		// Rol insuficiente para el área: la sesión recién emitida se revoca
		_ = h.uc.Logout(c.Context(), token)
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol de administrador"})
	}
	h.setSessionCookie(c, token)
	return c.JSON(out)
}

// Session godoc
// @Summary      Consultar la sesión de la cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/empleado/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess := h.uc.Session(c.Context(), c.Cookies(SessionCookie))
	return c.JSON(dto.SessionResponse{Authenticated: sess != nil, Session: sess})
}

// Refresh godoc
// @Summary      Renovar la sesión vigente
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/empleado/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	fresh, err := h.uc.Refresh(c.Context(), c.Cookies(SessionCookie))
	if err != nil {
		h.clearSessionCookie(c)
		return respondError(c, err)
	}
	h.setSessionCookie(c, fresh)
	return c.JSON(dto.MessageResponse{Message: "sesión renovada"})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/empleado/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), c.Cookies(SessionCookie)); err != nil {
		return respondError(c, err)
	}
	h.clearSessionCookie(c)
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// ListUsers godoc
// @Summary      Listar usuarios (sin hashes)
// @Tags         users
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		Expires:  time.Now().Add(h.cookieMaxAge),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
