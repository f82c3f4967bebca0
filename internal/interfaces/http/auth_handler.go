package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/validation"
)

// AuthHandler maneja login, acceso por código, refresh y logout.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	cookies CookieConfig
	res     *Responder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookies CookieConfig, res *Responder) *AuthHandler {
	return &AuthHandler{uc: uc, cookies: cookies, res: res}
}

// Login godoc
// @Summary      Iniciar sesión (administrador o usuario con cuenta)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope{data=dto.SessionResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	tokens, session, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.res.Fail(c, err)
	}
	SetSessionCookies(c, h.cookies, tokens)
	return h.res.OK(c, session)
}

// Acceso godoc
// @Summary      Acceder a un proyecto con su código
// @Description  Emite una sesión de cliente ligada al proyecto. El código se normaliza (mayúsculas, sin separadores).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccesoRequest  true  "codigo"
// @Success      200   {object}  dto.Envelope{data=dto.SessionResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/auth/acceso [post]
func (h *AuthHandler) Acceso(c *fiber.Ctx) error {
	var in dto.AccesoRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	tokens, session, err := h.uc.Acceso(c.UserContext(), in, GetSession(c))
	if err != nil {
		return h.res.Fail(c, err)
	}
	SetSessionCookies(c, h.cookies, tokens)
	return h.res.OK(c, session)
}

// Refresh godoc
// @Summary      Renovar la sesión con la cookie refresh-token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.SessionResponse}
// @Failure      401  {object}  dto.Envelope
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refresh := c.Cookies(CookieRefresh)
	if refresh == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeUnauthorized, "refresh-token requerido"))
	}
	tokens, session, err := h.uc.Refresh(refresh)
	if err != nil {
		return h.res.Fail(c, err)
	}
	SetSessionCookies(c, h.cookies, tokens)
	return h.res.OK(c, session)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ClearSessionCookies(c, h.cookies)
	return h.res.Done(c, "sesión cerrada")
}

// Me godoc
// @Summary      Identidad de la sesión activa
// @Tags         auth
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.Envelope{data=dto.SessionResponse}
// @Failure      401  {object}  dto.Envelope
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeUnauthorized, "sesión requerida"))
	}
	return h.res.OK(c, auth.ToSessionResponse(*s))
}

// RegisterUser godoc
// @Summary      Crear usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateUserRequest  true  "email, password, nombre, rol"
// @Success      201   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/users [post]
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Created(c, user)
}
