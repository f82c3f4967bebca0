package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/pkg/jwt"
)

// Nombres de las cookies de sesión.
const (
	CookieAccess  = "access-token"
	CookieRefresh = "refresh-token"
)

// Locals keys de la sesión en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalProjectID = "project_id"
	localSession   = "session"
)

// LoginPath destino de las redirecciones del guard de páginas.
const LoginPath = "/login"

// GuardMode decide cómo se rechaza una petición sin sesión.
type GuardMode int

const (
	// ModeAPI responde 401/403 con el envelope.
	ModeAPI GuardMode = iota
	// ModePage redirige a LoginPath.
	ModePage
)

// SessionResolver valida tokens de sesión. Lo implementa auth.AuthUseCase.
type SessionResolver interface {
	ParseAccess(token string) (jwt.Session, error)
	AccessFromRefresh(refreshToken string) (string, jwt.Session, error)
}

// CookieConfig atributos de las cookies de sesión.
type CookieConfig struct {
	Secure        bool
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

// SessionMiddleware exige una sesión: access-token válido (cookie o Bearer) o, si expiró,
// un refresh-token válido con el que se emite una nueva cookie de acceso.
func SessionMiddleware(resolver SessionResolver, cookies CookieConfig, mode GuardMode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if resolveSession(c, resolver, cookies) {
			return c.Next()
		}
		if mode == ModePage {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeUnauthorized, "sesión requerida"))
	}
}

// OptionalSession carga la sesión si existe y nunca rechaza (login por código, /login).
func OptionalSession(resolver SessionResolver, cookies CookieConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resolveSession(c, resolver, cookies)
		return c.Next()
	}
}

func resolveSession(c *fiber.Ctx, resolver SessionResolver, cookies CookieConfig) bool {
	if GetSession(c) != nil {
		return true
	}
	if tok := accessToken(c); tok != "" {
		if s, err := resolver.ParseAccess(tok); err == nil {
			setSession(c, s)
			return true
		}
	}
	refresh := c.Cookies(CookieRefresh)
	if refresh == "" {
		return false
	}
	access, s, err := resolver.AccessFromRefresh(refresh)
	if err != nil {
		return false
	}
	SetAccessCookie(c, cookies, access)
	setSession(c, s)
	return true
}

// accessToken prioriza la cookie; Authorization: Bearer queda para clientes de API.
func accessToken(c *fiber.Ctx) string {
	if tok := c.Cookies(CookieAccess); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setSession(c *fiber.Ctx, s jwt.Session) {
	c.Locals(localSession, s)
	c.Locals(LocalUserID, s.UserID)
	c.Locals(LocalRole, s.Role)
	c.Locals(LocalProjectID, s.ProjectID)
}

// SetAccessCookie escribe la cookie del access-token.
func SetAccessCookie(c *fiber.Ctx, cfg CookieConfig, token string) {
	c.Cookie(sessionCookie(cfg, CookieAccess, token, cfg.AccessMaxAge))
}

// SetSessionCookies escribe ambas cookies de sesión.
func SetSessionCookies(c *fiber.Ctx, cfg CookieConfig, tokens *dto.SessionTokens) {
	SetAccessCookie(c, cfg, tokens.AccessToken)
	c.Cookie(sessionCookie(cfg, CookieRefresh, tokens.RefreshToken, cfg.RefreshMaxAge))
}

// ClearSessionCookies expira ambas cookies (logout).
func ClearSessionCookies(c *fiber.Ctx, cfg CookieConfig) {
	for _, name := range []string{CookieAccess, CookieRefresh} {
		ck := sessionCookie(cfg, name, "", 0)
		ck.Expires = time.Unix(0, 0)
		ck.MaxAge = -1
		c.Cookie(ck)
	}
}

func sessionCookie(cfg CookieConfig, name, value string, maxAge time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// RequireRole autoriza solo a las sesiones con alguno de los roles indicados.
// Sin rol en la sesión responde 401 MISSING_ROLE; con otro rol, 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("MISSING_ROLE", "la sesión no tiene rol"))
		}
		if !hasRole(role, roles) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(CodeForbidden, "acceso denegado para el rol "+role))
		}
		return c.Next()
	}
}

// RequirePageRole es RequireRole para páginas: redirige a LoginPath en vez de responder JSON.
func RequirePageRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !hasRole(GetRole(c), roles) {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// GetSession devuelve la sesión cargada por el middleware, o nil.
func GetSession(c *fiber.Ctx) *jwt.Session {
	s, ok := c.Locals(localSession).(jwt.Session)
	if !ok {
		return nil
	}
	return &s
}

// GetUserID devuelve el UserID de la sesión.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol de la sesión.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetProjectID devuelve el proyecto vinculado a una sesión de cliente.
func GetProjectID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalProjectID).(string)
	return s
}

// scopedProject resuelve el proyecto sobre el que opera la petición. El administrador puede
// pedir cualquiera (o ninguno); el cliente solo el de su sesión, que además es el valor por defecto.
func scopedProject(c *fiber.Ctx, requested string) (string, bool) {
	if GetRole(c) == entity.RoleAdmin {
		return requested, true
	}
	bound := GetProjectID(c)
	if bound == "" {
		return "", false
	}
	if requested == "" {
		return bound, true
	}
	return bound, requested == bound
}

// RequireProjectScope rechaza con 403 a un cliente que pide un :id distinto de su proyecto.
func RequireProjectScope(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !ownsProject(c, c.Params(param)) {
			return forbidden(c)
		}
		return c.Next()
	}
}

// ownsProject indica si la sesión puede ver un recurso del proyecto projectID.
func ownsProject(c *fiber.Ctx, projectID string) bool {
	_, ok := scopedProject(c, projectID)
	return ok
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.Fail(CodeForbidden, "el proyecto no pertenece a la sesión"))
}
