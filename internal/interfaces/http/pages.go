package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// Inicio de cada rol tras iniciar sesión.
const (
	AdminHome   = "/admin"
	ClienteHome = "/cliente"
)

// registerPages sirve el panel (/admin) y el portal (/cliente) desde StaticDir detrás del guard
// de páginas, y /login sin sesión.
func registerPages(app *fiber.App, deps RouterDeps) {
	dir := deps.StaticDir

	app.Get(LoginPath, OptionalSession(deps.AuthUC, deps.Cookies), func(c *fiber.Ctx) error {
		if home := homeFor(GetRole(c)); home != "" {
			return c.Redirect(home, fiber.StatusFound)
		}
		return c.SendFile(filepath.Join(dir, "login.html"))
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(LoginPath, fiber.StatusFound)
	})

	pageSession := SessionMiddleware(deps.AuthUC, deps.Cookies, ModePage)
	static := fiber.Static{Index: "index.html", Compress: true}

	app.Group(AdminHome, pageSession, RequirePageRole(entity.RoleAdmin)).
		Static("/", filepath.Join(dir, "admin"), static)
	app.Group(ClienteHome, pageSession, RequirePageRole(entity.RoleClient)).
		Static("/", filepath.Join(dir, "cliente"), static)
}

func homeFor(role string) string {
	switch role {
	case entity.RoleAdmin:
		return AdminHome
	case entity.RoleClient:
		return ClienteHome
	default:
		return ""
	}
}
