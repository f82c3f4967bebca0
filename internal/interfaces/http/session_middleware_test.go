package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	apphttp "github.com/jhoicas/Proyectos-api/internal/interfaces/http"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	pkgjwt "github.com/jhoicas/Proyectos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testProjectID = "00000000-0000-0000-0000-0000000000a1"
	testIssuer    = "proyectos-api-test"
	testExpMin    = 60
)

var (
	testJWT     = config.JWTConfig{Secret: testJWTSecret, Expiration: testExpMin, RefreshExpiration: 2 * testExpMin, Issuer: testIssuer}
	testCookies = apphttp.CookieConfig{AccessMaxAge: time.Hour, RefreshMaxAge: 2 * time.Hour}
)

// testResolver valida tokens con el mismo secret que los tests; no necesita repositorios.
func testResolver() *auth.AuthUseCase {
	return auth.NewAuthUseCase(nil, nil, testJWT, nil, nil)
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para validar la sesión y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.SessionMiddleware(testResolver(), testCookies, apphttp.ModeAPI),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"role":       apphttp.GetRole(c),
				"user_id":    apphttp.GetUserID(c),
				"project_id": apphttp.GetProjectID(c),
			})
		},
	)
	return app
}

func signToken(t *testing.T, typ string, s pkgjwt.Session, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, typ, s, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// tokenForRole genera un Bearer access-token con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	s := pkgjwt.Session{UserID: testUserID, Role: role}
	if role == "client" {
		s = pkgjwt.Session{Role: role, ProjectID: testProjectID}
	}
	return "Bearer " + signToken(t, pkgjwt.TypeAccess, s, testExpMin)
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

// Uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_ClienteAccedeRutaAdminOCliente(t *testing.T) {
	app := buildTestApp("admin", "client")
	resp := doRequest(t, app, tokenForRole(t, "client"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_ClienteBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "client"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"client no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Token sin claim de rol → HTTP 401 MISSING_ROLE.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	tok := signToken(t, pkgjwt.TypeAccess, pkgjwt.Session{UserID: testUserID}, testExpMin)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_SinCredenciales_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestSession_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSession_RefreshTokenNoSirveComoAccess(t *testing.T) {
	app := buildTestApp("admin")
	tok := signToken(t, pkgjwt.TypeRefresh, pkgjwt.Session{UserID: testUserID, Role: "admin"}, testExpMin)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSession_CookieDeAcceso(t *testing.T) {
	app := buildTestApp("admin")
	tok := signToken(t, pkgjwt.TypeAccess, pkgjwt.Session{UserID: testUserID, Role: "admin"}, testExpMin)

	resp := doRequest(t, app, "", &http.Cookie{Name: apphttp.CookieAccess, Value: tok})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Access-token expirado + refresh-token válido → pasa y emite una nueva cookie de acceso.
func TestSession_AccessExpiradoSeRenuevaConRefresh(t *testing.T) {
	app := buildTestApp("client")
	s := pkgjwt.Session{Role: "client", ProjectID: testProjectID}
	expired := signToken(t, pkgjwt.TypeAccess, s, -1)
	refresh := signToken(t, pkgjwt.TypeRefresh, s, testExpMin)

	resp := doRequest(t, app, "",
		&http.Cookie{Name: apphttp.CookieAccess, Value: expired},
		&http.Cookie{Name: apphttp.CookieRefresh, Value: refresh},
	)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	ck := findCookie(resp, apphttp.CookieAccess)
	require.NotNil(t, ck, "debe emitirse una nueva cookie access-token")
	assert.True(t, ck.HttpOnly)

	renewed, err := pkgjwt.Parse(testJWTSecret, pkgjwt.TypeAccess, ck.Value)
	require.NoError(t, err)
	assert.Equal(t, s, renewed, "la sesión renovada conserva los mismos claims")
}

func TestSession_ModoPaginaRedirigeALogin(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		apphttp.SessionMiddleware(testResolver(), testCookies, apphttp.ModePage),
		apphttp.RequirePageRole("admin"),
		func(c *fiber.Ctx) error { return c.SendString("panel") },
	)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))

	// sesión de cliente en página de admin → también a /login
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", tokenForRole(t, "client"))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestSession_ExtraeClaimsDelCliente(t *testing.T) {
	app := buildTestApp("client")
	resp := doRequest(t, app, tokenForRole(t, "client"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testProjectID, body["project_id"])
	assert.Equal(t, "", body["user_id"], "la sesión por código no tiene usuario")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireProjectScope
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireProjectScope(t *testing.T) {
	app := fiber.New()
	app.Get("/projects/:id",
		apphttp.SessionMiddleware(testResolver(), testCookies, apphttp.ModeAPI),
		apphttp.RequireProjectScope("id"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)
	get := func(id, authHeader string) int {
		req := httptest.NewRequest(http.MethodGet, "/projects/"+id, nil)
		req.Header.Set("Authorization", authHeader)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}
	other := strings.Replace(testProjectID, "a1", "a2", 1)

	assert.Equal(t, http.StatusNoContent, get(testProjectID, tokenForRole(t, "client")))
	assert.Equal(t, http.StatusForbidden, get(other, tokenForRole(t, "client")))
	assert.Equal(t, http.StatusNoContent, get(other, tokenForRole(t, "admin")), "el admin ve cualquier proyecto")
}
