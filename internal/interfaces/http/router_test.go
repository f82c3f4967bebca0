package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Proyectos-api/internal/interfaces/http"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type memUsers struct {
	byEmail map[string]*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *memUsers) UpdatePassword(context.Context, string, string) error { return nil }

type memClients struct {
	mu   sync.Mutex
	rows map[string]*entity.Client
}

func (r *memClients) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[c.ID] = c
	return nil
}

func (r *memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id], nil
}

func (r *memClients) List(context.Context) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Client, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	return out, nil
}

func (r *memClients) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[c.ID] = c
	return nil
}

func (r *memClients) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// memPayments solo responde GetByID; el router no necesita más para estas pruebas.
type memPayments struct {
	repository.PaymentRepository
	rows map[string]*entity.Payment
}

func (r *memPayments) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	return r.rows[id], nil
}

// ─── App completa ────────────────────────────────────────────────────────────

const (
	adminEmail    = "admin@example.com"
	adminPassword = "clave-segura-1"
	unknownID     = "3f1b6a4e-8c2d-4e7a-9b1f-2a3c4d5e6f70"
	ownPaymentID  = "5a0d9c1e-2b3f-4a5b-8c6d-7e8f9a0b1c21"
	otherPayment  = "5a0d9c1e-2b3f-4a5b-8c6d-7e8f9a0b1c22"
)

func buildRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	return buildRouterAppWithHealth(t, usecase.NewHealthUseCase(nil, config.AppConfig{Env: "test"}))
}

func buildRouterAppWithHealth(t *testing.T, health *usecase.HealthUseCase) *fiber.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	users := &memUsers{byEmail: map[string]*entity.User{
		adminEmail: {ID: testUserID, Email: adminEmail, PasswordHash: string(hash), Role: entity.RoleAdmin, Status: "active"},
	}}

	payments := &memPayments{rows: map[string]*entity.Payment{
		ownPaymentID: {ID: ownPaymentID, ProyectoID: testProjectID, Monto: decimal.NewFromInt(100), Estado: entity.PaymentPagado},
		otherPayment: {ID: otherPayment, ProyectoID: unknownID, Monto: decimal.NewFromInt(200), Estado: entity.PaymentPendiente},
	}}

	run := usecase.NewRunner(logger.Nop(), config.RetryConfig{MaxRetries: 1})
	res := apphttp.NewResponder(false, logger.Nop())
	app := fiber.New(fiber.Config{ErrorHandler: res.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    auth.NewAuthUseCase(users, nil, testJWT, run, logger.Nop()),
		ClientUC:  usecase.NewClientUseCase(&memClients{rows: map[string]*entity.Client{}}, run),
		PaymentUC: usecase.NewPaymentUseCase(payments, nil, run),
		HealthUC:  health,
		Responder: res,
		Cookies:   testCookies,
		RateLimit: config.RateLimitConfig{Max: 1000, WindowSeconds: 60},
		Log:       logger.Nop(),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, target, body, authHeader string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ─── Health ──────────────────────────────────────────────────────────────────

func TestRouter_HealthPublico(t *testing.T) {
	app := buildRouterApp(t)
	resp := call(t, app, http.MethodGet, "/api/v1/health", "", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.APIVersion, resp.Header.Get("API-Version"))
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "test", data["environment"])
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestRouter_HealthSinBaseDeDatos(t *testing.T) {
	app := buildRouterAppWithHealth(t, usecase.NewHealthUseCase(downPinger{}, config.AppConfig{Env: "test"}))
	resp := call(t, app, http.MethodGet, "/api/v1/health", "", "")

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, apphttp.CodeUnavailable, env.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "unhealthy", data["status"])
}

// ─── Autorización por rol ────────────────────────────────────────────────────

// Todas las rutas de administración rechazan una sesión de cliente con 403.
func TestRouter_ClienteBloqueadoEnRutasDeAdmin(t *testing.T) {
	app := buildRouterApp(t)
	client := tokenForRole(t, "client")
	paths := []struct{ method, target string }{
		{http.MethodGet, "/api/v1/clients"},
		{http.MethodPost, "/api/v1/clients"},
		{http.MethodPut, "/api/v1/clients"},
		{http.MethodDelete, "/api/v1/clients?id=" + unknownID},
		{http.MethodGet, "/api/v1/clients/" + unknownID},
		{http.MethodGet, "/api/v1/projects"},
		{http.MethodPost, "/api/v1/projects"},
		{http.MethodPut, "/api/v1/projects"},
		{http.MethodDelete, "/api/v1/projects?id=" + unknownID},
		{http.MethodPut, "/api/v1/projects/" + testProjectID + "/checklist"},
		{http.MethodPatch, "/api/v1/projects/" + testProjectID + "/checklist/0"},
		{http.MethodPost, "/api/v1/payments"},
		{http.MethodPut, "/api/v1/payments"},
		{http.MethodDelete, "/api/v1/payments?id=" + unknownID},
		{http.MethodPost, "/api/v1/meetings"},
		{http.MethodPut, "/api/v1/meetings"},
		{http.MethodDelete, "/api/v1/meetings?id=" + unknownID},
		{http.MethodPut, "/api/v1/messages"},
		{http.MethodDelete, "/api/v1/messages?id=" + unknownID},
		{http.MethodPut, "/api/v1/modificaciones"},
		{http.MethodPost, "/api/v1/users"},
		{http.MethodGet, "/api/v1/dashboard"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.target, func(t *testing.T) {
			resp := call(t, app, p.method, p.target, "", client)
			require.Equal(t, http.StatusForbidden, resp.StatusCode)
			assert.Equal(t, apphttp.CodeForbidden, decodeEnvelope(t, resp).Code)
		})
	}
}

func TestRouter_SinSesionRetorna401(t *testing.T) {
	app := buildRouterApp(t)
	for _, target := range []string{"/api/v1/clients", "/api/v1/projects", "/api/v1/messages", "/api/v1/auth/me"} {
		resp := call(t, app, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
	}
}

// Un cliente no puede leer ni escribir en un proyecto que no es el de su sesión.
func TestRouter_ClienteFueraDeSuProyecto(t *testing.T) {
	app := buildRouterApp(t)
	client := tokenForRole(t, "client")
	other := unknownID

	cases := []struct{ method, target, body string }{
		{http.MethodGet, "/api/v1/projects/" + other, ""},
		{http.MethodGet, "/api/v1/projects/" + other + "/report", ""},
		{http.MethodGet, "/api/v1/payments?proyecto_id=" + other, ""},
		{http.MethodGet, "/api/v1/meetings?proyecto_id=" + other, ""},
		{http.MethodGet, "/api/v1/messages?project_id=" + other, ""},
		{http.MethodPost, "/api/v1/messages", `{"project_id":"` + other + `","text":"hola"}`},
		{http.MethodGet, "/api/v1/modificaciones?proyecto_id=" + other, ""},
		{http.MethodPost, "/api/v1/modificaciones", `{"proyecto_id":"` + other + `","texto":"cambiar logo"}`},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			resp := call(t, app, tc.method, tc.target, tc.body, client)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

// Un pago de otro proyecto y un id inexistente responden igual al cliente.
func TestRouter_PagoAjenoIndistinguibleDeInexistente(t *testing.T) {
	app := buildRouterApp(t)
	client := tokenForRole(t, "client")

	own := call(t, app, http.MethodGet, "/api/v1/payments/"+ownPaymentID, "", client)
	require.Equal(t, http.StatusOK, own.StatusCode)

	foreign := call(t, app, http.MethodGet, "/api/v1/payments/"+otherPayment, "", client)
	missing := call(t, app, http.MethodGet, "/api/v1/payments/"+unknownID, "", client)
	assert.Equal(t, http.StatusNotFound, foreign.StatusCode)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	foreignEnv, missingEnv := decodeEnvelope(t, foreign), decodeEnvelope(t, missing)
	assert.Equal(t, missingEnv.Code, foreignEnv.Code)
	assert.Equal(t, missingEnv.Error, foreignEnv.Error)

	admin := call(t, app, http.MethodGet, "/api/v1/payments/"+otherPayment, "", tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusOK, admin.StatusCode)
}

func TestRouter_AdminNoCreaModificaciones(t *testing.T) {
	app := buildRouterApp(t)
	body := `{"proyecto_id":"` + testProjectID + `","texto":"x"}`
	resp := call(t, app, http.MethodPost, "/api/v1/modificaciones", body, tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ─── Validación ──────────────────────────────────────────────────────────────

func TestRouter_IDInvalidoRetorna400(t *testing.T) {
	app := buildRouterApp(t)
	admin := tokenForRole(t, "admin")

	resp := call(t, app, http.MethodGet, "/api/v1/clients/no-es-uuid", "", admin)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidID, decodeEnvelope(t, resp).Code)

	resp = call(t, app, http.MethodDelete, "/api/v1/clients?id=42", "", admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_CrearClienteIncompletoDevuelveDetalles(t *testing.T) {
	app := buildRouterApp(t)
	resp := call(t, app, http.MethodPost, "/api/v1/clients", `{"nombre":"Ana","email":"no-es-email"}`, tokenForRole(t, "admin"))

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, apphttp.CodeValidation, env.Code)
	fields := map[string]string{}
	for _, d := range env.Details {
		fields[d.Field] = d.Kind
	}
	assert.Equal(t, domain.FieldMissing, fields["rubro"])
	assert.Equal(t, domain.FieldMissing, fields["telefono"])
	assert.Equal(t, domain.FieldConstraint, fields["email"])
}

func TestRouter_CampoDesconocidoSeRechaza(t *testing.T) {
	app := buildRouterApp(t)
	body := `{"nombre":"Ana","rubro":"Retail","email":"ana@example.com","telefono":"555","color":"azul"}`
	resp := call(t, app, http.MethodPost, "/api/v1/clients", body, tokenForRole(t, "admin"))

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	require.NotEmpty(t, env.Details)
	assert.Equal(t, domain.FieldUnknown, env.Details[0].Kind)
}

// ─── Flujo de clientes ───────────────────────────────────────────────────────

func TestRouter_ClientesCRUD(t *testing.T) {
	app := buildRouterApp(t)
	admin := tokenForRole(t, "admin")

	body := `{"nombre":"Ana Pérez","rubro":"Retail","email":"ana@example.com","telefono":"+57 300 000"}`
	resp := call(t, app, http.MethodPost, "/api/v1/clients", body, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	require.True(t, env.Success)
	id := env.Data.(map[string]interface{})["id"].(string)

	resp = call(t, app, http.MethodGet, "/api/v1/clients/"+id, "", admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana Pérez", decodeEnvelope(t, resp).Data.(map[string]interface{})["nombre"])

	resp = call(t, app, http.MethodPut, "/api/v1/clients", `{"id":"`+id+`","rubro":"Moda"}`, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeEnvelope(t, resp).Data.(map[string]interface{})
	assert.Equal(t, "Moda", data["rubro"])
	assert.Equal(t, "Ana Pérez", data["nombre"], "los campos no enviados se conservan")

	resp = call(t, app, http.MethodDelete, "/api/v1/clients?id="+id, "", admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Message)

	resp = call(t, app, http.MethodGet, "/api/v1/clients/"+id, "", admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/v1/clients?id="+id, "", admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "borrar dos veces responde 404")
}

// ─── Auth ────────────────────────────────────────────────────────────────────

func TestAuth_LoginEmiteCookiesYMeLasLee(t *testing.T) {
	app := buildRouterApp(t)
	body := `{"email":"Admin@Example.com","password":"` + adminPassword + `"}`
	resp := call(t, app, http.MethodPost, "/api/v1/auth/login", body, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	access := findCookie(resp, apphttp.CookieAccess)
	refresh := findCookie(resp, apphttp.CookieRefresh)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "admin", env.Data.(map[string]interface{})["rol"])

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieAccess, Value: access.Value})
	me, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, me.StatusCode)
	var out struct {
		Data dto.SessionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(me.Body).Decode(&out))
	assert.Equal(t, testUserID, out.Data.UserID)
}

func TestAuth_LoginPasswordIncorrecto(t *testing.T) {
	app := buildRouterApp(t)
	resp := call(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"`+adminEmail+`","password":"otra-clave"}`, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, findCookie(resp, apphttp.CookieAccess))
}

func TestAuth_LogoutExpiraCookies(t *testing.T) {
	app := buildRouterApp(t)
	resp := call(t, app, http.MethodPost, "/api/v1/auth/logout", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ck := findCookie(resp, apphttp.CookieAccess)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
}

func TestAuth_RefreshSinCookie(t *testing.T) {
	app := buildRouterApp(t)
	resp := call(t, app, http.MethodPost, "/api/v1/auth/refresh", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_AccesoCodigoMalFormado(t *testing.T) {
	app := buildRouterApp(t)
	resp := call(t, app, http.MethodPost, "/api/v1/auth/acceso", `{"codigo":"AB"}`, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	require.NotEmpty(t, env.Details)
	assert.Equal(t, "codigo", env.Details[0].Field)
}

func TestAuth_AccesoConSesionDeAdminProhibido(t *testing.T) {
	app := buildRouterApp(t)
	resp := call(t, app, http.MethodPost, "/api/v1/auth/acceso", `{"codigo":"ABCD2345"}`, tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_RutaInexistente404(t *testing.T) {
	app := buildRouterApp(t)
	resp := call(t, app, http.MethodGet, "/api/v1/no-existe", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apphttp.CodeNotFound, decodeEnvelope(t, resp).Code)
}
