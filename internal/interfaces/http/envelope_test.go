package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	apphttp "github.com/jhoicas/Proyectos-api/internal/interfaces/http"
)

func failWith(t *testing.T, res *apphttp.Responder, err error) *http.Response {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error { return res.Fail(c, err) })
	resp, e := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, e)
	return resp
}

func TestResponderFail_MapeaErroresDeDominio(t *testing.T) {
	res := apphttp.NewResponder(false, nil)
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, apphttp.CodeNotFound},
		{fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound, apphttp.CodeNotFound},
		{domain.ErrInvalidCode, http.StatusBadRequest, apphttp.CodeInvalidCode},
		{domain.ErrUnauthorized, http.StatusUnauthorized, apphttp.CodeUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden, apphttp.CodeForbidden},
		{domain.ErrDuplicate, http.StatusConflict, apphttp.CodeDuplicate},
		{domain.ErrInvalidTransition, http.StatusConflict, apphttp.CodeInvalidTransition},
		{errors.New("boom"), http.StatusInternalServerError, apphttp.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.code+"_"+tc.err.Error(), func(t *testing.T) {
			resp := failWith(t, res, tc.err)
			require.Equal(t, tc.status, resp.StatusCode)
			env := decodeEnvelope(t, resp)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Code)
		})
	}
}

func TestResponderFail_ValidacionIncluyeDetalles(t *testing.T) {
	res := apphttp.NewResponder(false, nil)
	err := &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "email", Kind: domain.FieldMissing, Message: "es requerido"},
		{Field: "monto", Kind: domain.FieldConstraint, Message: "debe ser mayor que 0"},
	}}

	resp := failWith(t, res, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, apphttp.CodeValidation, env.Code)
	require.Len(t, env.Details, 2)
	assert.Equal(t, "email", env.Details[0].Field)
	assert.Equal(t, domain.FieldMissing, env.Details[0].Kind)
}

func TestResponderFail_PersistenciaOcultaDetalleEnProduccion(t *testing.T) {
	pe := &domain.PersistenceError{Op: "projects.get", Err: errors.New("dial tcp 10.0.0.5:5432: connection refused")}

	env := decodeEnvelope(t, failWith(t, apphttp.NewResponder(false, nil), pe))
	assert.Equal(t, apphttp.CodePersistence, env.Code)
	assert.NotContains(t, env.Error, "10.0.0.5")

	env = decodeEnvelope(t, failWith(t, apphttp.NewResponder(true, nil), pe))
	assert.Contains(t, env.Error, "connection refused", "en desarrollo se expone el detalle")
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	res := apphttp.NewResponder(false, nil)
	app := fiber.New(fiber.Config{ErrorHandler: res.ErrorHandler})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/no-existe", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, apphttp.CodeNotFound, env.Code)
}
