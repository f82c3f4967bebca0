package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "proyectos-api", Version: "1.0.0", Out: &buf})

	log.Component("http").Info().Str("path", "/api/v1/health").Msg("ok")

	line := lastLine(t, &buf)
	assert.Equal(t, "proyectos-api", line["service"])
	assert.Equal(t, "1.0.0", line["version"])
	assert.Equal(t, "http", line["component"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "WARN", Out: &buf})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.Equal(t, "visible", lastLine(t, &buf)["message"])
}

func TestNew_NivelDesconocidoEsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verboso", Out: &buf})

	log.Debug().Msg("descartado")
	log.Info().Msg("visible")
	assert.Equal(t, "visible", lastLine(t, &buf)["message"])
}
