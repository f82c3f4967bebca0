package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	cfg, err := PoolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "app", Password: "p@ss/word",
		DBName: "proyectos", SSLMode: "disable", MaxConns: 8, MinConns: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "db.local", cfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), cfg.ConnConfig.Port)
	assert.Equal(t, "p@ss/word", cfg.ConnConfig.Password)
	assert.Equal(t, int32(8), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
	assert.NotNil(t, cfg.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg, err := PoolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@hosted.example.com:6543/main?sslmode=require",
		Host:        "ignorado",
	})
	require.NoError(t, err)
	assert.Equal(t, "hosted.example.com", cfg.ConnConfig.Host)
	assert.Equal(t, "main", cfg.ConnConfig.Database)
}

func TestPoolConfig_MinMayorQueMaxSeIgnora(t *testing.T) {
	cfg, err := PoolConfig(config.DBConfig{Host: "h", Port: 5432, DBName: "d", SSLMode: "disable", MaxConns: 2, MinConns: 5})
	require.NoError(t, err)
	assert.Equal(t, int32(2), cfg.MaxConns)
	assert.Equal(t, int32(0), cfg.MinConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := PoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}

func TestLookupIPv4(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = lookupIPv4(context.Background(), "::1")
	assert.ErrorIs(t, err, errNoIPv4)
}
