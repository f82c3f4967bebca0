package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Proyectos-api/internal/domain"
)

func TestPersistErr_Clasificacion(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		transient bool
	}{
		{"fk violada", &pgconn.PgError{Code: "23503"}, false},
		{"check violado", &pgconn.PgError{Code: "23514"}, false},
		{"sintaxis", &pgconn.PgError{Code: "42601"}, false},
		{"conexión", &pgconn.PgError{Code: "08006"}, true},
		{"serialización", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"envuelto", fmt.Errorf("scan: %w", &pgconn.PgError{Code: "08001"}), true},
		{"cancelado", context.Canceled, false},
		{"desconocido", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := persistErr("op", tc.err)
			var pe *domain.PersistenceError
			assert.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.transient, pe.Transient)
			assert.Equal(t, tc.transient, domain.IsTransient(err))
		})
	}
}

func TestPersistErr_UnicidadEsDuplicado(t *testing.T) {
	err := persistErr("projects.create", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Nil(t, persistErr("op", nil))
}

func TestNotFoundIfNone(t *testing.T) {
	assert.ErrorIs(t, notFoundIfNone(pgconn.NewCommandTag("DELETE 0")), domain.ErrNotFound)
	assert.NoError(t, notFoundIfNone(pgconn.NewCommandTag("UPDATE 1")))
}
