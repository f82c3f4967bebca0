package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier guarda cada Exec; failAt > 0 hace fallar esa llamada.
type recordingQuerier struct {
	execs  []string
	failAt int
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	if q.failAt == len(q.execs) {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no usado")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func TestMigrate_AplicaEnOrden(t *testing.T) {
	q := &recordingQuerier{}
	require.NoError(t, Migrate(context.Background(), q))
	require.Len(t, q.execs, len(migrations))
	assert.Contains(t, q.execs[0], "CREATE TABLE IF NOT EXISTS clients")
	assert.Contains(t, q.execs[1], "CREATE TABLE IF NOT EXISTS projects")
}

func TestMigrate_CortaEnElPrimerError(t *testing.T) {
	q := &recordingQuerier{failAt: 2}
	err := Migrate(context.Background(), q)
	assert.ErrorContains(t, err, "02_create_projects")
	assert.Len(t, q.execs, 2)
}

func TestMigrations_CascadasEnLaBase(t *testing.T) {
	for _, table := range []string{"payments", "meetings", "messages", "modificaciones"} {
		found := false
		for _, m := range migrations {
			idx := strings.Index(m.sql, "CREATE TABLE IF NOT EXISTS "+table)
			if idx < 0 {
				continue
			}
			found = true
			assert.Contains(t, m.sql[idx:], "REFERENCES projects (id) ON DELETE CASCADE", table)
		}
		assert.True(t, found, table)
	}
	assert.Contains(t, createProjectsUp, "REFERENCES clients (id) ON DELETE CASCADE")
	assert.Contains(t, createProjectsUp, "uq_projects_codigo")
}
