package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.ModificacionRepository = (*ModificacionRepo)(nil)

const modificacionColumns = `id, proyecto_id, texto, fecha, estado`

// ModificacionRepo implementación de ModificacionRepository.
type ModificacionRepo struct {
	q Querier
}

// NewModificacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewModificacionRepository(q Querier) *ModificacionRepo {
	return &ModificacionRepo{q: q}
}

func scanModificacion(row rowScanner) (*entity.Modificacion, error) {
	var m entity.Modificacion
	if err := row.Scan(&m.ID, &m.ProyectoID, &m.Texto, &m.Fecha, &m.Estado); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una solicitud de cambio.
func (r *ModificacionRepo) Create(ctx context.Context, m *entity.Modificacion) error {
	query := `INSERT INTO modificaciones (` + modificacionColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProyectoID, m.Texto, m.Fecha, m.Estado)
	return persistErr("insert modificacion", err)
}

// GetByID obtiene una solicitud por ID; (nil, nil) si no existe.
func (r *ModificacionRepo) GetByID(ctx context.Context, id string) (*entity.Modificacion, error) {
	m, err := scanModificacion(r.q.QueryRow(ctx, `SELECT `+modificacionColumns+` FROM modificaciones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get modificacion", err)
	}
	return m, nil
}

// List lista solicitudes, opcionalmente de un proyecto, más recientes primero.
func (r *ModificacionRepo) List(ctx context.Context, f repository.ModificacionFilter) ([]*entity.Modificacion, error) {
	query := `SELECT ` + modificacionColumns + ` FROM modificaciones`
	var args []any
	if f.ProyectoID != "" {
		query += ` WHERE proyecto_id = $1`
		args = append(args, f.ProyectoID)
	}
	query += ` ORDER BY fecha DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list modificaciones", err)
	}
	defer rows.Close()
	list := []*entity.Modificacion{}
	for rows.Next() {
		m, err := scanModificacion(rows)
		if err != nil {
			return nil, persistErr("scan modificacion", err)
		}
		list = append(list, m)
	}
	return list, persistErr("list modificaciones", rows.Err())
}

// UpdateEstado cambia el estado de una solicitud.
func (r *ModificacionRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	tag, err := r.q.Exec(ctx, `UPDATE modificaciones SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return persistErr("update modificacion", err)
	}
	return notFoundIfNone(tag)
}
