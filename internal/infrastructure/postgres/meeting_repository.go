package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.MeetingRepository = (*MeetingRepo)(nil)

const meetingColumns = `id, proyecto_id, titulo, fecha, hora, duracion, tipo, estado, asistentes, notas, link_reunion, created_at, updated_at`

// MeetingRepo implementación de MeetingRepository. asistentes es TEXT[].
type MeetingRepo struct {
	q Querier
}

// NewMeetingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMeetingRepository(q Querier) *MeetingRepo {
	return &MeetingRepo{q: q}
}

func scanMeeting(row rowScanner) (*entity.Meeting, error) {
	var m entity.Meeting
	if err := row.Scan(
		&m.ID, &m.ProyectoID, &m.Titulo, &m.Fecha, &m.Hora, &m.Duracion, &m.Tipo, &m.Estado,
		&m.Asistentes, &m.Notas, &m.LinkReunion, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Create persiste una reunión.
func (r *MeetingRepo) Create(ctx context.Context, m *entity.Meeting) error {
	query := `
		INSERT INTO meetings (` + meetingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProyectoID, m.Titulo, m.Fecha, m.Hora, m.Duracion, m.Tipo, m.Estado,
		nonNilStrings(m.Asistentes), m.Notas, m.LinkReunion, m.CreatedAt, m.UpdatedAt,
	)
	return persistErr("insert meeting", err)
}

// GetByID obtiene una reunión por ID; (nil, nil) si no existe.
func (r *MeetingRepo) GetByID(ctx context.Context, id string) (*entity.Meeting, error) {
	m, err := scanMeeting(r.q.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get meeting", err)
	}
	return m, nil
}

// List lista reuniones, opcionalmente de un proyecto, en orden cronológico.
func (r *MeetingRepo) List(ctx context.Context, f repository.MeetingFilter) ([]*entity.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings`
	var args []any
	if f.ProyectoID != "" {
		query += ` WHERE proyecto_id = $1`
		args = append(args, f.ProyectoID)
	}
	query += ` ORDER BY fecha, hora`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list meetings", err)
	}
	defer rows.Close()
	list := []*entity.Meeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, persistErr("scan meeting", err)
		}
		list = append(list, m)
	}
	return list, persistErr("list meetings", rows.Err())
}

// Update actualiza una reunión.
func (r *MeetingRepo) Update(ctx context.Context, m *entity.Meeting) error {
	query := `
		UPDATE meetings SET titulo = $2, fecha = $3, hora = $4, duracion = $5, tipo = $6, estado = $7,
			asistentes = $8, notas = $9, link_reunion = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Titulo, m.Fecha, m.Hora, m.Duracion, m.Tipo, m.Estado,
		nonNilStrings(m.Asistentes), m.Notas, m.LinkReunion, m.UpdatedAt,
	)
	if err != nil {
		return persistErr("update meeting", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina una reunión.
func (r *MeetingRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return persistErr("delete meeting", err)
	}
	return notFoundIfNone(tag)
}
