package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, nombre, descripcion, cliente_id, codigo, checklists, fecha_estimada, avance, estado, created_at, updated_at`

// ProjectRepo implementación de ProjectRepository. checklists se guarda como JSONB.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var p entity.Project
	if err := row.Scan(
		&p.ID, &p.Nombre, &p.Descripcion, &p.ClienteID, &p.Codigo, &p.Checklists,
		&p.FechaEstimada, &p.Avance, &p.Estado, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if p.Checklists == nil {
		p.Checklists = []entity.Task{}
	}
	return &p, nil
}

func nonNilTasks(tasks []entity.Task) []entity.Task {
	if tasks == nil {
		return []entity.Task{}
	}
	return tasks
}

// Create persiste un proyecto. Un código repetido devuelve domain.ErrDuplicate.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.ClienteID, p.Codigo, nonNilTasks(p.Checklists),
		p.FechaEstimada, p.Avance, p.Estado, p.CreatedAt, p.UpdatedAt,
	)
	return persistErr("insert project", err)
}

func (r *ProjectRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr(op, err)
	}
	return p, nil
}

// GetByID obtiene un proyecto por ID; (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return r.getOne(ctx, "get project", "id = $1", id)
}

// GetByCode obtiene un proyecto por su código de acceso (ya normalizado).
func (r *ProjectRepo) GetByCode(ctx context.Context, code string) (*entity.Project, error) {
	return r.getOne(ctx, "get project by code", "codigo = $1", code)
}

// List lista proyectos, opcionalmente de un cliente, más recientes primero.
func (r *ProjectRepo) List(ctx context.Context, f repository.ProjectFilter) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if f.ClienteID != "" {
		query += ` WHERE cliente_id = $1`
		args = append(args, f.ClienteID)
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list projects", err)
	}
	defer rows.Close()
	list := []*entity.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, persistErr("scan project", err)
		}
		list = append(list, p)
	}
	return list, persistErr("list projects", rows.Err())
}

// Update actualiza los campos editables. codigo, checklists y avance no se tocan aquí.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET nombre = $2, descripcion = $3, cliente_id = $4, fecha_estimada = $5,
			estado = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.ClienteID, p.FechaEstimada, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		return persistErr("update project", err)
	}
	return notFoundIfNone(tag)
}

// UpdateChecklist reemplaza checklists y avance en un único UPDATE; devuelve la fila resultante
// o (nil, nil) si el proyecto no existe.
func (r *ProjectRepo) UpdateChecklist(ctx context.Context, id string, tasks []entity.Task, avance int) (*entity.Project, error) {
	query := `
		UPDATE projects SET checklists = $2, avance = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + projectColumns
	p, err := scanProject(r.q.QueryRow(ctx, query, id, nonNilTasks(tasks), avance))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("update project checklist", err)
	}
	return p, nil
}

// Delete elimina un proyecto; pagos, reuniones, mensajes y modificaciones caen en cascada.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return persistErr("delete project", err)
	}
	return notFoundIfNone(tag)
}
