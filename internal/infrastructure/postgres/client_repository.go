package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// rowScanner lo cumplen pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const clientColumns = `id, nombre, rubro, email, telefono, direccion, notas, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row rowScanner) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.Nombre, &c.Rubro, &c.Email, &c.Telefono, &c.Direccion, &c.Notas, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Rubro, c.Email, c.Telefono, c.Direccion, c.Notas, c.CreatedAt, c.UpdatedAt,
	)
	return persistErr("insert client", err)
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get client", err)
	}
	return c, nil
}

// List lista los clientes, más recientes primero.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, persistErr("list clients", err)
	}
	defer rows.Close()
	list := []*entity.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, persistErr("scan client", err)
		}
		list = append(list, c)
	}
	return list, persistErr("list clients", rows.Err())
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET nombre = $2, rubro = $3, email = $4, telefono = $5, direccion = $6,
			notas = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Rubro, c.Email, c.Telefono, c.Direccion, c.Notas, c.UpdatedAt,
	)
	if err != nil {
		return persistErr("update client", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina un cliente; sus proyectos caen por ON DELETE CASCADE.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return persistErr("delete client", err)
	}
	return notFoundIfNone(tag)
}
