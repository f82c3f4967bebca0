package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

const messageColumns = `id, project_id, sender, text, timestamp, read`

// MessageRepo implementación de MessageRepository.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

func scanMessage(row rowScanner) (*entity.Message, error) {
	var m entity.Message
	if err := row.Scan(&m.ID, &m.ProjectID, &m.Sender, &m.Text, &m.Timestamp, &m.Read); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un mensaje.
func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) error {
	query := `INSERT INTO messages (` + messageColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProjectID, m.Sender, m.Text, m.Timestamp, m.Read)
	return persistErr("insert message", err)
}

// GetByID obtiene un mensaje por ID; (nil, nil) si no existe.
func (r *MessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	m, err := scanMessage(r.q.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get message", err)
	}
	return m, nil
}

// List lista mensajes, opcionalmente de un proyecto, en orden cronológico.
func (r *MessageRepo) List(ctx context.Context, f repository.MessageFilter) ([]*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages`
	var args []any
	if f.ProjectID != "" {
		query += ` WHERE project_id = $1`
		args = append(args, f.ProjectID)
	}
	query += ` ORDER BY timestamp`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list messages", err)
	}
	defer rows.Close()
	list := []*entity.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, persistErr("scan message", err)
		}
		list = append(list, m)
	}
	return list, persistErr("list messages", rows.Err())
}

// Update actualiza texto y estado de lectura.
func (r *MessageRepo) Update(ctx context.Context, m *entity.Message) error {
	tag, err := r.q.Exec(ctx, `UPDATE messages SET text = $2, read = $3 WHERE id = $1`, m.ID, m.Text, m.Read)
	if err != nil {
		return persistErr("update message", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina un mensaje.
func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return persistErr("delete message", err)
	}
	return notFoundIfNone(tag)
}

// MarkRead marca leídos, en un solo UPDATE, los mensajes no leídos de ids enviados por sender.
func (r *MessageRepo) MarkRead(ctx context.Context, ids []string, sender, projectID string) (int64, error) {
	query := `
		UPDATE messages SET read = true
		WHERE id = ANY($1::uuid[]) AND sender = $2 AND read = false
			AND ($3 = '' OR project_id::text = $3)`
	tag, err := r.q.Exec(ctx, query, ids, sender, projectID)
	if err != nil {
		return 0, persistErr("mark messages read", err)
	}
	return tag.RowsAffected(), nil
}
