package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// MessageFilter filtros opcionales para listar mensajes.
type MessageFilter struct {
	ProjectID string
}

// MessageRepository define el puerto de persistencia para Message.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	List(ctx context.Context, f MessageFilter) ([]*entity.Message, error)
	Update(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id string) error
	// MarkRead marca como leídos los mensajes no leídos de ids enviados por sender.
	// projectID vacío no restringe por proyecto. Devuelve cuántos cambiaron; los ya leídos no cuentan.
	MarkRead(ctx context.Context, ids []string, sender, projectID string) (int64, error)
}
