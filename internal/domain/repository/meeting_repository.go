package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// MeetingFilter filtros opcionales para listar reuniones.
type MeetingFilter struct {
	ProyectoID string
}

// MeetingRepository define el puerto de persistencia para Meeting.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entity.Meeting) error
	GetByID(ctx context.Context, id string) (*entity.Meeting, error)
	List(ctx context.Context, f MeetingFilter) ([]*entity.Meeting, error)
	Update(ctx context.Context, meeting *entity.Meeting) error
	Delete(ctx context.Context, id string) error
}
