package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// ModificacionFilter filtros opcionales para listar solicitudes de cambio.
type ModificacionFilter struct {
	ProyectoID string
}

// ModificacionRepository define el puerto de persistencia para Modificacion.
type ModificacionRepository interface {
	Create(ctx context.Context, m *entity.Modificacion) error
	GetByID(ctx context.Context, id string) (*entity.Modificacion, error)
	List(ctx context.Context, f ModificacionFilter) ([]*entity.Modificacion, error)
	UpdateEstado(ctx context.Context, id, estado string) error
}
