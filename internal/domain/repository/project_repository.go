package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// ProjectFilter filtros opcionales para listar proyectos.
type ProjectFilter struct {
	ClienteID string
}

// ProjectRepository define el puerto de persistencia para Project (DIP).
type ProjectRepository interface {
	// Create devuelve domain.ErrDuplicate si el código ya existe.
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	GetByCode(ctx context.Context, code string) (*entity.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*entity.Project, error)
	// Update persiste los campos editables; no toca checklists, avance ni código.
	Update(ctx context.Context, project *entity.Project) error
	// UpdateChecklist reemplaza la lista completa y el avance en una sola escritura.
	UpdateChecklist(ctx context.Context, id string, tasks []entity.Task, avance int) (*entity.Project, error)
	Delete(ctx context.Context, id string) error
}
