package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// ModificacionUseCase solicitudes de cambio: el cliente las crea, el administrador las avanza.
type ModificacionUseCase struct {
	repo     repository.ModificacionRepository
	projects repository.ProjectRepository
	run      *Runner
}

// NewModificacionUseCase construye el caso de uso.
func NewModificacionUseCase(repo repository.ModificacionRepository, projects repository.ProjectRepository, run *Runner) *ModificacionUseCase {
	return &ModificacionUseCase{repo: repo, projects: projects, run: run}
}

// Create registra la solicitud con estado Pendiente y fecha actual.
func (uc *ModificacionUseCase) Create(ctx context.Context, in dto.CreateModificacionRequest) (*dto.ModificacionResponse, error) {
	if err := ensureProject(ctx, uc.run, uc.projects, "proyecto_id", in.ProyectoID); err != nil {
		return nil, err
	}
	m := &entity.Modificacion{
		ID:         uuid.New().String(),
		ProyectoID: in.ProyectoID,
		Texto:      in.Texto,
		Fecha:      time.Now().UTC(),
		Estado:     entity.ModificacionPendiente,
	}
	if err := uc.run.Exec(ctx, "modificaciones.create", func(ctx context.Context) error {
		return uc.repo.Create(ctx, m)
	}); err != nil {
		return nil, err
	}
	return toModificacionResponse(m), nil
}

// List lista solicitudes, opcionalmente de un proyecto, más recientes primero.
func (uc *ModificacionUseCase) List(ctx context.Context, proyectoID string) ([]*dto.ModificacionResponse, error) {
	list, err := Query(ctx, uc.run, "modificaciones.list", func(ctx context.Context) ([]*entity.Modificacion, error) {
		return uc.repo.List(ctx, repository.ModificacionFilter{ProyectoID: proyectoID})
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ModificacionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toModificacionResponse(m))
	}
	return out, nil
}

// UpdateEstado avanza el estado. Retroceder devuelve domain.ErrInvalidTransition.
func (uc *ModificacionUseCase) UpdateEstado(ctx context.Context, in dto.UpdateModificacionRequest) (*dto.ModificacionResponse, error) {
	m, err := Query(ctx, uc.run, "modificaciones.get", func(ctx context.Context) (*entity.Modificacion, error) {
		return uc.repo.GetByID(ctx, in.ID)
	})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(m.Estado, in.Estado) {
		return nil, domain.ErrInvalidTransition
	}
	if m.Estado != in.Estado {
		if err := uc.run.Exec(ctx, "modificaciones.update_estado", func(ctx context.Context) error {
			return uc.repo.UpdateEstado(ctx, m.ID, in.Estado)
		}); err != nil {
			return nil, err
		}
		m.Estado = in.Estado
	}
	return toModificacionResponse(m), nil
}

func toModificacionResponse(m *entity.Modificacion) *dto.ModificacionResponse {
	return &dto.ModificacionResponse{
		ID:         m.ID,
		ProyectoID: m.ProyectoID,
		Texto:      m.Texto,
		Fecha:      m.Fecha,
		Estado:     m.Estado,
	}
}
