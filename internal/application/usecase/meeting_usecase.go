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

// MeetingUseCase casos de uso de reuniones.
type MeetingUseCase struct {
	repo     repository.MeetingRepository
	projects repository.ProjectRepository
	run      *Runner
}

// NewMeetingUseCase construye el caso de uso.
func NewMeetingUseCase(repo repository.MeetingRepository, projects repository.ProjectRepository, run *Runner) *MeetingUseCase {
	return &MeetingUseCase{repo: repo, projects: projects, run: run}
}

// Create agenda una reunión. Estado por defecto Programada.
func (uc *MeetingUseCase) Create(ctx context.Context, in dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	fecha, err := parseDate("fecha", in.Fecha)
	if err != nil {
		return nil, err
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.MeetingProgramada
	}
	asistentes := in.Asistentes
	if asistentes == nil {
		asistentes = []string{}
	}
	now := time.Now()
	m := &entity.Meeting{
		ID:          uuid.New().String(),
		ProyectoID:  in.ProyectoID,
		Titulo:      in.Titulo,
		Fecha:       fecha,
		Hora:        in.Hora,
		Duracion:    in.Duracion,
		Tipo:        in.Tipo,
		Estado:      estado,
		Asistentes:  asistentes,
		Notas:       in.Notas,
		LinkReunion: in.LinkReunion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := checkLink(m); err != nil {
		return nil, err
	}
	if err := ensureProject(ctx, uc.run, uc.projects, "proyecto_id", in.ProyectoID); err != nil {
		return nil, err
	}
	if err := uc.run.Exec(ctx, "meetings.create", func(ctx context.Context) error {
		return uc.repo.Create(ctx, m)
	}); err != nil {
		return nil, err
	}
	return toMeetingResponse(m), nil
}

func checkLink(m *entity.Meeting) error {
	if !m.LinkAllowed() {
		return domain.NewFieldError("link_reunion", domain.FieldConstraint, "solo las reuniones virtuales llevan link")
	}
	return nil
}

// GetByID obtiene una reunión o domain.ErrNotFound.
func (uc *MeetingUseCase) GetByID(ctx context.Context, id string) (*dto.MeetingResponse, error) {
	m, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMeetingResponse(m), nil
}

func (uc *MeetingUseCase) get(ctx context.Context, id string) (*entity.Meeting, error) {
	m, err := Query(ctx, uc.run, "meetings.get", func(ctx context.Context) (*entity.Meeting, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// List lista reuniones, opcionalmente de un proyecto, en orden cronológico.
func (uc *MeetingUseCase) List(ctx context.Context, proyectoID string) ([]*dto.MeetingResponse, error) {
	list, err := Query(ctx, uc.run, "meetings.list", func(ctx context.Context) ([]*entity.Meeting, error) {
		return uc.repo.List(ctx, repository.MeetingFilter{ProyectoID: proyectoID})
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MeetingResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMeetingResponse(m))
	}
	return out, nil
}

// Update aplica los campos enviados y revalida la coherencia tipo/link sobre el resultado.
func (uc *MeetingUseCase) Update(ctx context.Context, in dto.UpdateMeetingRequest) (*dto.MeetingResponse, error) {
	m, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Titulo != nil {
		m.Titulo = *in.Titulo
	}
	if in.Fecha != nil {
		fecha, err := parseDate("fecha", *in.Fecha)
		if err != nil {
			return nil, err
		}
		m.Fecha = fecha
	}
	if in.Hora != nil {
		m.Hora = *in.Hora
	}
	if in.Duracion != nil {
		m.Duracion = *in.Duracion
	}
	if in.Tipo != nil {
		m.Tipo = *in.Tipo
	}
	if in.Estado != nil {
		m.Estado = *in.Estado
	}
	if in.Asistentes != nil {
		m.Asistentes = *in.Asistentes
	}
	if in.Notas != nil {
		m.Notas = *in.Notas
	}
	if in.LinkReunion != nil {
		m.LinkReunion = *in.LinkReunion
	}
	if err := checkLink(m); err != nil {
		return nil, err
	}
	m.UpdatedAt = time.Now()
	if err := uc.run.Exec(ctx, "meetings.update", func(ctx context.Context) error {
		return uc.repo.Update(ctx, m)
	}); err != nil {
		return nil, err
	}
	return toMeetingResponse(m), nil
}

// Delete elimina una reunión.
func (uc *MeetingUseCase) Delete(ctx context.Context, id string) error {
	return uc.run.Exec(ctx, "meetings.delete", func(ctx context.Context) error {
		return uc.repo.Delete(ctx, id)
	})
}

func toMeetingResponse(m *entity.Meeting) *dto.MeetingResponse {
	asistentes := m.Asistentes
	if asistentes == nil {
		asistentes = []string{}
	}
	return &dto.MeetingResponse{
		ID:          m.ID,
		ProyectoID:  m.ProyectoID,
		Titulo:      m.Titulo,
		Fecha:       formatDate(&m.Fecha),
		Hora:        m.Hora,
		Duracion:    m.Duracion,
		Tipo:        m.Tipo,
		Estado:      m.Estado,
		Asistentes:  asistentes,
		Notas:       m.Notas,
		LinkReunion: m.LinkReunion,
	}
}
