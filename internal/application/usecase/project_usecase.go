package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/progress"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// maxCodeAttempts cuántas veces se regenera el código ante una colisión de unicidad.
const maxCodeAttempts = 5

// ProjectUseCase casos de uso de proyectos: CRUD, checklist/avance y acceso por código.
type ProjectUseCase struct {
	repo     repository.ProjectRepository
	clients  repository.ClientRepository
	payments repository.PaymentRepository
	reports  ProjectReportGenerator
	run      *Runner
	newCode  func() (string, error)
}

// NewProjectUseCase construye el caso de uso. reports puede ser nil si no se exponen reportes.
func NewProjectUseCase(
	repo repository.ProjectRepository,
	clients repository.ClientRepository,
	payments repository.PaymentRepository,
	reports ProjectReportGenerator,
	run *Runner,
) *ProjectUseCase {
	return &ProjectUseCase{
		repo:     repo,
		clients:  clients,
		payments: payments,
		reports:  reports,
		run:      run,
		newCode:  progress.GenerateProjectCode,
	}
}

// Create crea el proyecto asignando id, código de acceso y avance inicial.
// Si el código choca con uno existente se genera otro, hasta maxCodeAttempts veces.
func (uc *ProjectUseCase) Create(ctx context.Context, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if err := uc.ensureClient(ctx, in.ClienteID); err != nil {
		return nil, err
	}
	fecha, err := parseOptionalDate("fecha_estimada", in.FechaEstimada)
	if err != nil {
		return nil, err
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.ProjectPendiente
	}
	tasks := toTasks(in.Checklists)
	now := time.Now()
	project := &entity.Project{
		ID:            uuid.New().String(),
		Nombre:        in.Nombre,
		Descripcion:   in.Descripcion,
		ClienteID:     in.ClienteID,
		Checklists:    tasks,
		FechaEstimada: fecha,
		Avance:        progress.ComputeProgress(tasks),
		Estado:        estado,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 1; ; attempt++ {
		code, err := uc.newCode()
		if err != nil {
			return nil, err
		}
		project.Codigo = code
		err = uc.run.Exec(ctx, "projects.create", func(ctx context.Context) error {
			return uc.repo.Create(ctx, project)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == maxCodeAttempts {
			return nil, err
		}
	}
	return toProjectResponse(project), nil
}

func (uc *ProjectUseCase) ensureClient(ctx context.Context, clienteID string) error {
	client, err := Query(ctx, uc.run, "clients.get", func(ctx context.Context) (*entity.Client, error) {
		return uc.clients.GetByID(ctx, clienteID)
	})
	if err != nil {
		return err
	}
	if client == nil {
		return domain.NewFieldError("cliente_id", domain.FieldConstraint, "el cliente no existe")
	}
	return nil
}

// GetByID obtiene un proyecto o domain.ErrNotFound.
func (uc *ProjectUseCase) GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

func (uc *ProjectUseCase) get(ctx context.Context, id string) (*entity.Project, error) {
	p, err := Query(ctx, uc.run, "projects.get", func(ctx context.Context) (*entity.Project, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetByCode canjea un código de acceso (6 a 8 caracteres) por su proyecto.
func (uc *ProjectUseCase) GetByCode(ctx context.Context, raw string) (*dto.ProjectResponse, error) {
	code, err := progress.ValidateCode(raw)
	if err != nil {
		return nil, err
	}
	p, err := Query(ctx, uc.run, "projects.get_by_code", func(ctx context.Context) (*entity.Project, error) {
		return uc.repo.GetByCode(ctx, code)
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(p), nil
}

// List lista proyectos, opcionalmente de un cliente, más recientes primero.
func (uc *ProjectUseCase) List(ctx context.Context, clienteID string) ([]*dto.ProjectResponse, error) {
	list, err := Query(ctx, uc.run, "projects.list", func(ctx context.Context) ([]*entity.Project, error) {
		return uc.repo.List(ctx, repository.ProjectFilter{ClienteID: clienteID})
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectResponse(p))
	}
	return out, nil
}

// Update aplica los campos enviados. Checklist, avance y código no se modifican por esta vía.
func (uc *ProjectUseCase) Update(ctx context.Context, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	p, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		p.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		p.Descripcion = *in.Descripcion
	}
	if in.ClienteID != nil && *in.ClienteID != p.ClienteID {
		if err := uc.ensureClient(ctx, *in.ClienteID); err != nil {
			return nil, err
		}
		p.ClienteID = *in.ClienteID
	}
	if in.FechaEstimada != nil {
		fecha, err := parseOptionalDate("fecha_estimada", *in.FechaEstimada)
		if err != nil {
			return nil, err
		}
		p.FechaEstimada = fecha
	}
	if in.Estado != nil {
		p.Estado = *in.Estado
	}
	p.UpdatedAt = time.Now()
	if err := uc.run.Exec(ctx, "projects.update", func(ctx context.Context) error {
		return uc.repo.Update(ctx, p)
	}); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// UpdateChecklist reemplaza la lista completa de tareas y recalcula el avance en una sola
// escritura. Ediciones concurrentes: gana la última.
func (uc *ProjectUseCase) UpdateChecklist(ctx context.Context, id string, in dto.UpdateChecklistRequest) (*dto.ProjectResponse, error) {
	if in.Checklists == nil {
		return nil, domain.NewFieldError("checklists", domain.FieldMissing, "es requerido")
	}
	return uc.writeChecklist(ctx, id, toTasks(*in.Checklists))
}

// ToggleTask marca o desmarca la tarea en la posición index reescribiendo la lista completa.
func (uc *ProjectUseCase) ToggleTask(ctx context.Context, id string, index int, checked bool) (*dto.ProjectResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Checklists) {
		return nil, domain.NewFieldError("index", domain.FieldConstraint,
			fmt.Sprintf("debe estar entre 0 y %d", len(p.Checklists)-1))
	}
	tasks := make([]entity.Task, len(p.Checklists))
	copy(tasks, p.Checklists)
	tasks[index].Checked = checked
	return uc.writeChecklist(ctx, id, tasks)
}

func (uc *ProjectUseCase) writeChecklist(ctx context.Context, id string, tasks []entity.Task) (*dto.ProjectResponse, error) {
	if tasks == nil {
		tasks = []entity.Task{}
	}
	avance := progress.ComputeProgress(tasks)
	p, err := Query(ctx, uc.run, "projects.update_checklist", func(ctx context.Context) (*entity.Project, error) {
		return uc.repo.UpdateChecklist(ctx, id, tasks, avance)
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(p), nil
}

// Delete elimina el proyecto; pagos, reuniones, mensajes y modificaciones caen en cascada en la DB.
func (uc *ProjectUseCase) Delete(ctx context.Context, id string) error {
	return uc.run.Exec(ctx, "projects.delete", func(ctx context.Context) error {
		return uc.repo.Delete(ctx, id)
	})
}

// Report genera el PDF de estado del proyecto: checklist, avance y resumen de pagos.
func (uc *ProjectUseCase) Report(ctx context.Context, id string) (pdf []byte, filename string, err error) {
	if uc.reports == nil {
		return nil, "", fmt.Errorf("report: generador no configurado")
	}
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	client, err := Query(ctx, uc.run, "clients.get", func(ctx context.Context) (*entity.Client, error) {
		return uc.clients.GetByID(ctx, p.ClienteID)
	})
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		client = &entity.Client{ID: p.ClienteID}
	}
	payments, err := Query(ctx, uc.run, "payments.list", func(ctx context.Context) ([]*entity.Payment, error) {
		return uc.payments.List(ctx, repository.PaymentFilter{ProyectoID: p.ID})
	})
	if err != nil {
		return nil, "", err
	}
	pdf, err = uc.reports.GenerateProjectReport(ctx, p, client, payments)
	if err != nil {
		return nil, "", fmt.Errorf("report: %w", err)
	}
	return pdf, "proyecto-" + p.Codigo + ".pdf", nil
}

func toTasks(in []dto.TaskRequest) []entity.Task {
	out := make([]entity.Task, 0, len(in))
	for _, t := range in {
		out = append(out, entity.Task{
			Nombre:      t.Nombre,
			Descripcion: t.Descripcion,
			Asignado:    t.Asignado,
			Checked:     t.Checked,
		})
	}
	return out
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	tasks := make([]dto.TaskResponse, 0, len(p.Checklists))
	for _, t := range p.Checklists {
		tasks = append(tasks, dto.TaskResponse{
			Nombre:      t.Nombre,
			Descripcion: t.Descripcion,
			Asignado:    t.Asignado,
			Checked:     t.Checked,
		})
	}
	return &dto.ProjectResponse{
		ID:            p.ID,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		ClienteID:     p.ClienteID,
		Codigo:        p.Codigo,
		Checklists:    tasks,
		FechaEstimada: formatDate(p.FechaEstimada),
		Avance:        p.Avance,
		Estado:        p.Estado,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
