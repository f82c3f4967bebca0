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

// MessageUseCase chat por proyecto entre el administrador y el cliente.
type MessageUseCase struct {
	repo     repository.MessageRepository
	projects repository.ProjectRepository
	run      *Runner
}

// NewMessageUseCase construye el caso de uso.
func NewMessageUseCase(repo repository.MessageRepository, projects repository.ProjectRepository, run *Runner) *MessageUseCase {
	return &MessageUseCase{repo: repo, projects: projects, run: run}
}

// Create envía un mensaje como role. El sender lo decide la sesión: si el payload trae otro,
// se rechaza con domain.ErrForbidden.
func (uc *MessageUseCase) Create(ctx context.Context, in dto.CreateMessageRequest, role string) (*dto.MessageResponse, error) {
	if in.Sender != "" && in.Sender != role {
		return nil, domain.ErrForbidden
	}
	if err := ensureProject(ctx, uc.run, uc.projects, "project_id", in.ProjectID); err != nil {
		return nil, err
	}
	msg := &entity.Message{
		ID:        uuid.New().String(),
		ProjectID: in.ProjectID,
		Sender:    role,
		Text:      in.Text,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}
	if err := uc.run.Exec(ctx, "messages.create", func(ctx context.Context) error {
		return uc.repo.Create(ctx, msg)
	}); err != nil {
		return nil, err
	}
	return toMessageResponse(msg), nil
}

// GetByID obtiene un mensaje o domain.ErrNotFound.
func (uc *MessageUseCase) GetByID(ctx context.Context, id string) (*dto.MessageResponse, error) {
	m, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMessageResponse(m), nil
}

func (uc *MessageUseCase) get(ctx context.Context, id string) (*entity.Message, error) {
	m, err := Query(ctx, uc.run, "messages.get", func(ctx context.Context) (*entity.Message, error) {
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

// List lista los mensajes de un proyecto en orden cronológico.
func (uc *MessageUseCase) List(ctx context.Context, projectID string) ([]*dto.MessageResponse, error) {
	list, err := Query(ctx, uc.run, "messages.list", func(ctx context.Context) ([]*entity.Message, error) {
		return uc.repo.List(ctx, repository.MessageFilter{ProjectID: projectID})
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MessageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMessageResponse(m))
	}
	return out, nil
}

// MarkRead marca como leídos los mensajes de ids que readerRole recibió. Los enviados por el
// propio lector y los ya leídos no cambian. projectID, si no es vacío, acota al proyecto de la sesión.
func (uc *MessageUseCase) MarkRead(ctx context.Context, ids []string, readerRole, projectID string) (*dto.MarkReadResponse, error) {
	sender := entity.Counterpart(readerRole)
	n, err := Query(ctx, uc.run, "messages.mark_read", func(ctx context.Context) (int64, error) {
		return uc.repo.MarkRead(ctx, ids, sender, projectID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MarkReadResponse{Updated: n}, nil
}

// Update corrige el texto de un mensaje (moderación del administrador).
func (uc *MessageUseCase) Update(ctx context.Context, in dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	m, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Text != nil {
		m.Text = *in.Text
	}
	if err := uc.run.Exec(ctx, "messages.update", func(ctx context.Context) error {
		return uc.repo.Update(ctx, m)
	}); err != nil {
		return nil, err
	}
	return toMessageResponse(m), nil
}

// Delete elimina un mensaje.
func (uc *MessageUseCase) Delete(ctx context.Context, id string) error {
	return uc.run.Exec(ctx, "messages.delete", func(ctx context.Context) error {
		return uc.repo.Delete(ctx, id)
	})
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Sender:    m.Sender,
		Text:      m.Text,
		Timestamp: m.Timestamp,
		Read:      m.Read,
	}
}
