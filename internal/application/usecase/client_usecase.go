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

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
	run  *Runner
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, run *Runner) *ClientUseCase {
	return &ClientUseCase{repo: repo, run: run}
}

// Create crea un nuevo cliente. El payload ya viene validado.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Rubro:     in.Rubro,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Notas:     in.Notas,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.run.Exec(ctx, "clients.create", func(ctx context.Context) error {
		return uc.repo.Create(ctx, client)
	}); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente o domain.ErrNotFound.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func (uc *ClientUseCase) get(ctx context.Context, id string) (*entity.Client, error) {
	client, err := Query(ctx, uc.run, "clients.get", func(ctx context.Context) (*entity.Client, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

// List lista los clientes, más recientes primero.
func (uc *ClientUseCase) List(ctx context.Context) ([]*dto.ClientResponse, error) {
	list, err := Query(ctx, uc.run, "clients.list", func(ctx context.Context) ([]*entity.Client, error) {
		return uc.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update aplica solo los campos enviados.
func (uc *ClientUseCase) Update(ctx context.Context, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		client.Nombre = *in.Nombre
	}
	if in.Rubro != nil {
		client.Rubro = *in.Rubro
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Telefono != nil {
		client.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		client.Direccion = *in.Direccion
	}
	if in.Notas != nil {
		client.Notas = *in.Notas
	}
	client.UpdatedAt = time.Now()
	if err := uc.run.Exec(ctx, "clients.update", func(ctx context.Context) error {
		return uc.repo.Update(ctx, client)
	}); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente. Los proyectos asociados los elimina la base de datos en cascada.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.run.Exec(ctx, "clients.delete", func(ctx context.Context) error {
		return uc.repo.Delete(ctx, id)
	})
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Rubro:     c.Rubro,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		Notas:     c.Notas,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
