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

// PaymentUseCase casos de uso de pagos.
type PaymentUseCase struct {
	repo     repository.PaymentRepository
	projects repository.ProjectRepository
	run      *Runner
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(repo repository.PaymentRepository, projects repository.ProjectRepository, run *Runner) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, projects: projects, run: run}
}

// Create registra un pago sobre un proyecto existente.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := ensureProject(ctx, uc.run, uc.projects, "proyecto_id", in.ProyectoID); err != nil {
		return nil, err
	}
	fecha, err := parseDate("fecha_pago", in.FechaPago)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		ProyectoID:  in.ProyectoID,
		Monto:       *in.Monto,
		FechaPago:   fecha,
		MetodoPago:  in.MetodoPago,
		Estado:      in.Estado,
		Descripcion: in.Descripcion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.run.Exec(ctx, "payments.create", func(ctx context.Context) error {
		return uc.repo.Create(ctx, payment)
	}); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// GetByID obtiene un pago o domain.ErrNotFound.
func (uc *PaymentUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

func (uc *PaymentUseCase) get(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := Query(ctx, uc.run, "payments.get", func(ctx context.Context) (*entity.Payment, error) {
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

// List lista pagos, opcionalmente de un proyecto, por fecha de pago descendente.
func (uc *PaymentUseCase) List(ctx context.Context, proyectoID string) ([]*dto.PaymentResponse, error) {
	list, err := Query(ctx, uc.run, "payments.list", func(ctx context.Context) ([]*entity.Payment, error) {
		return uc.repo.List(ctx, repository.PaymentFilter{ProyectoID: proyectoID})
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// Update aplica los campos enviados.
func (uc *PaymentUseCase) Update(ctx context.Context, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Monto != nil {
		p.Monto = *in.Monto
	}
	if in.FechaPago != nil {
		fecha, err := parseDate("fecha_pago", *in.FechaPago)
		if err != nil {
			return nil, err
		}
		p.FechaPago = fecha
	}
	if in.MetodoPago != nil {
		p.MetodoPago = *in.MetodoPago
	}
	if in.Estado != nil {
		p.Estado = *in.Estado
	}
	if in.Descripcion != nil {
		p.Descripcion = *in.Descripcion
	}
	p.UpdatedAt = time.Now()
	if err := uc.run.Exec(ctx, "payments.update", func(ctx context.Context) error {
		return uc.repo.Update(ctx, p)
	}); err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// Delete elimina un pago.
func (uc *PaymentUseCase) Delete(ctx context.Context, id string) error {
	return uc.run.Exec(ctx, "payments.delete", func(ctx context.Context) error {
		return uc.repo.Delete(ctx, id)
	})
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:          p.ID,
		ProyectoID:  p.ProyectoID,
		Monto:       p.Monto,
		FechaPago:   formatDate(&p.FechaPago),
		MetodoPago:  p.MetodoPago,
		Estado:      p.Estado,
		Descripcion: p.Descripcion,
		CreatedAt:   p.CreatedAt,
	}
}
