package usecase

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// ProjectReportGenerator genera el PDF de estado de un proyecto.
type ProjectReportGenerator interface {
	GenerateProjectReport(
		ctx context.Context,
		project *entity.Project,
		client *entity.Client,
		payments []*entity.Payment,
	) ([]byte, error)
}

// Pinger verifica que el almacén responde (health check).
type Pinger interface {
	Ping(ctx context.Context) error
}
