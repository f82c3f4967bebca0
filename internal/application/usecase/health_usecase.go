package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/pkg/config"
)

// HealthUseCase reporta el estado del servicio y del almacén.
type HealthUseCase struct {
	db      Pinger
	app     config.AppConfig
	started time.Time
}

// NewHealthUseCase construye el caso de uso. db puede ser nil (sin almacén configurado).
func NewHealthUseCase(db Pinger, app config.AppConfig) *HealthUseCase {
	return &HealthUseCase{db: db, app: app, started: time.Now()}
}

// Check devuelve healthy si el almacén responde dentro de 2 segundos.
func (uc *HealthUseCase) Check(ctx context.Context) *dto.HealthResponse {
	status := "healthy"
	if uc.db != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := uc.db.Ping(ctx); err != nil {
			status = "unhealthy"
		}
	}
	return &dto.HealthResponse{
		Status:      status,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     dto.APIVersion,
		Uptime:      time.Since(uc.started).Seconds(),
		Environment: uc.app.Env,
	}
}
