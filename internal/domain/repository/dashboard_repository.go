package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStats conteo de proyectos por estado y avance promedio.
type ProjectStats struct {
	ByEstado  map[string]int
	Total     int
	AvgAvance float64
}

// PendingWork trabajo que espera al administrador.
type PendingWork struct {
	UnreadMessages        int // enviados por clientes y sin leer
	PendingModificaciones int // en estado Pendiente
	UpcomingMeetings      int // Programadas entre hoy y until
}

// DashboardRepository consultas de solo lectura para el resumen del panel.
type DashboardRepository interface {
	ProjectStats(ctx context.Context) (ProjectStats, error)
	PaymentTotals(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error)
	PendingWork(ctx context.Context, today, until time.Time) (PendingWork, error)
}
