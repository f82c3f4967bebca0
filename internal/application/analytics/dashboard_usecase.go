// Package analytics contiene el resumen del panel de administración.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

const upcomingDays = 7 // ventana de reuniones próximas

// DashboardUseCase genera el resumen del panel: proyectos, cobros del mes y pendientes.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	run  *usecase.Runner
	now  func() time.Time
	sf   singleflight.Group
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository, run *usecase.Runner) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, run: run, now: time.Now}
}

// GetSummary devuelve el resumen; las peticiones simultáneas comparten una sola ejecución.
// La ejecución compartida no hereda la cancelación del primer llamador; cada llamador deja
// de esperar cuando se cancela su propio ctx.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	shared := context.WithoutCancel(ctx)
	ch := uc.sf.DoChan("summary", func() (any, error) {
		return uc.summary(shared)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*dto.DashboardSummary), nil
	}
}

// summary ejecuta las tres consultas en paralelo:
//  1. ProjectStats            → conteo por estado + avance promedio
//  2. PaymentTotals(mes)      → pagado / pendiente / vencido del mes en curso
//  3. PendingWork(hoy, +7d)   → mensajes sin leer, solicitudes y reuniones próximas
func (uc *DashboardUseCase) summary(ctx context.Context) (*dto.DashboardSummary, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	type statsResult struct {
		stats repository.ProjectStats
		err   error
	}
	type totalsResult struct {
		totals map[string]decimal.Decimal
		err    error
	}
	type pendingResult struct {
		work repository.PendingWork
		err  error
	}

	statsCh := make(chan statsResult, 1)
	totalsCh := make(chan totalsResult, 1)
	pendingCh := make(chan pendingResult, 1)

	go func() {
		s, err := usecase.Query(ctx, uc.run, "dashboard.project_stats", uc.repo.ProjectStats)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		t, err := usecase.Query(ctx, uc.run, "dashboard.payment_totals", func(ctx context.Context) (map[string]decimal.Decimal, error) {
			return uc.repo.PaymentTotals(ctx, monthStart, monthEnd)
		})
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		w, err := usecase.Query(ctx, uc.run, "dashboard.pending_work", func(ctx context.Context) (repository.PendingWork, error) {
			return uc.repo.PendingWork(ctx, today, today.AddDate(0, 0, upcomingDays))
		})
		pendingCh <- pendingResult{w, err}
	}()

	stats := <-statsCh
	totals := <-totalsCh
	pending := <-pendingCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: proyectos: %w", stats.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: pagos del mes: %w", totals.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: pendientes: %w", pending.err)
	}

	return &dto.DashboardSummary{
		Projects:              stats.stats.ByEstado,
		TotalProjects:         stats.stats.Total,
		AvgAvance:             int(math.Floor(stats.stats.AvgAvance + 0.5)),
		MonthPaid:             totals.totals[entity.PaymentPagado].Round(2),
		MonthPending:          totals.totals[entity.PaymentPendiente].Round(2),
		MonthOverdue:          totals.totals[entity.PaymentVencido].Round(2),
		UnreadMessages:        pending.work.UnreadMessages,
		PendingModificaciones: pending.work.PendingModificaciones,
		UpcomingMeetings:      pending.work.UpcomingMeetings,
		DateLabel:             monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
