package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados de solo lectura para el panel de administración.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// ProjectStats cuenta proyectos por estado y promedia el avance.
func (r *DashboardRepo) ProjectStats(ctx context.Context) (repository.ProjectStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT estado, COUNT(*), COALESCE(SUM(avance), 0)
		FROM projects
		GROUP BY estado`)
	if err != nil {
		return repository.ProjectStats{}, persistErr("dashboard project stats", err)
	}
	defer rows.Close()

	stats := repository.ProjectStats{ByEstado: map[string]int{}}
	var avanceSum int64
	for rows.Next() {
		var estado string
		var n int
		var sum int64
		if err := rows.Scan(&estado, &n, &sum); err != nil {
			return repository.ProjectStats{}, persistErr("scan project stats", err)
		}
		stats.ByEstado[estado] = n
		stats.Total += n
		avanceSum += sum
	}
	if err := rows.Err(); err != nil {
		return repository.ProjectStats{}, persistErr("dashboard project stats", err)
	}
	if stats.Total > 0 {
		stats.AvgAvance = float64(avanceSum) / float64(stats.Total)
	}
	return stats, nil
}

// PaymentTotals suma los montos por estado con fecha_pago en [from, to].
func (r *DashboardRepo) PaymentTotals(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT estado, COALESCE(SUM(monto), 0)
		FROM payments
		WHERE fecha_pago BETWEEN $1 AND $2
		GROUP BY estado`, from, to)
	if err != nil {
		return nil, persistErr("dashboard payment totals", err)
	}
	defer rows.Close()

	totals := map[string]decimal.Decimal{}
	for rows.Next() {
		var estado string
		var sum decimal.Decimal
		if err := rows.Scan(&estado, &sum); err != nil {
			return nil, persistErr("scan payment totals", err)
		}
		totals[estado] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("dashboard payment totals", err)
	}
	return totals, nil
}

// PendingWork cuenta mensajes sin leer de clientes, solicitudes pendientes y reuniones próximas.
func (r *DashboardRepo) PendingWork(ctx context.Context, today, until time.Time) (repository.PendingWork, error) {
	var w repository.PendingWork
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM messages WHERE sender = $1 AND read = false),
			(SELECT COUNT(*) FROM modificaciones WHERE estado = $2),
			(SELECT COUNT(*) FROM meetings WHERE estado = $3 AND fecha BETWEEN $4 AND $5)`,
		entity.SenderClient, entity.ModificacionPendiente, entity.MeetingProgramada, today, until,
	).Scan(&w.UnreadMessages, &w.PendingModificaciones, &w.UpcomingMeetings)
	if err != nil {
		return repository.PendingWork{}, persistErr("dashboard pending work", err)
	}
	return w, nil
}
