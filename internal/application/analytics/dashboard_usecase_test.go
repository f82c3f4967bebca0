package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

type mockDashboardRepo struct {
	mock.Mock
}

func (m *mockDashboardRepo) ProjectStats(ctx context.Context) (repository.ProjectStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.ProjectStats), args.Error(1)
}

func (m *mockDashboardRepo) PaymentTotals(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	totals, _ := args.Get(0).(map[string]decimal.Decimal)
	return totals, args.Error(1)
}

func (m *mockDashboardRepo) PendingWork(ctx context.Context, today, until time.Time) (repository.PendingWork, error) {
	args := m.Called(ctx, today, until)
	return args.Get(0).(repository.PendingWork), args.Error(1)
}

func newDashboard(repo repository.DashboardRepository, now time.Time) *DashboardUseCase {
	uc := NewDashboardUseCase(repo, usecase.NewRunner(logger.Nop(), config.RetryConfig{MaxRetries: 1}))
	uc.now = func() time.Time { return now }
	return uc
}

func TestGetSummary_ArmaElResumenDelMes(t *testing.T) {
	now := time.Date(2026, time.February, 14, 15, 30, 0, 0, time.UTC)
	repo := new(mockDashboardRepo)
	repo.On("ProjectStats", mock.Anything).Return(repository.ProjectStats{
		ByEstado:  map[string]int{"pendiente": 2, "en_progreso": 3},
		Total:     5,
		AvgAvance: 42.6,
	}, nil)
	repo.On("PaymentTotals", mock.Anything,
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
	).Return(map[string]decimal.Decimal{
		"Pagado":    decimal.RequireFromString("1500.505"),
		"Pendiente": decimal.RequireFromString("200"),
	}, nil)
	repo.On("PendingWork", mock.Anything,
		time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 21, 0, 0, 0, 0, time.UTC),
	).Return(repository.PendingWork{UnreadMessages: 4, PendingModificaciones: 1, UpcomingMeetings: 2}, nil)

	out, err := newDashboard(repo, now).GetSummary(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)

	assert.Equal(t, 5, out.TotalProjects)
	assert.Equal(t, 3, out.Projects["en_progreso"])
	assert.Equal(t, 43, out.AvgAvance)
	assert.Equal(t, "1500.51", out.MonthPaid.StringFixed(2))
	assert.True(t, out.MonthPending.Equal(decimal.NewFromInt(200)))
	assert.True(t, out.MonthOverdue.IsZero(), "sin pagos vencidos el total es cero")
	assert.Equal(t, 4, out.UnreadMessages)
	assert.Equal(t, "Febrero 2026", out.DateLabel)
}

func TestGetSummary_FalloDeUnaConsulta(t *testing.T) {
	repo := new(mockDashboardRepo)
	repo.On("ProjectStats", mock.Anything).Return(repository.ProjectStats{}, nil)
	repo.On("PaymentTotals", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	repo.On("PendingWork", mock.Anything, mock.Anything, mock.Anything).Return(repository.PendingWork{}, nil)

	_, err := newDashboard(repo, time.Now()).GetSummary(context.Background())
	assert.ErrorContains(t, err, "pagos del mes")
}

// blockingStatsRepo retiene ProjectStats hasta release y reporta el estado de su ctx.
type blockingStatsRepo struct {
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func (r *blockingStatsRepo) ProjectStats(ctx context.Context) (repository.ProjectStats, error) {
	close(r.started)
	<-r.release
	r.ctxErr <- ctx.Err()
	return repository.ProjectStats{Total: 1}, ctx.Err()
}

func (r *blockingStatsRepo) PaymentTotals(context.Context, time.Time, time.Time) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{}, nil
}

func (r *blockingStatsRepo) PendingWork(context.Context, time.Time, time.Time) (repository.PendingWork, error) {
	return repository.PendingWork{}, nil
}

func TestGetSummary_CancelarUnLlamadorNoCancelaLaEjecucionCompartida(t *testing.T) {
	repo := &blockingStatsRepo{started: make(chan struct{}), release: make(chan struct{}), ctxErr: make(chan error, 1)}
	uc := newDashboard(repo, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := uc.GetSummary(ctx)
		errCh <- err
	}()

	<-repo.started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(repo.release)
	select {
	case err := <-repo.ctxErr:
		assert.NoError(t, err, "la consulta compartida no debe ver la cancelación")
	case <-time.After(time.Second):
		t.Fatal("la consulta compartida no terminó")
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Diciembre 2025", monthLabel(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
