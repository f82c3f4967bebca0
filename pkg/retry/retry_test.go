package retry_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/pkg/retry"
)

var errTransitorio = errors.New("conexión reiniciada")

func TestDo_FallaDosVecesYLuegoExito(t *testing.T) {
	calls := 0
	out, err := retry.Value(context.Background(), 3, 10*time.Millisecond, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errTransitorio
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, calls, "debe invocarse exactamente 3 veces")
}

func TestDo_SiempreFallaAgotaIntentos(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		return errTransitorio
	})

	assert.ErrorIs(t, err, errTransitorio)
	assert.Equal(t, 3, calls)
}

func TestDo_EsperaLinealEntreIntentos(t *testing.T) {
	start := time.Now()
	_ = retry.Do(context.Background(), 3, 20*time.Millisecond, func(context.Context) error {
		return errTransitorio
	})
	// 20ms tras el primer intento + 40ms tras el segundo
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestDo_ErrorNoReintentableFallaRapido(t *testing.T) {
	errValidacion := errors.New("monto inválido")
	calls := 0
	err := retry.Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		return errValidacion
	}, retry.If(func(err error) bool { return errors.Is(err, errTransitorio) }))

	assert.ErrorIs(t, err, errValidacion)
	assert.Equal(t, 1, calls)
}

func TestDo_CancelacionInterrumpeEspera(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var attempts []int
	err := retry.Do(ctx, 5, time.Hour, func(context.Context) error {
		return errTransitorio
	}, retry.OnRetry(func(attempt int, _ error) {
		attempts = append(attempts, attempt)
		cancel()
	}))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1}, attempts)
}

func TestDo_MaxRetriesCeroEjecutaUnaVez(t *testing.T) {
	calls := 0
	_ = retry.Do(context.Background(), 0, time.Millisecond, func(context.Context) error {
		calls++
		return errTransitorio
	})
	assert.Equal(t, 1, calls)
}

func TestDebounce_SoloLaUltimaLlamada(t *testing.T) {
	var n atomic.Int32
	call, stop := retry.Debounce(func() { n.Add(1) }, 30*time.Millisecond)
	defer stop()

	for i := 0; i < 5; i++ {
		call()
	}
	assert.Eventually(t, func() bool { return n.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), n.Load())
}

func TestDebounce_StopCancelaPendiente(t *testing.T) {
	var n atomic.Int32
	call, stop := retry.Debounce(func() { n.Add(1) }, 20*time.Millisecond)
	call()
	stop()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), n.Load())
}

func TestThrottle_UnaVezPorVentana(t *testing.T) {
	n := 0
	fn := retry.Throttle(func() { n++ }, time.Hour)

	assert.True(t, fn())
	assert.False(t, fn())
	assert.False(t, fn())
	assert.Equal(t, 1, n)
}
