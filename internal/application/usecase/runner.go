package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
	"github.com/jhoicas/Proyectos-api/pkg/retry"
)

// Runner envuelve cada llamada a persistencia: reintenta los fallos transitorios con espera
// lineal y registra los que terminan en error. Validación y not-found nunca se reintentan.
type Runner struct {
	log        *logger.Logger
	maxRetries int
	baseDelay  time.Duration
}

// NewRunner construye el runner compartido por los casos de uso.
func NewRunner(log *logger.Logger, cfg config.RetryConfig) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		log:        log,
		maxRetries: cfg.MaxRetries,
		baseDelay:  time.Duration(cfg.BaseDelayMs) * time.Millisecond,
	}
}

// Exec ejecuta fn bajo la política de reintentos.
func (r *Runner) Exec(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	_, err := Query(ctx, r, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Query es Exec para operaciones que devuelven un valor.
func Query[T any](ctx context.Context, r *Runner, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	out, err := retry.Value(ctx, r.maxRetries, r.baseDelay, fn,
		retry.If(domain.IsTransient),
		retry.OnRetry(func(attempt int, err error) {
			r.log.Warn().Err(err).Str("op", op).Int("attempt", attempt).Msg("fallo transitorio, reintentando")
		}),
	)
	if err != nil {
		var pe *domain.PersistenceError
		if errors.As(err, &pe) {
			r.log.Error().Err(err).
				Str("op", op).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Bool("transient", pe.Transient).
				Msg("operación de persistencia fallida")
		}
	}
	return out, err
}
