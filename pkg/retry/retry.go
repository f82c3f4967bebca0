// Package retry reúne los helpers de resiliencia y de control de frecuencia de llamadas:
// reintentos con espera lineal, debounce y throttle.
package retry

import (
	"context"
	"time"
)

// Option ajusta el comportamiento de Do.
type Option func(*options)

type options struct {
	retryIf func(error) bool
	onRetry func(attempt int, err error)
}

// If limita los reintentos a los errores para los que pred devuelve true.
// Un error no reintentable se devuelve de inmediato.
func If(pred func(error) bool) Option {
	return func(o *options) { o.retryIf = pred }
}

// OnRetry registra un callback invocado antes de cada espera (útil para logs).
func OnRetry(fn func(attempt int, err error)) Option {
	return func(o *options) { o.onRetry = fn }
}

// Do ejecuta fn hasta maxRetries veces en total. Entre el intento n y el n+1 espera
// baseDelay*n. Devuelve nil en el primer éxito o el último error.
// La cancelación de ctx interrumpe la espera y devuelve ctx.Err().
func Do(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(ctx context.Context) error, opts ...Option) error {
	_, err := Value(ctx, maxRetries, baseDelay, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, opts...)
	return err
}

// Value es Do para operaciones que devuelven un resultado.
func Value[T any](ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	o := options{retryIf: func(error) bool { return true }}
	for _, opt := range opts {
		opt(&o)
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if attempt == maxRetries || !o.retryIf(err) {
			break
		}
		if o.onRetry != nil {
			o.onRetry(attempt, err)
		}

		timer := time.NewTimer(baseDelay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, lastErr
}
