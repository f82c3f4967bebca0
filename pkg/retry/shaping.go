package retry

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Debounce devuelve call, que pospone fn hasta que pasen wait sin nuevas llamadas,
// y stop, que cancela la ejecución pendiente.
func Debounce(fn func(), wait time.Duration) (call func(), stop func()) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	call = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return call, stop
}

// Throttle devuelve una función que ejecuta fn como máximo una vez por ventana limit.
// Las llamadas dentro de la ventana se descartan y devuelven false.
func Throttle(fn func(), limit time.Duration) func() bool {
	lim := rate.NewLimiter(rate.Every(limit), 1)
	return func() bool {
		if !lim.Allow() {
			return false
		}
		fn()
		return true
	}
}
