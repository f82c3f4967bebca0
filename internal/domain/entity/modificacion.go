package entity

import "time"

// Estados de una solicitud de modificación, en orden de avance.
const (
	ModificacionPendiente  = "Pendiente"
	ModificacionEnProceso  = "En proceso"
	ModificacionCompletada = "Completada"
)

// ModificacionStatuses en el orden en que avanzan.
var ModificacionStatuses = []string{ModificacionPendiente, ModificacionEnProceso, ModificacionCompletada}

// Modificacion solicitud de cambio creada por el cliente sobre su proyecto.
type Modificacion struct {
	ID         string
	ProyectoID string
	Texto      string
	Fecha      time.Time
	Estado     string
}

// CanTransition indica si el estado puede pasar de from a to. Solo se avanza, nunca se retrocede;
// repetir el estado actual es válido.
func CanTransition(from, to string) bool {
	rank := func(s string) int {
		for i, st := range ModificacionStatuses {
			if st == s {
				return i
			}
		}
		return -1
	}
	f, t := rank(from), rank(to)
	return f >= 0 && t >= f
}
