package entity

import "time"

// Tipos de reunión.
const (
	MeetingPresencial = "Presencial"
	MeetingVirtual    = "Virtual"
	MeetingTelefonica = "Telefónica"
)

// Estados de reunión.
const (
	MeetingProgramada = "Programada"
	MeetingCompletada = "Completada"
	MeetingCancelada  = "Cancelada"
)

// MeetingTypes y MeetingStatuses conjuntos aceptados.
var (
	MeetingTypes    = []string{MeetingPresencial, MeetingVirtual, MeetingTelefonica}
	MeetingStatuses = []string{MeetingProgramada, MeetingCompletada, MeetingCancelada}
)

// Meeting reunión con el cliente sobre un proyecto.
type Meeting struct {
	ID          string
	ProyectoID  string
	Titulo      string
	Fecha       time.Time
	Hora        string // HH:MM
	Duracion    int    // minutos
	Tipo        string
	Estado      string
	Asistentes  []string
	Notas       string
	LinkReunion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LinkAllowed indica si el link de reunión es coherente con el tipo: solo las virtuales lo llevan.
func (m *Meeting) LinkAllowed() bool {
	return m.Tipo == MeetingVirtual || m.LinkReunion == ""
}
