package entity

import "time"

// Estados válidos de Project.
const (
	ProjectPendiente  = "pendiente"
	ProjectEnProgreso = "en_progreso"
	ProjectCompletado = "completado"
	ProjectCancelado  = "cancelado"
)

// ProjectStatuses conjunto de estados aceptados.
var ProjectStatuses = []string{ProjectPendiente, ProjectEnProgreso, ProjectCompletado, ProjectCancelado}

// Task ítem del checklist de un proyecto. No tiene identidad propia: se identifica por su
// posición y se persiste siempre junto con la lista completa.
type Task struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Asignado    string `json:"asignado"`
	Checked     bool   `json:"checked"`
}

// Project proyecto de un cliente. Avance se deriva de Checklists y Codigo es inmutable.
type Project struct {
	ID            string
	Nombre        string
	Descripcion   string
	ClienteID     string
	Codigo        string
	Checklists    []Task
	FechaEstimada *time.Time
	Avance        int
	Estado        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
