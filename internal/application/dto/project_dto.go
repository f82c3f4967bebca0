package dto

import "time"

// TaskRequest tarea del checklist en requests.
type TaskRequest struct {
	Nombre      string `json:"nombre" validate:"required,notblank,max=200"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=2000"`
	Asignado    string `json:"asignado" validate:"omitempty,max=120"`
	Checked     bool   `json:"checked"`
}

// CreateProjectRequest body para POST /api/v1/projects. El código y el avance los asigna el servidor.
type CreateProjectRequest struct {
	Nombre        string        `json:"nombre" validate:"required,notblank,max=200"`
	Descripcion   string        `json:"descripcion" validate:"omitempty,max=4000"`
	ClienteID     string        `json:"cliente_id" validate:"required,uuid"`
	FechaEstimada string        `json:"fecha_estimada,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Estado        string        `json:"estado,omitempty" validate:"omitempty,projectstatus"`
	Checklists    []TaskRequest `json:"checklists,omitempty" validate:"omitempty,dive"`
}

// UpdateProjectRequest body para PUT /api/v1/projects. Checklists, avance y código no se editan aquí.
type UpdateProjectRequest struct {
	ID            string  `json:"id" validate:"required,uuid"`
	Nombre        *string `json:"nombre,omitempty" validate:"omitnil,notblank,max=200"`
	Descripcion   *string `json:"descripcion,omitempty" validate:"omitnil,max=4000"`
	ClienteID     *string `json:"cliente_id,omitempty" validate:"omitnil,uuid"`
	FechaEstimada *string `json:"fecha_estimada,omitempty" validate:"omitnil,datetime=2006-01-02"`
	Estado        *string `json:"estado,omitempty" validate:"omitnil,projectstatus"`
}

// UpdateChecklistRequest body para PUT /api/v1/projects/:id/checklist (reemplazo completo).
// Omitir checklists es un error; [] vacía la lista.
type UpdateChecklistRequest struct {
	Checklists *[]TaskRequest `json:"checklists" validate:"required,dive"`
}

// ToggleTaskRequest body para PATCH /api/v1/projects/:id/checklist/:index.
type ToggleTaskRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

// TaskResponse tarea del checklist en respuestas.
type TaskResponse struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Asignado    string `json:"asignado"`
	Checked     bool   `json:"checked"`
}

// ProjectResponse proyecto en respuestas.
type ProjectResponse struct {
	ID            string         `json:"id"`
	Nombre        string         `json:"nombre"`
	Descripcion   string         `json:"descripcion"`
	ClienteID     string         `json:"cliente_id"`
	Codigo        string         `json:"codigo"`
	Checklists    []TaskResponse `json:"checklists"`
	FechaEstimada string         `json:"fecha_estimada,omitempty"`
	Avance        int            `json:"avance"`
	Estado        string         `json:"estado"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
