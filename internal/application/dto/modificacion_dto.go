package dto

import "time"

// CreateModificacionRequest body para POST /api/v1/modificaciones (cliente).
type CreateModificacionRequest struct {
	ProyectoID string `json:"proyecto_id" validate:"required,uuid"`
	Texto      string `json:"texto" validate:"required,notblank,max=4000"`
}

// UpdateModificacionRequest body para PUT /api/v1/modificaciones (admin).
type UpdateModificacionRequest struct {
	ID     string `json:"id" validate:"required,uuid"`
	Estado string `json:"estado" validate:"required,modstatus"`
}

// ModificacionResponse solicitud de cambio en respuestas.
type ModificacionResponse struct {
	ID         string    `json:"id"`
	ProyectoID string    `json:"proyecto_id"`
	Texto      string    `json:"texto"`
	Fecha      time.Time `json:"fecha"`
	Estado     string    `json:"estado"`
}
