package dto

import "github.com/jhoicas/Proyectos-api/internal/domain"

// APIVersion versión del contrato de la API. Se envía en el cuerpo y en el header API-Version.
const APIVersion = "1.0.0"

// Envelope cuerpo uniforme de todas las respuestas de /api/v1.
type Envelope struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Code    string              `json:"code,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
	Message string              `json:"message,omitempty"`
	Version string              `json:"version"`
}

// OK envelope de éxito con datos.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data, Version: APIVersion}
}

// Done envelope de éxito sin datos (delete, logout).
func Done(message string) Envelope {
	return Envelope{Success: true, Message: message, Version: APIVersion}
}

// Fail envelope de error.
func Fail(code, message string) Envelope {
	return Envelope{Success: false, Code: code, Error: message, Version: APIVersion}
}

// ErrorResponse cuerpo de error HTTP fuera de /api/v1 (páginas, docs).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse salida de GET /api/v1/health.
type HealthResponse struct {
	Status      string  `json:"status"` // healthy | unhealthy
	Timestamp   string  `json:"timestamp"`
	Version     string  `json:"version"`
	Uptime      float64 `json:"uptime"` // segundos
	Environment string  `json:"environment"`
}

// DeleteRequest query de DELETE /api/v1/{recurso}?id=<uuid>.
type DeleteRequest struct {
	ID string `query:"id" validate:"required,uuid"`
}
