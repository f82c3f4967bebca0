package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidCode       = errors.New("código de proyecto inválido")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)

// Tipos de fallo de un campo.
const (
	FieldMissing    = "missing"
	FieldType       = "type"
	FieldConstraint = "constraint"
	FieldUnknown    = "unknown"
)

// FieldError describe por qué un campo del payload fue rechazado.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationError agrupa los errores por campo de un payload. Nunca se reintenta.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewFieldError atajo para un ValidationError de un solo campo.
func NewFieldError(field, kind, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Kind: kind, Message: message}}}
}

// PersistenceError envuelve un fallo del almacén. Transient indica si tiene sentido reintentar.
type PersistenceError struct {
	Op        string
	Err       error
	Transient bool
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsTransient indica si err es un fallo de persistencia reintentable.
func IsTransient(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Transient
}
