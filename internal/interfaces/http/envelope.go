package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

// Códigos de error del envelope.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidID         = "INVALID_ID"
	CodeInvalidCode       = "INVALID_CODE"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeDuplicate         = "DUPLICATE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeRateLimited       = "RATE_LIMITED"
	CodePersistence       = "PERSISTENCE_ERROR"
	CodeInternal          = "INTERNAL"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
)

const genericPersistenceMessage = "error al acceder a los datos, intente más tarde"

// Responder escribe las respuestas con el envelope común. En desarrollo (Dev) los errores
// de persistencia muestran el detalle; en producción solo un mensaje genérico.
type Responder struct {
	Dev bool
	Log *logger.Logger
}

// NewResponder construye el responder.
func NewResponder(dev bool, log *logger.Logger) *Responder {
	if log == nil {
		log = logger.Nop()
	}
	return &Responder{Dev: dev, Log: log}
}

// OK responde 200 con data.
func (r *Responder) OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(dto.OK(data))
}

// Created responde 201 con data.
func (r *Responder) Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(data))
}

// Done responde 200 sin data (delete, logout).
func (r *Responder) Done(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(dto.Done(message))
}

// Fail traduce err a status y envelope de error.
func (r *Responder) Fail(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		env := dto.Fail(CodeValidation, "datos inválidos")
		env.Details = ve.Fields
		return c.Status(fiber.StatusBadRequest).JSON(env)
	}
	status, code, msg := classify(err)
	var pe *domain.PersistenceError
	switch {
	case errors.As(err, &pe):
		r.Log.Error().Err(err).Str("op", pe.Op).Str("path", c.Path()).Msg("error de persistencia")
		if !r.Dev {
			msg = genericPersistenceMessage
		}
	case status == fiber.StatusInternalServerError:
		r.Log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		if !r.Dev {
			msg = "error interno"
		}
	}
	return c.Status(status).JSON(dto.Fail(code, msg))
}

func classify(err error) (status int, code, message string) {
	var pe *domain.PersistenceError
	switch {
	case errors.Is(err, domain.ErrInvalidCode):
		return fiber.StatusBadRequest, CodeInvalidCode, "código de proyecto inválido"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation, "datos inválidos"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, CodeNotFound, "recurso no encontrado"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized, "sesión inválida o expirada"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden, "acceso denegado"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, CodeDuplicate, "el recurso ya existe"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, CodeInvalidTransition, "transición de estado no permitida"
	case errors.As(err, &pe):
		return fiber.StatusInternalServerError, CodePersistence, err.Error()
	default:
		return fiber.StatusInternalServerError, CodeInternal, err.Error()
	}
}

// ErrorHandler para fiber.Config: rutas inexistentes, métodos no permitidos y panics
// recuperados también responden con el envelope.
func (r *Responder) ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "PAYLOAD_TOO_LARGE"
		case fiber.StatusBadRequest:
			code = CodeValidation
		}
		return c.Status(fe.Code).JSON(dto.Fail(code, fe.Message))
	}
	return r.Fail(c, err)
}
