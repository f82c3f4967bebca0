package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/application/validation"
)

// ModificacionHandler maneja las solicitudes de cambio que abren los clientes.
type ModificacionHandler struct {
	uc  *usecase.ModificacionUseCase
	res *Responder
}

// NewModificacionHandler construye el handler.
func NewModificacionHandler(uc *usecase.ModificacionUseCase, res *Responder) *ModificacionHandler {
	return &ModificacionHandler{uc: uc, res: res}
}

// List godoc
// @Summary      Listar solicitudes de cambio
// @Tags         modificaciones
// @Produce      json
// @Security     Bearer
// @Param        proyecto_id  query  string  false  "filtrar por proyecto"
// @Success      200  {object}  dto.Envelope{data=[]dto.ModificacionResponse}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/v1/modificaciones [get]
func (h *ModificacionHandler) List(c *fiber.Ctx) error {
	proyectoID, ok := scopedProject(c, c.Query("proyecto_id"))
	if !ok {
		return forbidden(c)
	}
	list, err := h.uc.List(c.UserContext(), proyectoID)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, list)
}

// Create godoc
// @Summary      Solicitar un cambio
// @Description  La solicitud nace en estado Pendiente con la fecha del servidor.
// @Tags         modificaciones
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateModificacionRequest  true  "proyecto_id, texto"
// @Success      201   {object}  dto.Envelope{data=dto.ModificacionResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/v1/modificaciones [post]
func (h *ModificacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateModificacionRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	if !ownsProject(c, in.ProyectoID) {
		return forbidden(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Created(c, out)
}

// UpdateEstado godoc
// @Summary      Cambiar el estado de una solicitud
// @Description  Solo avanza: Pendiente, En proceso, Completada. Retroceder responde 409.
// @Tags         modificaciones
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.UpdateModificacionRequest  true  "id, estado"
// @Success      200   {object}  dto.Envelope{data=dto.ModificacionResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/modificaciones [put]
func (h *ModificacionHandler) UpdateEstado(c *fiber.Ctx) error {
	var in dto.UpdateModificacionRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	out, err := h.uc.UpdateEstado(c.UserContext(), in)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}
