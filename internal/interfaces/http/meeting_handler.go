package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/application/validation"
	"github.com/jhoicas/Proyectos-api/internal/domain"
)

// MeetingHandler maneja las reuniones de los proyectos.
type MeetingHandler struct {
	uc  *usecase.MeetingUseCase
	res *Responder
}

// NewMeetingHandler construye el handler.
func NewMeetingHandler(uc *usecase.MeetingUseCase, res *Responder) *MeetingHandler {
	return &MeetingHandler{uc: uc, res: res}
}

// Create godoc
// @Summary      Programar reunión
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateMeetingRequest  true  "proyecto_id, titulo, fecha, hora, tipo"
// @Success      201   {object}  dto.Envelope{data=dto.MeetingResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/v1/meetings [post]
func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMeetingRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Created(c, out)
}

// List godoc
// @Summary      Listar reuniones
// @Description  Un cliente solo ve las reuniones de su proyecto.
// @Tags         meetings
// @Produce      json
// @Security     Bearer
// @Param        proyecto_id  query  string  false  "filtrar por proyecto"
// @Success      200  {object}  dto.Envelope{data=[]dto.MeetingResponse}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/v1/meetings [get]
func (h *MeetingHandler) List(c *fiber.Ctx) error {
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

// GetByID godoc
// @Summary      Obtener reunión
// @Tags         meetings
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reunión"
// @Success      200  {object}  dto.Envelope{data=dto.MeetingResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/meetings/{id} [get]
func (h *MeetingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.res.Fail(c, err)
	}
	// fuera del proyecto de la sesión responde igual que un id inexistente
	if !ownsProject(c, out.ProyectoID) {
		return h.res.Fail(c, domain.ErrNotFound)
	}
	return h.res.OK(c, out)
}

// Update godoc
// @Summary      Actualizar reunión (parcial)
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.UpdateMeetingRequest  true  "id y campos a cambiar"
// @Success      200   {object}  dto.Envelope{data=dto.MeetingResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/meetings [put]
func (h *MeetingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMeetingRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}

// Delete godoc
// @Summary      Eliminar reunión
// @Tags         meetings
// @Produce      json
// @Security     Bearer
// @Param        id   query  string  true  "ID de la reunión"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/meetings [delete]
func (h *MeetingHandler) Delete(c *fiber.Ctx) error {
	id, err := deleteID(c)
	if err != nil {
		return h.res.Fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Done(c, "reunión eliminada")
}
