package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/application/validation"
)

// MessageHandler maneja el chat entre administrador y cliente de cada proyecto.
type MessageHandler struct {
	uc  *usecase.MessageUseCase
	res *Responder
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *usecase.MessageUseCase, res *Responder) *MessageHandler {
	return &MessageHandler{uc: uc, res: res}
}

// List godoc
// @Summary      Mensajes de un proyecto (orden cronológico)
// @Tags         messages
// @Produce      json
// @Security     Bearer
// @Param        project_id  query  string  false  "proyecto (por defecto el de la sesión de cliente)"
// @Success      200  {object}  dto.Envelope{data=[]dto.MessageResponse}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/v1/messages [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	projectID, ok := scopedProject(c, c.Query("project_id"))
	if !ok {
		return forbidden(c)
	}
	list, err := h.uc.List(c.UserContext(), projectID)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, list)
}

// Create godoc
// @Summary      Enviar mensaje
// @Description  El emisor es el rol de la sesión; read=false y timestamp los asigna el servidor.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateMessageRequest  true  "project_id, text"
// @Success      201   {object}  dto.Envelope{data=dto.MessageResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/v1/messages [post]
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMessageRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	if !ownsProject(c, in.ProjectID) {
		return forbidden(c)
	}
	out, err := h.uc.Create(c.UserContext(), in, GetRole(c))
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Created(c, out)
}

// MarkRead godoc
// @Summary      Marcar mensajes recibidos como leídos
// @Description  Solo cambian los mensajes del otro extremo del chat que aún no estaban leídos.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.MarkReadRequest  true  "ids"
// @Success      200   {object}  dto.Envelope{data=dto.MarkReadResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/v1/messages/read [post]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	var in dto.MarkReadRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	projectID, ok := scopedProject(c, "")
	if !ok {
		return forbidden(c)
	}
	out, err := h.uc.MarkRead(c.UserContext(), in.IDs, GetRole(c), projectID)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}

// Update godoc
// @Summary      Editar el texto de un mensaje
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.UpdateMessageRequest  true  "id, text"
// @Success      200   {object}  dto.Envelope{data=dto.MessageResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/messages [put]
func (h *MessageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMessageRequest
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
// @Summary      Eliminar mensaje
// @Tags         messages
// @Produce      json
// @Security     Bearer
// @Param        id   query  string  true  "ID del mensaje"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/messages [delete]
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, err := deleteID(c)
	if err != nil {
		return h.res.Fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Done(c, "mensaje eliminado")
}
