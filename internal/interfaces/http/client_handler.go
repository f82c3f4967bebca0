package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/application/validation"
)

// ClientHandler maneja las peticiones HTTP de clientes (solo administrador).
type ClientHandler struct {
	uc  *usecase.ClientUseCase
	res *Responder
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase, res *Responder) *ClientHandler {
	return &ClientHandler{uc: uc, res: res}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateClientRequest  true  "nombre, empresa, email, telefono"
// @Success      201   {object}  dto.Envelope{data=dto.ClientResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/v1/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
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
// @Summary      Listar clientes
// @Tags         clients
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.Envelope{data=[]dto.ClientResponse}
// @Router       /api/v1/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, list)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.Envelope{data=dto.ClientResponse}
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}

// Update godoc
// @Summary      Actualizar cliente (parcial)
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.UpdateClientRequest  true  "id y campos a cambiar"
// @Success      200   {object}  dto.Envelope{data=dto.ClientResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/clients [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
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
// @Summary      Eliminar cliente (y en cascada sus proyectos)
// @Tags         clients
// @Produce      json
// @Security     Bearer
// @Param        id   query  string  true  "ID del cliente"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/clients [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := deleteID(c)
	if err != nil {
		return h.res.Fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Done(c, "cliente eliminado")
}

// deleteID lee y valida el ?id de los DELETE.
func deleteID(c *fiber.Ctx) (string, error) {
	in := dto.DeleteRequest{ID: c.Query("id")}
	if err := validation.Struct(in); err != nil {
		return "", err
	}
	return in.ID, nil
}
