package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/application/validation"
	"github.com/jhoicas/Proyectos-api/internal/domain"
)

// ProjectHandler maneja proyectos, su checklist y el reporte PDF.
type ProjectHandler struct {
	uc  *usecase.ProjectUseCase
	res *Responder
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase, res *Responder) *ProjectHandler {
	return &ProjectHandler{uc: uc, res: res}
}

// Create godoc
// @Summary      Crear proyecto
// @Description  El servidor asigna el código de acceso y calcula el avance a partir del checklist inicial.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateProjectRequest  true  "nombre, cliente_id, checklists"
// @Success      201   {object}  dto.Envelope{data=dto.ProjectResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/v1/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
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
// @Summary      Listar proyectos
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        cliente_id  query  string  false  "filtrar por cliente"
// @Success      200  {object}  dto.Envelope{data=[]dto.ProjectResponse}
// @Router       /api/v1/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("cliente_id"))
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, list)
}

// GetByID godoc
// @Summary      Obtener proyecto
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.Envelope{data=dto.ProjectResponse}
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}

// Update godoc
// @Summary      Actualizar proyecto (parcial)
// @Description  No modifica código, avance ni checklist.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.UpdateProjectRequest  true  "id y campos a cambiar"
// @Success      200   {object}  dto.Envelope{data=dto.ProjectResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/projects [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}

// UpdateChecklist godoc
// @Summary      Reemplazar el checklist
// @Description  Reescribe la lista completa y recalcula el avance en una sola escritura.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                      true  "ID del proyecto"
// @Param        body  body  dto.UpdateChecklistRequest  true  "checklists"
// @Success      200   {object}  dto.Envelope{data=dto.ProjectResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/projects/{id}/checklist [put]
func (h *ProjectHandler) UpdateChecklist(c *fiber.Ctx) error {
	var in dto.UpdateChecklistRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	out, err := h.uc.UpdateChecklist(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}

// ToggleTask godoc
// @Summary      Marcar o desmarcar una tarea
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id     path  string                 true  "ID del proyecto"
// @Param        index  path  int                    true  "posición de la tarea (desde 0)"
// @Param        body   body  dto.ToggleTaskRequest  true  "checked"
// @Success      200    {object}  dto.Envelope{data=dto.ProjectResponse}
// @Failure      400    {object}  dto.Envelope
// @Failure      404    {object}  dto.Envelope
// @Router       /api/v1/projects/{id}/checklist/{index} [patch]
func (h *ProjectHandler) ToggleTask(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return h.res.Fail(c, domain.NewFieldError("index", domain.FieldType, "debe ser un entero"))
	}
	var in dto.ToggleTaskRequest
	if err := validation.DecodeAndValidate(c.Body(), &in); err != nil {
		return h.res.Fail(c, err)
	}
	out, err := h.uc.ToggleTask(c.UserContext(), c.Params("id"), index, *in.Checked)
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}

// Delete godoc
// @Summary      Eliminar proyecto
// @Description  Pagos, reuniones, mensajes y modificaciones del proyecto se eliminan en cascada.
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        id   query  string  true  "ID del proyecto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/projects [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := deleteID(c)
	if err != nil {
		return h.res.Fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Done(c, "proyecto eliminado")
}

// Report godoc
// @Summary      Reporte PDF del estado del proyecto
// @Tags         projects
// @Produce      application/pdf
// @Security     Bearer
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/projects/{id}/report [get]
func (h *ProjectHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Report(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.res.Fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
