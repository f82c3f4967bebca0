package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/application/validation"
	"github.com/jhoicas/Proyectos-api/internal/domain"
)

// PaymentHandler maneja los pagos de los proyectos.
type PaymentHandler struct {
	uc  *usecase.PaymentUseCase
	res *Responder
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *usecase.PaymentUseCase, res *Responder) *PaymentHandler {
	return &PaymentHandler{uc: uc, res: res}
}

// Create godoc
// @Summary      Registrar pago
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreatePaymentRequest  true  "proyecto_id, monto, fecha_pago, estado"
// @Success      201   {object}  dto.Envelope{data=dto.PaymentResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/v1/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
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
// @Summary      Listar pagos
// @Description  Un cliente solo ve los pagos de su proyecto.
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        proyecto_id  query  string  false  "filtrar por proyecto"
// @Success      200  {object}  dto.Envelope{data=[]dto.PaymentResponse}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/v1/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener pago
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {object}  dto.Envelope{data=dto.PaymentResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Actualizar pago (parcial)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.UpdatePaymentRequest  true  "id y campos a cambiar"
// @Success      200   {object}  dto.Envelope{data=dto.PaymentResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/v1/payments [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
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
// @Summary      Eliminar pago
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id   query  string  true  "ID del pago"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/v1/payments [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := deleteID(c)
	if err != nil {
		return h.res.Fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.Done(c, "pago eliminado")
}
