package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/analytics"
)

// DashboardHandler resumen del panel de administración.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	res *Responder
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, res *Responder) *DashboardHandler {
	return &DashboardHandler{uc: uc, res: res}
}

// Summary godoc
// @Summary      Resumen del panel: proyectos, cobros del mes y pendientes
// @Tags         dashboard
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.Envelope{data=dto.DashboardSummary}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return h.res.Fail(c, err)
	}
	return h.res.OK(c, out)
}
