package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
)

// HealthHandler expone el estado del servicio.
type HealthHandler struct {
	uc *usecase.HealthUseCase
}

// NewHealthHandler construye el handler.
func NewHealthHandler(uc *usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

// Check godoc
// @Summary      Estado del servicio y de la base de datos
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.HealthResponse}
// @Failure      503  {object}  dto.Envelope{data=dto.HealthResponse}
// @Router       /api/v1/health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	out := h.uc.Check(c.UserContext())
	if out.Status == "healthy" {
		return c.JSON(dto.OK(out))
	}
	env := dto.Fail(CodeUnavailable, "la base de datos no responde")
	env.Data = out
	return c.Status(fiber.StatusServiceUnavailable).JSON(env)
}
