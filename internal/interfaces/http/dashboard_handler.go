package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/zonekids/zonekids-api/internal/application/analytics"
	"github.com/zonekids/zonekids-api/internal/application/dto"
)

// DashboardHandler maneja el endpoint del panel de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los contadores del panel.
// GET /api/v1/admin/dashboard
//
// Respuesta: DashboardSummaryDTO (productos, usuarios por rol, órdenes por estado,
// ingresos de órdenes pagadas y pendientes). Las consultas corren en paralelo.
//
// @Summary      Resumen del panel
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.DashboardSummaryDTO}
// @Router       /api/v1/admin/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(summary, ""))
}
