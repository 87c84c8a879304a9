package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-generator/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de facturación.
// GET /api/dashboard/summary?company_id=
//
// Respuesta: DashboardSummaryDTO (total_invoices, by_status, total_revenue, today_revenue,
// outstanding_amount, date_label). Sin company_id resume todas las empresas.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), c.Query("company_id"))
	if err != nil {
		return writeError(c, err, "empresa no encontrada")
	}
	return c.JSON(summary)
}
