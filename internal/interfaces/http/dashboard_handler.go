package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc  *analytics.ProjectionUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.ProjectionUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Totales de entradas y salidas (FOC informado aparte), valor del stock, serie mensual
// @Description  y repuestos bajo stock de seguridad. Acepta los mismos filtros que el historial.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        year     query  int     false  "Año"
// @Param        month    query  int     false  "Mes (1-12)"
// @Param        part_id  query  string  false  "Repuesto"
// @Param        foc      query  string  false  "all | foc | non_foc"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	summary, err := h.uc.Dashboard(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
