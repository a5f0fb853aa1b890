package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/report"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// ReportHandler descargas xlsx/pdf del historial y del stock.
type ReportHandler struct {
	uc  *report.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// ExportMovements godoc
// @Summary      Exportar historial de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  false  "xlsx (default) | pdf"
// @Param        year    query  int     false  "Año"
// @Param        month   query  int     false  "Mes"
// @Param        q       query  string  false  "Búsqueda"
// @Param        foc     query  string  false  "all | foc | non_foc"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) ExportMovements(c *fiber.Ctx) error {
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	f, err := movementFilter(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Movements(c.UserContext(), f, format)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendArtifact(c, out)
}

// ExportStock godoc
// @Summary      Exportar vista de stock
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format           query  string  false  "xlsx (default) | pdf"
// @Param        q                query  string  false  "Búsqueda"
// @Param        machine_type_id  query  int     false  "Tipo de máquina"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) ExportStock(c *fiber.Ctx) error {
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	f, err := stockFilter(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Stock(c.UserContext(), f, format)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendArtifact(c, out)
}

func sendArtifact(c *fiber.Ctx, a *report.Artifact) error {
	c.Set(fiber.HeaderContentType, a.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, a.Filename))
	return c.Send(a.Data)
}
