package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// PartHandler catálogo de repuestos.
type PartHandler struct {
	create      *inventory.CreatePartUseCase
	parts       *usecase.PartUseCase
	projections *analytics.ProjectionUseCase
	log         *logger.Logger
}

// NewPartHandler construye el handler.
func NewPartHandler(create *inventory.CreatePartUseCase, parts *usecase.PartUseCase, projections *analytics.ProjectionUseCase, log *logger.Logger) *PartHandler {
	return &PartHandler{create: create, parts: parts, projections: projections, log: log}
}

// Create godoc
// @Summary      Crear repuesto
// @Description  opening_stock > 0 registra una entrada "opening stock" a nombre de actor_id.
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "Repuesto"
// @Success      201   {object}  dto.CreatePartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ActorID = actorFor(c, in.ActorID)
	out, err := h.create.CreatePart(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Vista de stock
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        q                query  string  false  "Búsqueda por material, part no, descripción, bin o centro de costo"
// @Param        machine_type_id  query  int     false  "Tipo de máquina"
// @Param        min_stock        query  int     false  "Stock mínimo"
// @Param        max_stock        query  int     false  "Stock máximo"
// @Param        below_safety     query  bool    false  "Solo bajo stock de seguridad"
// @Param        limit            query  int     false  "Tamaño de página"
// @Param        offset           query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockPage
// @Router       /api/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	f, err := stockFilter(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.projections.StockView(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener repuesto
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "material_no"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *PartHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.parts.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos de un repuesto
// @Description  El stock no se edita aquí; solo cambia con movimientos.
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "material_no"
// @Param        body  body  dto.UpdatePartRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.PartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.parts.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
