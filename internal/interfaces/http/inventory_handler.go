package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario (protegido).
type InventoryHandler struct {
	uc            *inventory.RegisterMovementUseCase
	replenishment *inventory.ReplenishmentUseCase
	verify        *inventory.VerifyStockUseCase
	projections   *analytics.ProjectionUseCase
	log           *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	uc *inventory.RegisterMovementUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	verify *inventory.VerifyStockUseCase,
	projections *analytics.ProjectionUseCase,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment, verify: verify, projections: projections, log: log}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Entrada (IMPORT) o salida (EXPORT) de un repuesto. Se fusiona con el último movimiento
// @Description  equivalente dentro de la ventana (día para salidas, mes para entradas). Una salida FOC no descuenta stock.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "part_id, quantity, direction, location_id, reason; actor_id solo con token admin"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), actorFor(c, in.ActorID), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        year         query  int     false  "Año"
// @Param        month        query  int     false  "Mes (1-12)"
// @Param        from         query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta, exclusivo"
// @Param        q            query  string  false  "Búsqueda sin acentos por material, descripción, empleado o máquina"
// @Param        direction    query  string  false  "IMPORT | EXPORT"
// @Param        foc          query  string  false  "all | foc | non_foc"
// @Param        machine_id   query  int     false  "Máquina"
// @Param        limit        query  int     false  "Tamaño de página"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementPage
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.projections.Movements(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Repuestos con control de stock de seguridad que están por debajo del mínimo,
// @Description  con la cantidad sugerida de pedido y su costo estimado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// VerifyStock godoc
// @Summary      Verificar stock contra el ledger
// @Description  Recalcula el stock de cada repuesto reproduciendo sus movimientos y reporta las diferencias. No corrige nada.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        part_id  query  string  false  "Solo este repuesto"
// @Success      200  {object}  dto.VerifyStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/verify [get]
func (h *InventoryHandler) VerifyStock(c *fiber.Ctx) error {
	out, err := h.verify.Verify(c.UserContext(), c.Query("part_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
