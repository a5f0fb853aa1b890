package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// MasterHandler datos maestros: empleados, tipos de máquina, máquinas y posiciones.
type MasterHandler struct {
	employees *usecase.EmployeeUseCase
	machines  *usecase.MachineUseCase
	log       *logger.Logger
}

// NewMasterHandler construye el handler.
func NewMasterHandler(employees *usecase.EmployeeUseCase, machines *usecase.MachineUseCase, log *logger.Logger) *MasterHandler {
	return &MasterHandler{employees: employees, machines: machines, log: log}
}

// ── Empleados ─────────────────────────────────────────────────────────────────

// CreateEmployee godoc
// @Summary      Crear empleado
// @Tags         master-data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeRequest  true  "Empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *MasterHandler) CreateEmployee(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateEmployee godoc
// @Summary      Actualizar empleado
// @Tags         master-data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "amann_id"
// @Param        body  body  dto.EmployeeRequest  true  "Empleado"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *MasterHandler) UpdateEmployee(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetEmployee godoc
// @Summary      Obtener empleado
// @Tags         master-data
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "amann_id"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *MasterHandler) GetEmployee(c *fiber.Ctx) error {
	out, err := h.employees.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListEmployees godoc
// @Summary      Listar empleados
// @Tags         master-data
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *MasterHandler) ListEmployees(c *fiber.Ctx) error {
	out, err := h.employees.List(c.UserContext(), page(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ── Máquinas ──────────────────────────────────────────────────────────────────

// CreateMachineType godoc
// @Summary      Crear tipo de máquina
// @Tags         master-data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MachineTypeRequest  true  "Tipo"
// @Success      201   {object}  dto.MachineTypeResponse
// @Router       /api/machine-types [post]
func (h *MasterHandler) CreateMachineType(c *fiber.Ctx) error {
	var in dto.MachineTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.machines.CreateType(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMachineTypes godoc
// @Summary      Listar tipos de máquina
// @Tags         master-data
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MachineTypeResponse
// @Router       /api/machine-types [get]
func (h *MasterHandler) ListMachineTypes(c *fiber.Ctx) error {
	out, err := h.machines.ListTypes(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateMachine godoc
// @Summary      Crear máquina
// @Tags         master-data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MachineRequest  true  "Máquina"
// @Success      201   {object}  dto.MachineResponse
// @Router       /api/machines [post]
func (h *MasterHandler) CreateMachine(c *fiber.Ctx) error {
	var in dto.MachineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.machines.CreateMachine(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMachine godoc
// @Summary      Obtener máquina
// @Tags         master-data
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.MachineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/machines/{id} [get]
func (h *MasterHandler) GetMachine(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.machines.GetMachine(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListMachines godoc
// @Summary      Listar máquinas
// @Tags         master-data
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MachineResponse
// @Router       /api/machines [get]
func (h *MasterHandler) ListMachines(c *fiber.Ctx) error {
	out, err := h.machines.ListMachines(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreatePosition godoc
// @Summary      Crear posición de máquina
// @Tags         master-data
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PositionRequest  true  "Posición"
// @Success      201   {object}  dto.PositionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/machine-positions [post]
func (h *MasterHandler) CreatePosition(c *fiber.Ctx) error {
	var in dto.PositionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.machines.CreatePosition(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPositions godoc
// @Summary      Listar posiciones
// @Tags         master-data
// @Security     Bearer
// @Produce      json
// @Param        machine_id  query  int  false  "Solo las de esta máquina"
// @Success      200  {array}  dto.PositionResponse
// @Router       /api/machine-positions [get]
func (h *MasterHandler) ListPositions(c *fiber.Ctx) error {
	machineID, err := queryInt64(c, "machine_id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.machines.ListPositions(c.UserContext(), machineID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
