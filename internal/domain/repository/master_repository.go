package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia de empleados (CRUD sin invariantes propias).
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id entity.EmployeeID) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	List(ctx context.Context, limit, offset int) ([]*entity.Employee, error)
}

// MachineRepository define el puerto de persistencia de tipos de máquina, máquinas y posiciones.
type MachineRepository interface {
	CreateType(ctx context.Context, t *entity.MachineType) error
	GetType(ctx context.Context, id entity.MachineTypeID) (*entity.MachineType, error)
	ListTypes(ctx context.Context) ([]*entity.MachineType, error)

	CreateMachine(ctx context.Context, m *entity.Machine) error
	GetMachine(ctx context.Context, id entity.MachineID) (*entity.Machine, error)
	ListMachines(ctx context.Context) ([]*entity.Machine, error)

	CreatePosition(ctx context.Context, p *entity.MachinePosition) error
	GetPosition(ctx context.Context, id entity.PositionID) (*entity.MachinePosition, error)
	ListPositions(ctx context.Context, machineID *entity.MachineID) ([]*entity.MachinePosition, error)
}
