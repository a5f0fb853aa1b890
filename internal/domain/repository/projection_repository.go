package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// FOCFilter filtro de salidas sin costo en las proyecciones.
type FOCFilter string

// Valores de FOCFilter.
const (
	FOCAll      FOCFilter = "all"
	FOCOnly     FOCFilter = "foc"
	FOCExcluded FOCFilter = "non_foc"
)

// ProjectionQuery filtros comunes de las consultas de lectura sobre el ledger.
// Los campos vacíos no filtran. FOCReason lo fija el caso de uso desde la política del ledger.
type ProjectionQuery struct {
	From       *time.Time // inclusivo
	To         *time.Time // exclusivo
	PartID     entity.PartID
	EmployeeID entity.EmployeeID
	MachineID  *entity.MachineID
	Direction  entity.Direction
	FOC        FOCFilter
	FOCReason  string
	// TimeZone nombre IANA para agrupar por mes; vacío usa la zona de la sesión.
	TimeZone string
}

// PartFilter filtros del catálogo para la vista de stock.
type PartFilter struct {
	PartID          entity.PartID
	MachineTypeID   *entity.MachineTypeID
	MinStock        *int
	MaxStock        *int
	BelowSafetyOnly bool
	SafetyCheckOnly bool
}

// MovementTotals cantidades y valores agregados de movimientos.
// ExportValue solo considera salidas con precio (no FOC).
type MovementTotals struct {
	ImportedQty       int64
	ExportedFOCQty    int64
	ExportedPricedQty int64
	ImportValue       decimal.Decimal
	ExportValue       decimal.Decimal
}

// StockTotals agregados del catálogo.
type StockTotals struct {
	PartCount   int
	TotalStock  int64
	StockValue  decimal.Decimal // sum(stock * price)
	BelowSafety int
}

// MovementRow fila del ledger enriquecida para tablas y exportes.
type MovementRow struct {
	ID           entity.MovementID
	PartID       entity.PartID
	Description  string
	Price        decimal.Decimal
	EmployeeID   entity.EmployeeID
	EmployeeName string
	GroupName    string
	MachineName  string
	PositionName string
	Quantity     int
	Direction    entity.Direction
	Reason       string
	Timestamp    time.Time
	MergedCount  int
}

// MonthlyPoint total mensual por sentido. Quantity incluye FOCQuantity; Value excluye las salidas FOC.
type MonthlyPoint struct {
	Month       string // YYYY-MM
	Direction   entity.Direction
	Quantity    int64
	FOCQuantity int64
	Value       decimal.Decimal
}

// PartView repuesto con el nombre de su tipo de máquina.
type PartView struct {
	entity.Part
	MachineTypeName string
}

// ProjectionRepository consultas de solo lectura para tableros y reportes.
// Las implementaciones no modifican el ledger ni el catálogo.
type ProjectionRepository interface {
	MovementTotals(ctx context.Context, q ProjectionQuery) (MovementTotals, error)
	StockTotals(ctx context.Context, f PartFilter) (StockTotals, error)
	// Movements devuelve las filas ordenadas por fecha descendente.
	Movements(ctx context.Context, q ProjectionQuery) ([]MovementRow, error)
	Monthly(ctx context.Context, q ProjectionQuery) ([]MonthlyPoint, error)
	Parts(ctx context.Context, f PartFilter) ([]PartView, error)
}
