package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementFilter filtros del historial de movimientos y de los totales.
// Year/Month (si Month > 0) tienen prioridad sobre From/To.
type MovementFilter struct {
	From       *time.Time
	To         *time.Time
	Year       int
	Month      int
	Search     string // material, descripción (sin acentos ni mayúsculas)
	PartID     string
	EmployeeID string
	MachineID  *int64
	Direction  string
	FOC        string // all | foc | non_foc
	Page       PageRequest
}

// StockFilter filtros de la vista de stock.
type StockFilter struct {
	Search          string
	MachineTypeID   *int64
	MinStock        *int
	MaxStock        *int
	BelowSafetyOnly bool
	Page            PageRequest
}

// TotalsDTO totales del período. ExportedQty sigue la política de inclusión de FOC;
// ExportedFOCQty y ExportedPricedQty siempre se informan por separado.
type TotalsDTO struct {
	ImportedQty       int64           `json:"imported_qty"`
	ExportedQty       int64           `json:"exported_qty"`
	ExportedPricedQty int64           `json:"exported_priced_qty"`
	ExportedFOCQty    int64           `json:"exported_foc_qty"`
	FOCInExportTotals bool            `json:"foc_in_export_totals"`
	ImportValue       decimal.Decimal `json:"import_value"`
	ExportValue       decimal.Decimal `json:"export_value"`
	StockValue        decimal.Decimal `json:"stock_value"`
	TotalStock        int64           `json:"total_stock"`
	PartCount         int             `json:"part_count"`
	BelowSafetyCount  int             `json:"below_safety_count"`
}

// MonthlyPointDTO serie mensual de entradas y salidas.
type MonthlyPointDTO struct {
	Month        string          `json:"month"` // YYYY-MM
	ImportQty    int64           `json:"import_qty"`
	ExportQty    int64           `json:"export_qty"`
	ExportFOCQty int64           `json:"export_foc_qty"`
	ImportValue  decimal.Decimal `json:"import_value"`
	ExportValue  decimal.Decimal `json:"export_value"`
}

// DashboardResponse resumen para el tablero.
type DashboardResponse struct {
	Totals      TotalsDTO         `json:"totals"`
	Monthly     []MonthlyPointDTO `json:"monthly"`
	BelowSafety []PartResponse    `json:"below_safety"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// MovementRowDTO fila del historial, en el orden de columnas del reporte.
type MovementRowDTO struct {
	ID          int64           `json:"id"`
	MaterialNo  string          `json:"material_no"`
	Description string          `json:"description"`
	EmployeeID  string          `json:"employee_id"`
	Employee    string          `json:"employee"`
	GroupName   string          `json:"group_name"`
	Machine     string          `json:"machine"`
	MCPos       string          `json:"mc_pos"`
	Quantity    int             `json:"quantity"`
	Reason      string          `json:"reason"`
	Date        time.Time       `json:"date"`
	Direction   string          `json:"type"`
	FOC         bool            `json:"foc"`
	Value       decimal.Decimal `json:"value"`
	MergedCount int             `json:"merged_count"`
}

// MovementPage página del historial.
type MovementPage struct {
	Items []MovementRowDTO `json:"items"`
	Page  PageResponse     `json:"page"`
}

// StockPage página de la vista de stock.
type StockPage struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
