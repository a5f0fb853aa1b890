package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartID código humano del repuesto (material_no). Estable y único.
type PartID string

// MachineTypeID identificador del tipo de máquina asociado a un repuesto.
type MachineTypeID int64

// Part representa un repuesto del catálogo.
// Stock es una caché derivada del ledger: solo la modifica el motor de conciliación.
type Part struct {
	ID               PartID
	PartNo           string // "N/A" si el proveedor no asigna número
	Description      string
	MachineTypeID    MachineTypeID
	Bin              string
	CostCenter       string
	Price            decimal.Decimal
	Stock            int
	SafetyStock      int
	SafetyStockCheck bool
	ImageURL         string
	LastImportAt     *time.Time
	LastExportAt     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BelowSafety indica si el stock actual está por debajo del stock de seguridad.
func (p *Part) BelowSafety() bool {
	return p.Stock < p.SafetyStock
}

// StockValue valor del inventario del repuesto (stock * precio).
func (p *Part) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// DaysInStorage días que el repuesto lleva almacenado desde la última entrada.
// Si el repuesto se agotó, cuenta hasta la última salida. Sin entradas devuelve nil.
func (p *Part) DaysInStorage(now time.Time) *int {
	if p.LastImportAt == nil {
		return nil
	}
	end := now
	if p.Stock <= 0 && p.LastExportAt != nil && p.LastExportAt.After(*p.LastImportAt) {
		end = *p.LastExportAt
	}
	days := int(end.Sub(*p.LastImportAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}
