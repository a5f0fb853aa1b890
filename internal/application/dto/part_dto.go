package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest body para POST /api/parts.
// OpeningStock > 0 registra una entrada "opening stock" a nombre de ActorID.
type CreatePartRequest struct {
	ID               string          `json:"material_no"`
	PartNo           string          `json:"part_no"`
	Description      string          `json:"description"`
	MachineTypeID    int64           `json:"machine_type_id"`
	Bin              string          `json:"bin"`
	CostCenter       string          `json:"cost_center"`
	Price            decimal.Decimal `json:"price"`
	SafetyStock      int             `json:"safety_stock"`
	SafetyStockCheck bool            `json:"safety_stock_check"`
	ImageURL         string          `json:"image_url,omitempty"`
	OpeningStock     int             `json:"opening_stock"`
	ActorID          string          `json:"actor_id,omitempty"`
}

// UpdatePartRequest body para PUT /api/parts/:id. Los campos nil no cambian; el stock nunca se edita aquí.
type UpdatePartRequest struct {
	PartNo           *string          `json:"part_no,omitempty"`
	Description      *string          `json:"description,omitempty"`
	MachineTypeID    *int64           `json:"machine_type_id,omitempty"`
	Bin              *string          `json:"bin,omitempty"`
	CostCenter       *string          `json:"cost_center,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	SafetyStock      *int             `json:"safety_stock,omitempty"`
	SafetyStockCheck *bool            `json:"safety_stock_check,omitempty"`
	ImageURL         *string          `json:"image_url,omitempty"`
}

// PartResponse repuesto con su estado derivado.
type PartResponse struct {
	ID               string          `json:"material_no"`
	PartNo           string          `json:"part_no"`
	Description      string          `json:"description"`
	MachineTypeID    int64           `json:"machine_type_id"`
	MachineType      string          `json:"machine_type,omitempty"`
	Bin              string          `json:"bin"`
	CostCenter       string          `json:"cost_center"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock"`
	SafetyStock      int             `json:"safety_stock"`
	SafetyStockCheck bool            `json:"safety_stock_check"`
	BelowSafety      bool            `json:"below_safety"`
	StockValue       decimal.Decimal `json:"stock_value"`
	DaysInStorage    *int            `json:"days_in_storage"`
	ImageURL         string          `json:"image_url,omitempty"`
	LastImportAt     *time.Time      `json:"import_date"`
	LastExportAt     *time.Time      `json:"export_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreatePartResponse repuesto creado y, si hubo stock inicial, el movimiento que lo registró.
type CreatePartResponse struct {
	Part            PartResponse            `json:"part"`
	OpeningMovement *MovementResultResponse `json:"opening_movement,omitempty"`
}
