package dto

import (
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// PartFromEntity construye la respuesta con los campos derivados calculados a la fecha now.
func PartFromEntity(p *entity.Part, machineType string, now time.Time) PartResponse {
	return PartResponse{
		ID:               string(p.ID),
		PartNo:           p.PartNo,
		Description:      p.Description,
		MachineTypeID:    int64(p.MachineTypeID),
		MachineType:      machineType,
		Bin:              p.Bin,
		CostCenter:       p.CostCenter,
		Price:            p.Price,
		Stock:            p.Stock,
		SafetyStock:      p.SafetyStock,
		SafetyStockCheck: p.SafetyStockCheck,
		BelowSafety:      p.BelowSafety(),
		StockValue:       p.StockValue().Round(2),
		DaysInStorage:    p.DaysInStorage(now),
		ImageURL:         p.ImageURL,
		LastImportAt:     p.LastImportAt,
		LastExportAt:     p.LastExportAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
