package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// ActorID solo se toma en cuenta con token de administrador; con token de operador el actor es el sujeto del token.
type RegisterMovementRequest struct {
	PartID     string     `json:"part_id"`
	Quantity   int        `json:"quantity"`
	Direction  string     `json:"direction"` // IMPORT | EXPORT
	LocationID *int64     `json:"location_id,omitempty"`
	Reason     string     `json:"reason"`
	ActorID    string     `json:"actor_id,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// MovementResultResponse resultado de registrar un movimiento.
type MovementResultResponse struct {
	RequestID        string `json:"request_id"`
	MovementID       int64  `json:"movement_id"`
	PartID           string `json:"part_id"`
	Direction        string `json:"direction"`
	Merged           bool   `json:"merged"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	StockDelta       int    `json:"stock_delta"`
	StockBefore      int    `json:"stock_before"`
	StockAfter       int    `json:"stock_after"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un repuesto bajo su stock de seguridad.
type ReplenishmentSuggestionDTO struct {
	PartID             string          `json:"part_id"`
	PartNo             string          `json:"part_no"`
	Description        string          `json:"description"`
	Bin                string          `json:"bin"`
	CurrentStock       int             `json:"current_stock"`
	SafetyStock        int             `json:"safety_stock"`
	IdealStock         int             `json:"ideal_stock"`          // ceil(SafetyStock * 1.5)
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitPrice
	Priority           int             `json:"priority"`             // 1 = más urgente
}

// StockDriftDTO diferencia entre el stock cacheado y el recalculado desde el ledger.
type StockDriftDTO struct {
	PartID   string `json:"part_id"`
	Cached   int    `json:"cached"`
	Replayed int    `json:"replayed"`
	Delta    int    `json:"delta"`
}

// VerifyStockResponse resultado de la verificación por replay.
type VerifyStockResponse struct {
	PartsChecked int             `json:"parts_checked"`
	Consistent   bool            `json:"consistent"`
	Drifts       []StockDriftDTO `json:"drifts"`
}
