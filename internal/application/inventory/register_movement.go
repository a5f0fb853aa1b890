package inventory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso Register.
// actorID lo resuelve el handler desde el token.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, actorID string, in dto.RegisterMovementRequest) (*dto.MovementResultResponse, error) {
	req := entity.MovementRequest{
		PartID:    entity.PartID(in.PartID),
		Quantity:  in.Quantity,
		Direction: entity.Direction(in.Direction),
		ActorID:   entity.EmployeeID(actorID),
		Reason:    in.Reason,
	}
	if in.LocationID != nil {
		pos := entity.PositionID(*in.LocationID)
		req.LocationID = &pos
	}
	if in.Timestamp != nil {
		req.Timestamp = *in.Timestamp
	}
	res, err := uc.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return ToMovementResultResponse(res), nil
}

// ToMovementResultResponse convierte el resultado del motor al DTO de respuesta.
func ToMovementResultResponse(res *MovementResult) *dto.MovementResultResponse {
	if res == nil {
		return nil
	}
	return &dto.MovementResultResponse{
		RequestID:        res.RequestID,
		MovementID:       int64(res.MovementID),
		PartID:           string(res.PartID),
		Direction:        string(res.Direction),
		Merged:           res.Merged,
		PreviousQuantity: res.PreviousQuantity,
		NewQuantity:      res.NewQuantity,
		StockDelta:       res.StockDelta,
		StockBefore:      res.StockBefore,
		StockAfter:       res.StockAfter,
	}
}
