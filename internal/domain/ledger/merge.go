package ledger

import (
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// MergeKey campos que deciden si una solicitud se pliega en una fila existente.
// El período no forma parte de la estructura: lo aportan From/To de la ventana.
type MergeKey struct {
	PartID     entity.PartID
	Direction  entity.Direction
	ActorID    entity.EmployeeID
	LocationID *entity.PositionID // nil coincide solo con nil
	Reason     string
}

// KeyOf construye la clave de fusión de una solicitud.
func KeyOf(req entity.MovementRequest) MergeKey {
	return MergeKey{
		PartID:     req.PartID,
		Direction:  req.Direction,
		ActorID:    req.ActorID,
		LocationID: req.LocationID,
		Reason:     req.Reason,
	}
}

// Matches indica si la fila m comparte clave con k y cae dentro de [from, to).
func (k MergeKey) Matches(m entity.Movement, from, to time.Time) bool {
	if m.PartID != k.PartID || m.Direction != k.Direction || m.ActorID != k.ActorID || m.Reason != k.Reason {
		return false
	}
	if !samePosition(m.LocationID, k.LocationID) {
		return false
	}
	return !m.Timestamp.Before(from) && m.Timestamp.Before(to)
}

func samePosition(a, b *entity.PositionID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
