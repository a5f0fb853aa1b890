package entity

import "time"

// Direction sentido de un movimiento de inventario.
type Direction string

// Sentidos de movimiento.
const (
	DirectionImport Direction = "IMPORT" // entrada a bodega
	DirectionExport Direction = "EXPORT" // salida de bodega
)

// Valid indica si el sentido es uno de los conocidos.
func (d Direction) Valid() bool {
	return d == DirectionImport || d == DirectionExport
}

// Motivos reservados.
const (
	ReasonFOC          = "FOC"           // salida sin costo: se registra pero no descuenta stock
	ReasonOpeningStock = "opening stock" // entrada sintética al crear un repuesto con stock inicial
)

// MovementID identificador sustituto del ledger (BIGSERIAL, monótono).
type MovementID int64

// Movement fila del ledger de entradas y salidas.
// Una fila puede acumular varias solicitudes con la misma clave de fusión dentro del mismo período;
// MergedCount cuenta cuántas solicitudes se plegaron en ella.
type Movement struct {
	ID          MovementID
	PartID      PartID
	Quantity    int
	Direction   Direction
	Timestamp   time.Time
	ActorID     EmployeeID
	LocationID  *PositionID
	Reason      string
	MergedCount int
	CreatedAt   time.Time
}

// MovementRequest solicitud de movimiento tal como la entrega la capa de UI.
// Timestamp cero significa "ahora".
type MovementRequest struct {
	PartID     PartID
	Quantity   int
	Direction  Direction
	ActorID    EmployeeID
	LocationID *PositionID
	Reason     string
	Timestamp  time.Time
}
