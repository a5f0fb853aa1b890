package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
)

// MovementRepository define el puerto de persistencia del ledger de movimientos.
// Las filas nunca se borran; solo pueden incrementar su cantidad al fusionarse.
type MovementRepository interface {
	// Create inserta la fila y asigna m.ID.
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id entity.MovementID) (*entity.Movement, error)
	// FindMergeCandidate busca la fila con la clave dada y timestamp en [from, to), bloqueándola.
	// Devuelve nil, nil si no hay candidata.
	FindMergeCandidate(ctx context.Context, key ledger.MergeKey, from, to time.Time) (*entity.Movement, error)
	// AddQuantity suma delta a la fila, refresca su timestamp y cuenta la fusión.
	AddQuantity(ctx context.Context, id entity.MovementID, delta int, at time.Time) error
	// ListByPart devuelve todas las filas del repuesto en orden cronológico.
	ListByPart(ctx context.Context, partID entity.PartID) ([]entity.Movement, error)
}
