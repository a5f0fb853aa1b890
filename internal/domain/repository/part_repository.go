package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// PartRepository define el puerto de persistencia del catálogo de repuestos (DIP).
// Stock solo cambia vía AdjustStock, dentro de la transacción del motor de conciliación.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	// GetByID devuelve nil, nil si el repuesto no existe.
	GetByID(ctx context.Context, id entity.PartID) (*entity.Part, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id entity.PartID) (*entity.Part, error)
	// Update modifica metadatos; nunca Stock ni las fechas de movimiento.
	Update(ctx context.Context, part *entity.Part) error
	// AdjustStock aplica stock += delta y devuelve el stock resultante.
	AdjustStock(ctx context.Context, id entity.PartID, delta int) (int, error)
	// TouchMovement actualiza last_import_at o last_export_at según el sentido.
	TouchMovement(ctx context.Context, id entity.PartID, dir entity.Direction, at time.Time) error
}
