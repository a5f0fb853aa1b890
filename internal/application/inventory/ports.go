package inventory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// SnapshotReader ejecuta lecturas dentro de una única instantánea de la base: fn ve el catálogo y el
// ledger tal como estaban al empezar, sin escrituras concurrentes a medias.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(
		projectionRepo repository.ProjectionRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// MovementObserver recibe el resultado de cada solicitud después del commit o del rollback.
// Los observadores no pueden alterar el resultado; sus fallos se quedan en ellos.
type MovementObserver interface {
	MovementRecorded(ctx context.Context, req entity.MovementRequest, res *MovementResult)
	MovementRejected(ctx context.Context, req entity.MovementRequest, err error)
}

// PartObserver es opcional para un MovementObserver: recibe las altas de repuestos que no
// generan movimiento inicial.
type PartObserver interface {
	PartCreated(ctx context.Context, part *entity.Part)
}
