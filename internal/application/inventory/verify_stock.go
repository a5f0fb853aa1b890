package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// VerifyStockUseCase recalcula el stock de cada repuesto desde el ledger y lo compara con el cacheado.
// Es de solo lectura: informa diferencias, no las corrige.
type VerifyStockUseCase struct {
	snapshots SnapshotReader
	policy    ledger.Policy
}

// NewVerifyStockUseCase construye el caso de uso.
func NewVerifyStockUseCase(snapshots SnapshotReader, policy ledger.Policy) *VerifyStockUseCase {
	return &VerifyStockUseCase{snapshots: snapshots, policy: policy}
}

// Verify revisa todos los repuestos, o solo partID si no está vacío. Stock cacheado y ledger se leen
// en la misma instantánea, así un movimiento confirmado durante la revisión no aparece como desvío.
func (uc *VerifyStockUseCase) Verify(ctx context.Context, partID string) (*dto.VerifyStockResponse, error) {
	var out *dto.VerifyStockResponse
	err := uc.snapshots.ReadSnapshot(ctx, func(projectionRepo repository.ProjectionRepository, movRepo repository.MovementRepository) error {
		res, err := uc.verify(ctx, projectionRepo, movRepo, partID)
		out = res
		return err
	})
	if err != nil {
		if domain.IsDomainError(err) || ctx.Err() != nil {
			return nil, err
		}
		return nil, domain.StoreFailure("verificar stock", err)
	}
	return out, nil
}

func (uc *VerifyStockUseCase) verify(
	ctx context.Context,
	projectionRepo repository.ProjectionRepository,
	movRepo repository.MovementRepository,
	partID string,
) (*dto.VerifyStockResponse, error) {
	parts, err := projectionRepo.Parts(ctx, repository.PartFilter{PartID: entity.PartID(partID)})
	if err != nil {
		return nil, domain.StoreFailure("verificar stock", err)
	}
	if partID != "" && len(parts) == 0 {
		return nil, fmt.Errorf("repuesto %s: %w", partID, domain.ErrNotFound)
	}

	out := &dto.VerifyStockResponse{Drifts: []dto.StockDriftDTO{}}
	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		movs, err := movRepo.ListByPart(ctx, p.ID)
		if err != nil {
			return nil, domain.StoreFailure("verificar stock", err)
		}
		d := ledger.Drift{PartID: p.ID, Cached: p.Stock, Replayed: uc.policy.Replay(movs)}
		out.PartsChecked++
		if d.Delta() != 0 {
			out.Drifts = append(out.Drifts, dto.StockDriftDTO{
				PartID:   string(d.PartID),
				Cached:   d.Cached,
				Replayed: d.Replayed,
				Delta:    d.Delta(),
			})
		}
	}
	out.Consistent = len(out.Drifts) == 0
	return out, nil
}
