package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: repuestos con control de stock de seguridad
// activo y stock por debajo de él.
type ReplenishmentUseCase struct {
	projectionRepo repository.ProjectionRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(projectionRepo repository.ProjectionRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{projectionRepo: projectionRepo}
}

// GenerateReplenishmentList devuelve las sugerencias ordenadas por urgencia.
// Stock ideal = ceil(safety * 1.5); cantidad sugerida = ideal - stock; costo = cantidad * precio.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	parts, err := uc.projectionRepo.Parts(ctx, repository.PartFilter{BelowSafetyOnly: true, SafetyCheckOnly: true})
	if err != nil {
		return nil, domain.StoreFailure("lista de reposición", err)
	}
	if len(parts) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(parts))
	for _, p := range parts {
		ideal := int(decimal.NewFromInt(int64(p.SafetyStock)).Mul(factor).Ceil().IntPart())
		qty := ideal - p.Stock
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			PartID:             string(p.ID),
			PartNo:             p.PartNo,
			Description:        p.Description,
			Bin:                p.Bin,
			CurrentStock:       p.Stock,
			SafetyStock:        p.SafetyStock,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitPrice:          p.Price,
			EstimatedOrderCost: p.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2),
		})
	}

	// Primero el mayor déficit relativo (agotados al frente), luego el mayor déficit absoluto.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra, rb := deficitRatio(a), deficitRatio(b)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return a.SafetyStock-a.CurrentStock > b.SafetyStock-b.CurrentStock
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func deficitRatio(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
	if s.SafetyStock == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.SafetyStock - s.CurrentStock)).Div(decimal.NewFromInt(int64(s.SafetyStock)))
}
