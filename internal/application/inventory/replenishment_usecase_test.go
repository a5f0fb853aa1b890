package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

func TestGenerateReplenishmentList(t *testing.T) {
	s := newMemStore()
	price := decimal.RequireFromString("4.00")
	s.seedPart(entity.Part{ID: "A", Stock: 3, SafetyStock: 4, SafetyStockCheck: true, Price: price})
	s.seedPart(entity.Part{ID: "B", Stock: 0, SafetyStock: 5, SafetyStockCheck: true, Price: price})
	s.seedPart(entity.Part{ID: "C", Stock: 0, SafetyStock: 5, SafetyStockCheck: false, Price: price})
	s.seedPart(entity.Part{ID: "D", Stock: 9, SafetyStock: 5, SafetyStockCheck: true, Price: price})

	list, err := inventory.NewReplenishmentUseCase(&memProjection{s: s}).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2, "solo repuestos con control activo y bajo el mínimo")

	// B está agotado: déficit relativo 100%
	assert.Equal(t, "B", list[0].PartID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 8, list[0].IdealStock, "ceil(5 * 1.5)")
	assert.Equal(t, 8, list[0].SuggestedOrderQty)
	assert.True(t, list[0].EstimatedOrderCost.Equal(decimal.NewFromInt(32)))

	assert.Equal(t, "A", list[1].PartID)
	assert.Equal(t, 6, list[1].IdealStock)
	assert.Equal(t, 3, list[1].SuggestedOrderQty)
}

func TestGenerateReplenishmentList_Vacia(t *testing.T) {
	list, err := inventory.NewReplenishmentUseCase(&memProjection{s: newMemStore()}).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
