package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

func validCreate() dto.CreatePartRequest {
	return dto.CreatePartRequest{
		ID: "A-100", Description: "Correa dentada", MachineTypeID: 1,
		Price: decimal.RequireFromString("12.50"), SafetyStock: 2, OpeningStock: 10, ActorID: "E001",
	}
}

func TestCreatePart_ConStockInicial(t *testing.T) {
	f := newFixture(t)

	out, err := f.creator.CreatePart(context.Background(), validCreate())
	require.NoError(t, err)

	assert.Equal(t, 10, out.Part.Stock)
	assert.Equal(t, "N/A", out.Part.PartNo)
	assert.Equal(t, "Ring", out.Part.MachineType)
	require.NotNil(t, out.OpeningMovement)
	assert.Equal(t, "IMPORT", out.OpeningMovement.Direction)

	rows := f.store.rows("A-100")
	require.Len(t, rows, 1)
	assert.Equal(t, entity.ReasonOpeningStock, rows[0].Reason)
	assert.Equal(t, entity.EmployeeID("E001"), rows[0].ActorID)
	assert.Equal(t, 10, f.store.part("A-100").Stock)
	assert.NotNil(t, f.store.part("A-100").LastImportAt)
	assertInvariant(t, f, "A-100")
}

func TestCreatePart_Duplicado(t *testing.T) {
	f := newFixture(t)
	_, err := f.creator.CreatePart(context.Background(), validCreate())
	require.NoError(t, err)

	_, err = f.creator.CreatePart(context.Background(), validCreate())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, f.store.rows("A-100"), 1, "el duplicado no agrega stock inicial")
	assert.Equal(t, 10, f.store.part("A-100").Stock)
}

func TestCreatePart_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mutate := map[string]func(*dto.CreatePartRequest){
		"material vacío":        func(r *dto.CreatePartRequest) { r.ID = " " },
		"descripción vacía":     func(r *dto.CreatePartRequest) { r.Description = "" },
		"precio negativo":       func(r *dto.CreatePartRequest) { r.Price = decimal.NewFromInt(-1) },
		"inicial negativo":      func(r *dto.CreatePartRequest) { r.OpeningStock = -1 },
		"seguridad negativa":    func(r *dto.CreatePartRequest) { r.SafetyStock = -1 },
		"tipo inexistente":      func(r *dto.CreatePartRequest) { r.MachineTypeID = 99 },
		"sin tipo":              func(r *dto.CreatePartRequest) { r.MachineTypeID = 0 },
		"stock sin actor":       func(r *dto.CreatePartRequest) { r.ActorID = "" },
	}
	for name, fn := range mutate {
		req := validCreate()
		fn(&req)
		_, err := f.creator.CreatePart(ctx, req)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}
	assert.Empty(t, f.store.parts)
}

func TestCreatePart_ActorInexistente(t *testing.T) {
	f := newFixture(t)
	req := validCreate()
	req.ActorID = "E404"

	_, err := f.creator.CreatePart(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.parts)
}

func TestCreatePart_SinStockInicialNoRequiereActor(t *testing.T) {
	f := newFixture(t)
	req := validCreate()
	req.OpeningStock = 0
	req.ActorID = ""

	out, err := f.creator.CreatePart(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, out.OpeningMovement)
	assert.Empty(t, f.store.rows("A-100"))
}

// Con o sin stock inicial, los observadores se enteran del alta (p. ej. para invalidar la caché).
func TestCreatePart_NotificaObservadores(t *testing.T) {
	s := newMemStore()
	obs := &recordingObserver{}
	creator := inventory.NewCreatePartUseCase(s, &memEmployees{s: s}, &memMachines{s: s}, testPolicy(), obs)
	ctx := context.Background()

	req := validCreate()
	req.OpeningStock = 0
	_, err := creator.CreatePart(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []entity.PartID{"A-100"}, obs.created)
	assert.Empty(t, obs.recorded)

	req = validCreate()
	req.ID = "B-200"
	_, err = creator.CreatePart(ctx, req)
	require.NoError(t, err)
	assert.Len(t, obs.recorded, 1, "el stock inicial llega como movimiento")
	assert.Equal(t, []entity.PartID{"A-100"}, obs.created)
}
