package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeParts struct {
	parts map[entity.PartID]*entity.Part
	err   error
}

func (f *fakeParts) Create(_ context.Context, p *entity.Part) error {
	f.parts[p.ID] = p
	return nil
}

func (f *fakeParts) GetByID(_ context.Context, id entity.PartID) (*entity.Part, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.parts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParts) GetForUpdate(ctx context.Context, id entity.PartID) (*entity.Part, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeParts) Update(_ context.Context, p *entity.Part) error {
	cur, ok := f.parts[p.ID]
	if !ok {
		return fmt.Errorf("repuesto %s: %w", p.ID, domain.ErrNotFound)
	}
	cp := *p
	cp.Stock = cur.Stock
	f.parts[p.ID] = &cp
	return nil
}

func (f *fakeParts) AdjustStock(context.Context, entity.PartID, int) (int, error) {
	return 0, errors.New("no usado")
}

func (f *fakeParts) TouchMovement(context.Context, entity.PartID, entity.Direction, time.Time) error {
	return nil
}

type fakeEmployees struct {
	byID map[entity.EmployeeID]*entity.Employee
}

func (f *fakeEmployees) Create(_ context.Context, e *entity.Employee) error {
	if _, ok := f.byID[e.ID]; ok {
		return fmt.Errorf("empleado %s: %w", e.ID, domain.ErrDuplicate)
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEmployees) GetByID(_ context.Context, id entity.EmployeeID) (*entity.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmployees) Update(_ context.Context, e *entity.Employee) error {
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEmployees) List(_ context.Context, limit, offset int) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

type fakeMachines struct {
	types     map[entity.MachineTypeID]*entity.MachineType
	machines  map[entity.MachineID]*entity.Machine
	positions []*entity.MachinePosition
	failList  bool
}

func newFakeMachines() *fakeMachines {
	return &fakeMachines{
		types:    map[entity.MachineTypeID]*entity.MachineType{1: {ID: 1, Name: "Ring"}, 2: {ID: 2, Name: "Winder"}},
		machines: map[entity.MachineID]*entity.Machine{},
	}
}

func (f *fakeMachines) CreateType(_ context.Context, t *entity.MachineType) error {
	t.ID = entity.MachineTypeID(len(f.types) + 1)
	f.types[t.ID] = t
	return nil
}

func (f *fakeMachines) GetType(_ context.Context, id entity.MachineTypeID) (*entity.MachineType, error) {
	return f.types[id], nil
}

func (f *fakeMachines) ListTypes(context.Context) ([]*entity.MachineType, error) {
	var out []*entity.MachineType
	for _, t := range f.types {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeMachines) CreateMachine(_ context.Context, m *entity.Machine) error {
	m.ID = entity.MachineID(len(f.machines) + 1)
	f.machines[m.ID] = m
	return nil
}

func (f *fakeMachines) GetMachine(_ context.Context, id entity.MachineID) (*entity.Machine, error) {
	return f.machines[id], nil
}

func (f *fakeMachines) ListMachines(context.Context) ([]*entity.Machine, error) {
	if f.failList {
		return nil, errors.New("conexión perdida")
	}
	var out []*entity.Machine
	for _, m := range f.machines {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMachines) CreatePosition(_ context.Context, p *entity.MachinePosition) error {
	p.ID = entity.PositionID(len(f.positions) + 1)
	f.positions = append(f.positions, p)
	return nil
}

func (f *fakeMachines) GetPosition(_ context.Context, id entity.PositionID) (*entity.MachinePosition, error) {
	for _, p := range f.positions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeMachines) ListPositions(_ context.Context, machineID *entity.MachineID) ([]*entity.MachinePosition, error) {
	var out []*entity.MachinePosition
	for _, p := range f.positions {
		if machineID == nil || p.MachineID == *machineID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ─── Repuestos ───────────────────────────────────────────────────────────────

func newPartUseCase() (*usecase.PartUseCase, *fakeParts) {
	parts := &fakeParts{parts: map[entity.PartID]*entity.Part{
		"A-100": {ID: "A-100", PartNo: "N/A", Description: "Correa", MachineTypeID: 1, Price: decimal.NewFromInt(10), Stock: 7, SafetyStock: 2},
	}}
	return usecase.NewPartUseCase(parts, newFakeMachines(), nil, nil), parts
}

func TestPartUseCase_GetByID(t *testing.T) {
	uc, _ := newPartUseCase()

	out, err := uc.GetByID(context.Background(), " A-100 ")
	require.NoError(t, err)
	assert.Equal(t, "Ring", out.MachineType)
	assert.True(t, out.StockValue.Equal(decimal.NewFromInt(70)))

	_, err = uc.GetByID(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartUseCase_UpdateNoTocaStock(t *testing.T) {
	uc, parts := newPartUseCase()
	desc := "Correa dentada"
	price := decimal.RequireFromString("11.25")
	typeID := int64(2)
	safety := 5
	blank := "  "

	out, err := uc.Update(context.Background(), "A-100", dto.UpdatePartRequest{
		Description: &desc, Price: &price, MachineTypeID: &typeID, SafetyStock: &safety, PartNo: &blank,
	})
	require.NoError(t, err)
	assert.Equal(t, "Winder", out.MachineType)
	assert.Equal(t, "N/A", out.PartNo)
	assert.Equal(t, 7, out.Stock)
	assert.False(t, out.BelowSafety)
	assert.Equal(t, 7, parts.parts["A-100"].Stock)
	assert.True(t, parts.parts["A-100"].Price.Equal(price))
}

type countingInvalidator struct {
	n   int
	err error
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.n++
	return c.err
}

func TestPartUseCase_UpdateInvalidaCache(t *testing.T) {
	parts := &fakeParts{parts: map[entity.PartID]*entity.Part{"A-100": {ID: "A-100", Description: "Correa", MachineTypeID: 1}}}
	inv := &countingInvalidator{}
	uc := usecase.NewPartUseCase(parts, newFakeMachines(), inv, nil)
	bin := "C-3"

	_, err := uc.Update(context.Background(), "A-100", dto.UpdatePartRequest{Bin: &bin})
	require.NoError(t, err)
	assert.Equal(t, 1, inv.n)

	neg := -2
	_, err = uc.Update(context.Background(), "A-100", dto.UpdatePartRequest{SafetyStock: &neg})
	require.Error(t, err)
	assert.Equal(t, 1, inv.n, "una edición rechazada no invalida")
}

// Si Redis falla tras confirmar la edición, la respuesta sigue siendo exitosa y queda un warn en el log.
func TestPartUseCase_FalloAlInvalidarSeRegistra(t *testing.T) {
	parts := &fakeParts{parts: map[entity.PartID]*entity.Part{"A-100": {ID: "A-100", Description: "Correa", MachineTypeID: 1}}}
	inv := &countingInvalidator{err: errors.New("redis caído")}
	var buf bytes.Buffer
	uc := usecase.NewPartUseCase(parts, newFakeMachines(), inv, logger.New(logger.Config{Env: "test", Output: &buf}))
	bin := "C-3"

	out, err := uc.Update(context.Background(), "A-100", dto.UpdatePartRequest{Bin: &bin})
	require.NoError(t, err)
	assert.Equal(t, "C-3", out.Bin)
	assert.Equal(t, 1, inv.n)

	logged := buf.String()
	assert.Contains(t, logged, `"level":"warn"`)
	assert.Contains(t, logged, "redis caído")
	assert.Contains(t, logged, `"part_id":"A-100"`)
}

func TestPartUseCase_UpdateValidaciones(t *testing.T) {
	uc, parts := newPartUseCase()
	neg := decimal.NewFromInt(-1)
	negInt := -1
	empty := ""
	missingType := int64(99)

	for name, in := range map[string]dto.UpdatePartRequest{
		"precio negativo":    {Price: &neg},
		"seguridad negativa": {SafetyStock: &negInt},
		"descripción vacía":  {Description: &empty},
		"tipo inexistente":   {MachineTypeID: &missingType},
	} {
		_, err := uc.Update(context.Background(), "A-100", in)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}
	assert.Equal(t, "Correa", parts.parts["A-100"].Description)

	_, err := uc.Update(context.Background(), "NOPE", dto.UpdatePartRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPartUseCase_FalloDeAlmacenamiento(t *testing.T) {
	uc, parts := newPartUseCase()
	parts.err = errors.New("timeout")

	_, err := uc.GetByID(context.Background(), "A-100")
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
}

// ─── Empleados ───────────────────────────────────────────────────────────────

func TestEmployeeUseCase_CrearYActualizar(t *testing.T) {
	repo := &fakeEmployees{byID: map[entity.EmployeeID]*entity.Employee{}}
	uc := usecase.NewEmployeeUseCase(repo)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.EmployeeRequest{ID: " E001 ", Name: "Nguyễn Văn An", ShiftStart: "06:00", ShiftEnd: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, "E001", out.ID)
	assert.True(t, out.Active)
	assert.Equal(t, entity.EmployeeStatusWorking, out.Status)

	_, err = uc.Create(ctx, dto.EmployeeRequest{ID: "E001", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	inactive := false
	out, err = uc.Update(ctx, "E001", dto.EmployeeRequest{Name: "Nguyễn Văn An", Status: "Resigned", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, out.Active)
	assert.Equal(t, entity.EmployeeStatusResigned, out.Status)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEmployeeUseCase_Validaciones(t *testing.T) {
	uc := usecase.NewEmployeeUseCase(&fakeEmployees{byID: map[entity.EmployeeID]*entity.Employee{}})
	ctx := context.Background()

	for name, in := range map[string]dto.EmployeeRequest{
		"sin código":     {Name: "Ana"},
		"sin nombre":     {ID: "E002"},
		"turno inválido": {ID: "E002", Name: "Ana", ShiftStart: "25:00"},
		"estado extraño": {ID: "E002", Name: "Ana", Status: "vacaciones"},
	} {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}

	_, err := uc.Update(ctx, "E404", dto.EmployeeRequest{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Máquinas ────────────────────────────────────────────────────────────────

func TestMachineUseCase_MaquinasYPosiciones(t *testing.T) {
	repo := newFakeMachines()
	uc := usecase.NewMachineUseCase(repo)
	ctx := context.Background()

	m, err := uc.CreateMachine(ctx, dto.MachineRequest{Name: "RING-07", GroupName: "G1"})
	require.NoError(t, err)

	pos, err := uc.CreatePosition(ctx, dto.PositionRequest{MachineID: m.ID, Name: "Izquierda"})
	require.NoError(t, err)
	assert.Equal(t, m.ID, pos.MachineID)

	_, err = uc.CreatePosition(ctx, dto.PositionRequest{MachineID: 999, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListPositions(ctx, &m.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	ty, err := uc.CreateType(ctx, dto.MachineTypeRequest{Name: " Twister "})
	require.NoError(t, err)
	assert.Equal(t, "Twister", ty.Name)

	_, err = uc.CreateMachine(ctx, dto.MachineRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	repo.failList = true
	_, err = uc.ListMachines(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreFailure)
}
