package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// ─── Almacén en memoria ──────────────────────────────────────────────────────
// memStore emula la base: Run serializa las transacciones (como el bloqueo de fila)
// y restaura el estado previo si fn falla.

type memStore struct {
	mu        sync.Mutex
	parts     map[entity.PartID]entity.Part
	movs      []entity.Movement
	nextID    entity.MovementID
	employees map[entity.EmployeeID]*entity.Employee
	positions map[entity.PositionID]*entity.MachinePosition
	types     map[entity.MachineTypeID]*entity.MachineType

	failAdjust error // si no es nil, AdjustStock falla con este error
	failCommit error
	txCount    int
}

func newMemStore() *memStore {
	return &memStore{
		parts:     map[entity.PartID]entity.Part{},
		employees: map[entity.EmployeeID]*entity.Employee{"E001": {ID: "E001", Name: "Operario", Active: true, Status: entity.EmployeeStatusWorking}},
		positions: map[entity.PositionID]*entity.MachinePosition{1: {ID: 1, MachineID: 1, Name: "POS-1"}},
		types:     map[entity.MachineTypeID]*entity.MachineType{1: {ID: 1, Name: "Ring"}},
	}
}

func (s *memStore) Run(ctx context.Context, fn func(repository.PartRepository, repository.MovementRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++

	partsSnap := make(map[entity.PartID]entity.Part, len(s.parts))
	for k, v := range s.parts {
		partsSnap[k] = v
	}
	movsSnap := append([]entity.Movement(nil), s.movs...)
	nextSnap := s.nextID

	err := fn(&memParts{s: s}, &memMovs{s: s})
	if err == nil && s.failCommit != nil {
		err = s.failCommit
	}
	if err != nil {
		s.parts, s.movs, s.nextID = partsSnap, movsSnap, nextSnap
		return err
	}
	return nil
}

// ReadSnapshot copia catálogo y ledger y ejecuta fn sobre la copia; lo que se confirme en el almacén
// mientras fn corre no se ve.
func (s *memStore) ReadSnapshot(_ context.Context, fn func(repository.ProjectionRepository, repository.MovementRepository) error) error {
	s.mu.Lock()
	snap := &memStore{
		parts:  make(map[entity.PartID]entity.Part, len(s.parts)),
		movs:   append([]entity.Movement(nil), s.movs...),
		nextID: s.nextID,
	}
	for k, v := range s.parts {
		snap.parts[k] = v
	}
	s.mu.Unlock()
	return fn(&memProjection{s: snap}, &memMovs{s: snap})
}

func (s *memStore) part(id entity.PartID) entity.Part {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parts[id]
}

func (s *memStore) rows(id entity.PartID) []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Movement
	for _, m := range s.movs {
		if m.PartID == id {
			out = append(out, m)
		}
	}
	return out
}

// seedPart inserta un repuesto directamente, sin pasar por el motor.
func (s *memStore) seedPart(p entity.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[p.ID] = p
}

// ─── PartRepository ──────────────────────────────────────────────────────────

type memParts struct{ s *memStore }

func (r *memParts) Create(_ context.Context, p *entity.Part) error {
	if _, ok := r.s.parts[p.ID]; ok {
		return domain.ErrDuplicate
	}
	p.CreatedAt = time.Now()
	r.s.parts[p.ID] = *p
	return nil
}

func (r *memParts) GetByID(_ context.Context, id entity.PartID) (*entity.Part, error) {
	p, ok := r.s.parts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memParts) GetForUpdate(ctx context.Context, id entity.PartID) (*entity.Part, error) {
	return r.GetByID(ctx, id)
}

func (r *memParts) Update(_ context.Context, p *entity.Part) error {
	cur, ok := r.s.parts[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = cur.Stock
	r.s.parts[p.ID] = *p
	return nil
}

func (r *memParts) AdjustStock(_ context.Context, id entity.PartID, delta int) (int, error) {
	if r.s.failAdjust != nil {
		return 0, r.s.failAdjust
	}
	p, ok := r.s.parts[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return 0, errors.New("violación CHECK stock >= 0")
	}
	p.Stock += delta
	r.s.parts[id] = p
	return p.Stock, nil
}

func (r *memParts) TouchMovement(_ context.Context, id entity.PartID, dir entity.Direction, at time.Time) error {
	p := r.s.parts[id]
	if dir == entity.DirectionImport {
		p.LastImportAt = &at
	} else {
		p.LastExportAt = &at
	}
	r.s.parts[id] = p
	return nil
}

// ─── MovementRepository ──────────────────────────────────────────────────────

type memMovs struct{ s *memStore }

func (r *memMovs) Create(_ context.Context, m *entity.Movement) error {
	r.s.nextID++
	m.ID = r.s.nextID
	r.s.movs = append(r.s.movs, *m)
	return nil
}

func (r *memMovs) GetByID(_ context.Context, id entity.MovementID) (*entity.Movement, error) {
	for _, m := range r.s.movs {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *memMovs) FindMergeCandidate(_ context.Context, key ledger.MergeKey, from, to time.Time) (*entity.Movement, error) {
	for i := len(r.s.movs) - 1; i >= 0; i-- {
		if key.Matches(r.s.movs[i], from, to) {
			m := r.s.movs[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r *memMovs) AddQuantity(_ context.Context, id entity.MovementID, delta int, at time.Time) error {
	for i := range r.s.movs {
		if r.s.movs[i].ID == id {
			r.s.movs[i].Quantity += delta
			r.s.movs[i].Timestamp = at
			r.s.movs[i].MergedCount++
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memMovs) ListByPart(_ context.Context, partID entity.PartID) ([]entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Movement
	for _, m := range r.s.movs {
		if m.PartID == partID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ─── Datos maestros ──────────────────────────────────────────────────────────

type memEmployees struct{ s *memStore }

func (r *memEmployees) Create(_ context.Context, e *entity.Employee) error {
	r.s.employees[e.ID] = e
	return nil
}

func (r *memEmployees) GetByID(_ context.Context, id entity.EmployeeID) (*entity.Employee, error) {
	return r.s.employees[id], nil
}

func (r *memEmployees) Update(_ context.Context, e *entity.Employee) error {
	r.s.employees[e.ID] = e
	return nil
}

func (r *memEmployees) List(_ context.Context, _, _ int) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.s.employees {
		out = append(out, e)
	}
	return out, nil
}

type memMachines struct{ s *memStore }

func (r *memMachines) CreateType(_ context.Context, t *entity.MachineType) error {
	r.s.types[t.ID] = t
	return nil
}

func (r *memMachines) GetType(_ context.Context, id entity.MachineTypeID) (*entity.MachineType, error) {
	return r.s.types[id], nil
}

func (r *memMachines) ListTypes(context.Context) ([]*entity.MachineType, error) { return nil, nil }

func (r *memMachines) CreateMachine(context.Context, *entity.Machine) error { return nil }

func (r *memMachines) GetMachine(context.Context, entity.MachineID) (*entity.Machine, error) {
	return nil, nil
}

func (r *memMachines) ListMachines(context.Context) ([]*entity.Machine, error) { return nil, nil }

func (r *memMachines) CreatePosition(_ context.Context, p *entity.MachinePosition) error {
	r.s.positions[p.ID] = p
	return nil
}

func (r *memMachines) GetPosition(_ context.Context, id entity.PositionID) (*entity.MachinePosition, error) {
	return r.s.positions[id], nil
}

func (r *memMachines) ListPositions(context.Context, *entity.MachineID) ([]*entity.MachinePosition, error) {
	return nil, nil
}

// ─── Proyección mínima (solo Parts) ──────────────────────────────────────────

type memProjection struct{ s *memStore }

func (r *memProjection) MovementTotals(context.Context, repository.ProjectionQuery) (repository.MovementTotals, error) {
	return repository.MovementTotals{}, nil
}

func (r *memProjection) StockTotals(context.Context, repository.PartFilter) (repository.StockTotals, error) {
	return repository.StockTotals{}, nil
}

func (r *memProjection) Movements(context.Context, repository.ProjectionQuery) ([]repository.MovementRow, error) {
	return nil, nil
}

func (r *memProjection) Monthly(context.Context, repository.ProjectionQuery) ([]repository.MonthlyPoint, error) {
	return nil, nil
}

func (r *memProjection) Parts(_ context.Context, f repository.PartFilter) ([]repository.PartView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.PartView
	for _, p := range r.s.parts {
		if f.PartID != "" && p.ID != f.PartID {
			continue
		}
		if f.BelowSafetyOnly && !p.BelowSafety() {
			continue
		}
		if f.SafetyCheckOnly && !p.SafetyStockCheck {
			continue
		}
		out = append(out, repository.PartView{Part: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ─── Observador que guarda lo recibido ───────────────────────────────────────

type recordingObserver struct {
	mu       sync.Mutex
	recorded []*inventory.MovementResult
	rejected []error
	created  []entity.PartID
}

func (o *recordingObserver) MovementRecorded(_ context.Context, _ entity.MovementRequest, res *inventory.MovementResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recorded = append(o.recorded, res)
}

func (o *recordingObserver) MovementRejected(_ context.Context, _ entity.MovementRequest, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected = append(o.rejected, err)
}

func (o *recordingObserver) PartCreated(_ context.Context, p *entity.Part) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.created = append(o.created, p.ID)
}
