package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// RegisterMovementUseCase motor de conciliación: registra entradas y salidas en el ledger y
// mantiene Part.Stock igual al replay del ledger, todo dentro de una única transacción.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	employeeRepo repository.EmployeeRepository
	machineRepo  repository.MachineRepository
	policy       ledger.Policy
	observers    []MovementObserver
	now          func() time.Time
}

// Option configura dependencias opcionales del motor.
type Option func(*RegisterMovementUseCase)

// WithObservers agrega observadores de resultados (logs, métricas, caché).
func WithObservers(obs ...MovementObserver) Option {
	return func(uc *RegisterMovementUseCase) { uc.observers = append(uc.observers, obs...) }
}

// WithClock reemplaza time.Now; las solicitudes sin timestamp usan este reloj.
func WithClock(now func() time.Time) Option {
	return func(uc *RegisterMovementUseCase) { uc.now = now }
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	employeeRepo repository.EmployeeRepository,
	machineRepo repository.MachineRepository,
	policy ledger.Policy,
	opts ...Option,
) *RegisterMovementUseCase {
	uc := &RegisterMovementUseCase{
		txRunner:     txRunner,
		employeeRepo: employeeRepo,
		machineRepo:  machineRepo,
		policy:       policy,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// MovementResult efecto de una solicitud aceptada.
type MovementResult struct {
	RequestID        string
	MovementID       entity.MovementID
	PartID           entity.PartID
	Direction        entity.Direction
	Merged           bool
	PreviousQuantity int // cantidad de la fila antes de fusionar; 0 si se insertó
	NewQuantity      int
	StockDelta       int
	StockBefore      int
	StockAfter       int
}

// Register valida la solicitud, la fusiona o inserta en el ledger y ajusta el stock en la misma transacción.
//
// Errores: ErrValidation (forma), ErrNotFound (repuesto, actor o ubicación),
// InsufficientStockError (salida no FOC mayor al stock), ErrStoreFailure (almacenamiento).
// Ante cualquier error no queda ningún cambio persistido.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, req entity.MovementRequest) (*MovementResult, error) {
	req = normalize(req)
	res, err := uc.register(ctx, req)
	if err != nil {
		for _, o := range uc.observers {
			o.MovementRejected(ctx, req, err)
		}
		return nil, err
	}
	for _, o := range uc.observers {
		o.MovementRecorded(ctx, req, res)
	}
	return res, nil
}

func (uc *RegisterMovementUseCase) register(ctx context.Context, req entity.MovementRequest) (*MovementResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = uc.now()
	}
	if err := uc.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	var res *MovementResult
	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, movRepo repository.MovementRepository) error {
		r, err := recordInTx(ctx, partRepo, movRepo, uc.policy, req)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, asDomainError("registrar movimiento", err)
	}
	res.RequestID = uuid.NewString()
	return res, nil
}

// checkReferences verifica actor y ubicación fuera de la transacción; el repuesto se verifica bajo bloqueo.
func (uc *RegisterMovementUseCase) checkReferences(ctx context.Context, req entity.MovementRequest) error {
	if err := checkActor(ctx, uc.employeeRepo, req.ActorID); err != nil {
		return err
	}
	if req.LocationID != nil {
		pos, err := uc.machineRepo.GetPosition(ctx, *req.LocationID)
		if err != nil {
			return domain.StoreFailure("buscar ubicación", err)
		}
		if pos == nil {
			return fmt.Errorf("ubicación %d: %w", *req.LocationID, domain.ErrNotFound)
		}
	}
	return nil
}

func checkActor(ctx context.Context, repo repository.EmployeeRepository, id entity.EmployeeID) error {
	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		return domain.StoreFailure("buscar empleado", err)
	}
	if emp == nil {
		return fmt.Errorf("empleado %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func normalize(req entity.MovementRequest) entity.MovementRequest {
	req.PartID = entity.PartID(strings.TrimSpace(string(req.PartID)))
	req.ActorID = entity.EmployeeID(strings.TrimSpace(string(req.ActorID)))
	req.Reason = strings.TrimSpace(req.Reason)
	req.Direction = entity.Direction(strings.ToUpper(strings.TrimSpace(string(req.Direction))))
	return req
}

func validateRequest(req entity.MovementRequest) error {
	switch {
	case req.PartID == "":
		return domain.Invalid("part_id", "obligatorio")
	case req.ActorID == "":
		return domain.Invalid("actor_id", "obligatorio")
	case !req.Direction.Valid():
		return domain.Invalid("direction", "debe ser IMPORT o EXPORT")
	case req.Quantity <= 0:
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	return nil
}

// recordInTx aplica una solicitud ya validada usando repositorios atados a la transacción en curso.
// El orden importa: bloqueo del repuesto, suficiencia, fusión o inserción, ajuste de stock.
func recordInTx(
	ctx context.Context,
	partRepo repository.PartRepository,
	movRepo repository.MovementRepository,
	policy ledger.Policy,
	req entity.MovementRequest,
) (*MovementResult, error) {
	part, err := partRepo.GetForUpdate(ctx, req.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("repuesto %s: %w", req.PartID, domain.ErrNotFound)
	}

	// Se valida la cantidad incremental contra el stock actual, no el total fusionado.
	if policy.RequiresSufficiency(req.Direction, req.Reason) && part.Stock < req.Quantity {
		return nil, &domain.InsufficientStockError{
			PartID:    string(part.ID),
			Requested: req.Quantity,
			Available: part.Stock,
		}
	}

	res := &MovementResult{
		PartID:      part.ID,
		Direction:   req.Direction,
		StockBefore: part.Stock,
		StockAfter:  part.Stock,
	}

	var candidate *entity.Movement
	if from, to, ok := policy.Window(req.Direction, req.Timestamp); ok {
		candidate, err = movRepo.FindMergeCandidate(ctx, ledger.KeyOf(req), from, to)
		if err != nil {
			return nil, err
		}
	}

	if candidate != nil {
		// La fila fusionada toma el timestamp de la última solicitud, aunque llegue con fecha anterior.
		if err := movRepo.AddQuantity(ctx, candidate.ID, req.Quantity, req.Timestamp); err != nil {
			return nil, err
		}
		res.MovementID = candidate.ID
		res.Merged = true
		res.PreviousQuantity = candidate.Quantity
		res.NewQuantity = candidate.Quantity + req.Quantity
	} else {
		m := &entity.Movement{
			PartID:      req.PartID,
			Quantity:    req.Quantity,
			Direction:   req.Direction,
			Timestamp:   req.Timestamp,
			ActorID:     req.ActorID,
			LocationID:  req.LocationID,
			Reason:      req.Reason,
			MergedCount: 1,
		}
		if err := movRepo.Create(ctx, m); err != nil {
			return nil, err
		}
		res.MovementID = m.ID
		res.NewQuantity = m.Quantity
	}

	res.StockDelta = policy.StockDelta(req.Direction, req.Reason, req.Quantity)
	if res.StockDelta != 0 {
		stock, err := partRepo.AdjustStock(ctx, part.ID, res.StockDelta)
		if err != nil {
			return nil, err
		}
		res.StockAfter = stock
	}
	if err := partRepo.TouchMovement(ctx, part.ID, req.Direction, req.Timestamp); err != nil {
		return nil, err
	}
	return res, nil
}

// asDomainError deja pasar los errores de la taxonomía y envuelve el resto como fallo de almacenamiento.
func asDomainError(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	return domain.StoreFailure(op, err)
}
