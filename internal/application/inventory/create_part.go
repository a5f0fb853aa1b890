package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// CreatePartUseCase da de alta repuestos. El stock inicial entra por el mismo camino que cualquier
// entrada (movimiento "opening stock") y en la misma transacción que el alta.
type CreatePartUseCase struct {
	txRunner     TxRunner
	employeeRepo repository.EmployeeRepository
	machineRepo  repository.MachineRepository
	policy       ledger.Policy
	observers    []MovementObserver
	now          func() time.Time
}

// NewCreatePartUseCase construye el caso de uso. Los observadores reciben el movimiento de stock inicial.
func NewCreatePartUseCase(
	txRunner TxRunner,
	employeeRepo repository.EmployeeRepository,
	machineRepo repository.MachineRepository,
	policy ledger.Policy,
	observers ...MovementObserver,
) *CreatePartUseCase {
	return &CreatePartUseCase{
		txRunner:     txRunner,
		employeeRepo: employeeRepo,
		machineRepo:  machineRepo,
		policy:       policy,
		observers:    observers,
		now:          time.Now,
	}
}

// CreatePart valida, inserta el repuesto con stock 0 y, si OpeningStock > 0, registra la entrada inicial.
func (uc *CreatePartUseCase) CreatePart(ctx context.Context, in dto.CreatePartRequest) (*dto.CreatePartResponse, error) {
	part, err := uc.validate(in)
	if err != nil {
		return nil, err
	}

	mt, err := uc.machineRepo.GetType(ctx, part.MachineTypeID)
	if err != nil {
		return nil, domain.StoreFailure("buscar tipo de máquina", err)
	}
	if mt == nil {
		return nil, domain.Invalid("machine_type_id", "tipo de máquina inexistente")
	}

	var opening *entity.MovementRequest
	if in.OpeningStock > 0 {
		actor := entity.EmployeeID(strings.TrimSpace(in.ActorID))
		if actor == "" {
			return nil, domain.Invalid("actor_id", "obligatorio cuando hay stock inicial")
		}
		if err := checkActor(ctx, uc.employeeRepo, actor); err != nil {
			return nil, err
		}
		opening = &entity.MovementRequest{
			PartID:    part.ID,
			Quantity:  in.OpeningStock,
			Direction: entity.DirectionImport,
			ActorID:   actor,
			Reason:    entity.ReasonOpeningStock,
			Timestamp: uc.now(),
		}
	}

	var res *MovementResult
	err = uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, movRepo repository.MovementRepository) error {
		existing, err := partRepo.GetByID(ctx, part.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("repuesto %s: %w", part.ID, domain.ErrDuplicate)
		}
		if err := partRepo.Create(ctx, part); err != nil {
			return err
		}
		if opening == nil {
			return nil
		}
		r, err := recordInTx(ctx, partRepo, movRepo, uc.policy, *opening)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		err = asDomainError("crear repuesto", err)
		if opening != nil {
			for _, o := range uc.observers {
				o.MovementRejected(ctx, *opening, err)
			}
		}
		return nil, err
	}

	out := &dto.CreatePartResponse{}
	if res != nil {
		res.RequestID = uuid.NewString()
		part.Stock = res.StockAfter
		at := opening.Timestamp
		part.LastImportAt = &at
		for _, o := range uc.observers {
			o.MovementRecorded(ctx, *opening, res)
		}
		out.OpeningMovement = ToMovementResultResponse(res)
	} else {
		for _, o := range uc.observers {
			if po, ok := o.(PartObserver); ok {
				po.PartCreated(ctx, part)
			}
		}
	}
	out.Part = dto.PartFromEntity(part, mt.Name, uc.now())
	return out, nil
}

func (uc *CreatePartUseCase) validate(in dto.CreatePartRequest) (*entity.Part, error) {
	id := strings.TrimSpace(in.ID)
	desc := strings.TrimSpace(in.Description)
	switch {
	case id == "":
		return nil, domain.Invalid("material_no", "obligatorio")
	case desc == "":
		return nil, domain.Invalid("description", "obligatorio")
	case in.Price.IsNegative():
		return nil, domain.Invalid("price", "no puede ser negativo")
	case in.OpeningStock < 0:
		return nil, domain.Invalid("opening_stock", "no puede ser negativo")
	case in.SafetyStock < 0:
		return nil, domain.Invalid("safety_stock", "no puede ser negativo")
	case in.MachineTypeID <= 0:
		return nil, domain.Invalid("machine_type_id", "obligatorio")
	}
	partNo := strings.TrimSpace(in.PartNo)
	if partNo == "" {
		partNo = "N/A"
	}
	return &entity.Part{
		ID:               entity.PartID(id),
		PartNo:           partNo,
		Description:      desc,
		MachineTypeID:    entity.MachineTypeID(in.MachineTypeID),
		Bin:              strings.TrimSpace(in.Bin),
		CostCenter:       strings.TrimSpace(in.CostCenter),
		Price:            in.Price,
		SafetyStock:      in.SafetyStock,
		SafetyStockCheck: in.SafetyStockCheck,
		ImageURL:         strings.TrimSpace(in.ImageURL),
	}, nil
}
