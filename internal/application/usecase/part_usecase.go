package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// Invalidator descarta proyecciones en caché cuando cambia el catálogo (precio, stock de seguridad).
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// PartUseCase consulta y edición de metadatos del catálogo. El stock se maneja vía movimientos.
type PartUseCase struct {
	repo        repository.PartRepository
	machineRepo repository.MachineRepository
	invalidator Invalidator
	log         *logger.Logger
	now         func() time.Time
}

// NewPartUseCase construye el caso de uso. invalidator y log pueden ser nil.
func NewPartUseCase(repo repository.PartRepository, machineRepo repository.MachineRepository, invalidator Invalidator, log *logger.Logger) *PartUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PartUseCase{repo: repo, machineRepo: machineRepo, invalidator: invalidator, log: log.Component("parts"), now: time.Now}
}

// GetByID obtiene un repuesto por su material_no.
func (uc *PartUseCase) GetByID(ctx context.Context, id string) (*dto.PartResponse, error) {
	part, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, part)
}

// Update actualiza metadatos. No permite modificar Stock (se maneja vía movimientos).
func (uc *PartUseCase) Update(ctx context.Context, id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.PartNo != nil {
		part.PartNo = strings.TrimSpace(*in.PartNo)
		if part.PartNo == "" {
			part.PartNo = "N/A"
		}
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return nil, domain.Invalid("description", "obligatorio")
		}
		part.Description = desc
	}
	if in.MachineTypeID != nil {
		t, err := uc.machineRepo.GetType(ctx, entity.MachineTypeID(*in.MachineTypeID))
		if err != nil {
			return nil, domain.StoreFailure("tipo de máquina", err)
		}
		if t == nil {
			return nil, domain.Invalid("machine_type_id", "tipo de máquina inexistente")
		}
		part.MachineTypeID = t.ID
	}
	if in.Bin != nil {
		part.Bin = strings.TrimSpace(*in.Bin)
	}
	if in.CostCenter != nil {
		part.CostCenter = strings.TrimSpace(*in.CostCenter)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Invalid("price", "no puede ser negativo")
		}
		part.Price = *in.Price
	}
	if in.SafetyStock != nil {
		if *in.SafetyStock < 0 {
			return nil, domain.Invalid("safety_stock", "no puede ser negativo")
		}
		part.SafetyStock = *in.SafetyStock
	}
	if in.SafetyStockCheck != nil {
		part.SafetyStockCheck = *in.SafetyStockCheck
	}
	if in.ImageURL != nil {
		part.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	if err := uc.repo.Update(ctx, part); err != nil {
		if domain.IsDomainError(err) {
			return nil, err
		}
		return nil, domain.StoreFailure("actualizar repuesto", err)
	}
	if uc.invalidator != nil {
		// La edición ya está confirmada; un fallo aquí solo deja la caché vigente hasta su TTL.
		if err := uc.invalidator.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Str("part_id", string(part.ID)).Msg("no se pudo invalidar la caché de proyecciones")
		}
	}
	return uc.toResponse(ctx, part)
}

func (uc *PartUseCase) get(ctx context.Context, id string) (*entity.Part, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.Invalid("material_no", "obligatorio")
	}
	part, err := uc.repo.GetByID(ctx, entity.PartID(id))
	if err != nil {
		return nil, domain.StoreFailure("obtener repuesto", err)
	}
	if part == nil {
		return nil, fmt.Errorf("repuesto %s: %w", id, domain.ErrNotFound)
	}
	return part, nil
}

func (uc *PartUseCase) toResponse(ctx context.Context, p *entity.Part) (*dto.PartResponse, error) {
	var typeName string
	t, err := uc.machineRepo.GetType(ctx, p.MachineTypeID)
	if err != nil {
		return nil, domain.StoreFailure("tipo de máquina", err)
	}
	if t != nil {
		typeName = t.Name
	}
	out := dto.PartFromEntity(p, typeName, uc.now())
	return &out, nil
}
