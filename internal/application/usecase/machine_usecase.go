package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// MachineUseCase datos maestros de planta: tipos de máquina, máquinas y posiciones.
type MachineUseCase struct {
	repo repository.MachineRepository
}

// NewMachineUseCase construye el caso de uso.
func NewMachineUseCase(repo repository.MachineRepository) *MachineUseCase {
	return &MachineUseCase{repo: repo}
}

// CreateType crea un tipo de máquina.
func (uc *MachineUseCase) CreateType(ctx context.Context, in dto.MachineTypeRequest) (*dto.MachineTypeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "obligatorio")
	}
	t := &entity.MachineType{Name: name}
	if err := uc.repo.CreateType(ctx, t); err != nil {
		return nil, storeErr("crear tipo de máquina", err)
	}
	return &dto.MachineTypeResponse{ID: int64(t.ID), Name: t.Name}, nil
}

// ListTypes lista los tipos de máquina.
func (uc *MachineUseCase) ListTypes(ctx context.Context) ([]dto.MachineTypeResponse, error) {
	list, err := uc.repo.ListTypes(ctx)
	if err != nil {
		return nil, domain.StoreFailure("listar tipos de máquina", err)
	}
	out := make([]dto.MachineTypeResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.MachineTypeResponse{ID: int64(t.ID), Name: t.Name})
	}
	return out, nil
}

// CreateMachine crea una máquina.
func (uc *MachineUseCase) CreateMachine(ctx context.Context, in dto.MachineRequest) (*dto.MachineResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "obligatorio")
	}
	m := &entity.Machine{
		Name:       name,
		GroupName:  strings.TrimSpace(in.GroupName),
		Department: strings.TrimSpace(in.Department),
	}
	if err := uc.repo.CreateMachine(ctx, m); err != nil {
		return nil, storeErr("crear máquina", err)
	}
	return toMachineResponse(m), nil
}

// GetMachine obtiene una máquina.
func (uc *MachineUseCase) GetMachine(ctx context.Context, id int64) (*dto.MachineResponse, error) {
	m, err := uc.repo.GetMachine(ctx, entity.MachineID(id))
	if err != nil {
		return nil, domain.StoreFailure("obtener máquina", err)
	}
	if m == nil {
		return nil, fmt.Errorf("máquina %d: %w", id, domain.ErrNotFound)
	}
	return toMachineResponse(m), nil
}

// ListMachines lista las máquinas.
func (uc *MachineUseCase) ListMachines(ctx context.Context) ([]dto.MachineResponse, error) {
	list, err := uc.repo.ListMachines(ctx)
	if err != nil {
		return nil, domain.StoreFailure("listar máquinas", err)
	}
	out := make([]dto.MachineResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMachineResponse(m))
	}
	return out, nil
}

// CreatePosition crea una posición dentro de una máquina existente.
func (uc *MachineUseCase) CreatePosition(ctx context.Context, in dto.PositionRequest) (*dto.PositionResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("mc_pos", "obligatorio")
	}
	if _, err := uc.GetMachine(ctx, in.MachineID); err != nil {
		return nil, err
	}
	p := &entity.MachinePosition{MachineID: entity.MachineID(in.MachineID), Name: name}
	if err := uc.repo.CreatePosition(ctx, p); err != nil {
		return nil, storeErr("crear posición", err)
	}
	return toPositionResponse(p), nil
}

// ListPositions lista posiciones; machineID nil devuelve todas.
func (uc *MachineUseCase) ListPositions(ctx context.Context, machineID *int64) ([]dto.PositionResponse, error) {
	var filter *entity.MachineID
	if machineID != nil {
		id := entity.MachineID(*machineID)
		filter = &id
	}
	list, err := uc.repo.ListPositions(ctx, filter)
	if err != nil {
		return nil, domain.StoreFailure("listar posiciones", err)
	}
	out := make([]dto.PositionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPositionResponse(p))
	}
	return out, nil
}

func toMachineResponse(m *entity.Machine) *dto.MachineResponse {
	return &dto.MachineResponse{
		ID:         int64(m.ID),
		Name:       m.Name,
		GroupName:  m.GroupName,
		Department: m.Department,
		CreatedAt:  m.CreatedAt,
	}
}

func toPositionResponse(p *entity.MachinePosition) *dto.PositionResponse {
	return &dto.PositionResponse{ID: int64(p.ID), MachineID: int64(p.MachineID), Name: p.Name}
}
