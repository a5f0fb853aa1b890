package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var shiftPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// EmployeeUseCase casos de uso CRUD para empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registra un empleado. Por defecto queda activo y en estado "working".
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	e := &entity.Employee{ID: entity.EmployeeID(strings.TrimSpace(in.ID)), Active: true}
	if e.ID == "" {
		return nil, domain.Invalid("amann_id", "obligatorio")
	}
	if err := apply(e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, storeErr("crear empleado", err)
	}
	return toEmployeeResponse(e), nil
}

// GetByID obtiene un empleado.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// Update reemplaza los datos del empleado; el código no cambia.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, storeErr("actualizar empleado", err)
	}
	return toEmployeeResponse(e), nil
}

// List lista empleados con paginación.
func (uc *EmployeeUseCase) List(ctx context.Context, p dto.PageRequest) ([]dto.EmployeeResponse, error) {
	p.DefaultPage()
	list, err := uc.repo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, domain.StoreFailure("listar empleados", err)
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return items, nil
}

func (uc *EmployeeUseCase) get(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := uc.repo.GetByID(ctx, entity.EmployeeID(strings.TrimSpace(id)))
	if err != nil {
		return nil, domain.StoreFailure("obtener empleado", err)
	}
	if e == nil {
		return nil, fmt.Errorf("empleado %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// apply valida el body y copia los campos al empleado.
func apply(e *entity.Employee, in dto.EmployeeRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalid("name", "obligatorio")
	}
	for field, v := range map[string]string{"shift_start": in.ShiftStart, "shift_end": in.ShiftEnd} {
		if v != "" && !shiftPattern.MatchString(v) {
			return domain.Invalid(field, "formato HH:MM")
		}
	}
	status := strings.ToLower(strings.TrimSpace(in.Status))
	switch status {
	case "":
		status = entity.EmployeeStatusWorking
	case entity.EmployeeStatusWorking, entity.EmployeeStatusResigned:
	default:
		return domain.Invalid("status", "debe ser working o resigned")
	}

	e.Name = name
	e.Title = strings.TrimSpace(in.Title)
	e.Level = strings.TrimSpace(in.Level)
	e.Address = strings.TrimSpace(in.Address)
	e.Phone = strings.TrimSpace(in.Phone)
	e.ShiftStart = in.ShiftStart
	e.ShiftEnd = in.ShiftEnd
	e.Department = strings.TrimSpace(in.Department)
	e.Status = status
	if in.Active != nil {
		e.Active = *in.Active
	}
	return nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         string(e.ID),
		Name:       e.Name,
		Title:      e.Title,
		Level:      e.Level,
		Active:     e.Active,
		Address:    e.Address,
		Phone:      e.Phone,
		ShiftStart: e.ShiftStart,
		ShiftEnd:   e.ShiftEnd,
		Department: e.Department,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// storeErr deja pasar los errores de dominio (duplicado, no encontrado) y envuelve el resto.
func storeErr(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	return domain.StoreFailure(op, err)
}
