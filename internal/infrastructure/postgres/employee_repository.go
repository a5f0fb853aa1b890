package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, name, title, level, active, address, phone, shift_start, shift_end, department, status, created_at, updated_at`

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Title, e.Level, e.Active, e.Address, e.Phone,
		e.ShiftStart, e.ShiftEnd, e.Department, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("empleado %s: %w", e.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si el empleado no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id entity.EmployeeID) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	e.UpdatedAt = time.Now()
	query := `
		UPDATE employees SET name = $2, title = $3, level = $4, active = $5, address = $6, phone = $7,
			shift_start = $8, shift_end = $9, department = $10, status = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Title, e.Level, e.Active, e.Address, e.Phone,
		e.ShiftStart, e.ShiftEnd, e.Department, e.Status, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("empleado %s: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *EmployeeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Title, &e.Level, &e.Active, &e.Address, &e.Phone,
		&e.ShiftStart, &e.ShiftEnd, &e.Department, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
