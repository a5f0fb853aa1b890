package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.MachineRepository = (*MachineRepo)(nil)

// MachineRepo tipos de máquina, máquinas y posiciones sobre PostgreSQL.
type MachineRepo struct {
	q Querier
}

// NewMachineRepository construye el adaptador.
func NewMachineRepository(q Querier) *MachineRepo {
	return &MachineRepo{q: q}
}

func (r *MachineRepo) CreateType(ctx context.Context, t *entity.MachineType) error {
	err := r.q.QueryRow(ctx, `INSERT INTO machine_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tipo de máquina %q: %w", t.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("create machine type: %w", err)
	}
	return nil
}

func (r *MachineRepo) GetType(ctx context.Context, id entity.MachineTypeID) (*entity.MachineType, error) {
	var t entity.MachineType
	err := r.q.QueryRow(ctx, `SELECT id, name FROM machine_types WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine type: %w", err)
	}
	return &t, nil
}

func (r *MachineRepo) ListTypes(ctx context.Context) ([]*entity.MachineType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM machine_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list machine types: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.MachineType, error) {
		var t entity.MachineType
		return &t, row.Scan(&t.ID, &t.Name)
	})
}

func (r *MachineRepo) CreateMachine(ctx context.Context, m *entity.Machine) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO machines (name, group_name, department) VALUES ($1, $2, $3) RETURNING id, created_at`,
		m.Name, m.GroupName, m.Department,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("máquina %q: %w", m.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("create machine: %w", err)
	}
	return nil
}

func (r *MachineRepo) GetMachine(ctx context.Context, id entity.MachineID) (*entity.Machine, error) {
	var m entity.Machine
	err := r.q.QueryRow(ctx,
		`SELECT id, name, group_name, department, created_at FROM machines WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.GroupName, &m.Department, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine: %w", err)
	}
	return &m, nil
}

func (r *MachineRepo) ListMachines(ctx context.Context) ([]*entity.Machine, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, group_name, department, created_at FROM machines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Machine, error) {
		var m entity.Machine
		return &m, row.Scan(&m.ID, &m.Name, &m.GroupName, &m.Department, &m.CreatedAt)
	})
}

func (r *MachineRepo) CreatePosition(ctx context.Context, p *entity.MachinePosition) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO machine_positions (machine_id, name) VALUES ($1, $2) RETURNING id`, p.MachineID, p.Name,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("posición %q: %w", p.Name, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("máquina %d: %w", p.MachineID, domain.ErrNotFound)
		}
		return fmt.Errorf("create machine position: %w", err)
	}
	return nil
}

func (r *MachineRepo) GetPosition(ctx context.Context, id entity.PositionID) (*entity.MachinePosition, error) {
	var p entity.MachinePosition
	err := r.q.QueryRow(ctx, `SELECT id, machine_id, name FROM machine_positions WHERE id = $1`, id).
		Scan(&p.ID, &p.MachineID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine position: %w", err)
	}
	return &p, nil
}

// ListPositions lista posiciones, opcionalmente solo las de una máquina.
func (r *MachineRepo) ListPositions(ctx context.Context, machineID *entity.MachineID) ([]*entity.MachinePosition, error) {
	query := `SELECT id, machine_id, name FROM machine_positions`
	var args []any
	if machineID != nil {
		query += ` WHERE machine_id = $1`
		args = append(args, *machineID)
	}
	query += ` ORDER BY machine_id, name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list machine positions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.MachinePosition, error) {
		var p entity.MachinePosition
		return &p, row.Scan(&p.ID, &p.MachineID, &p.Name)
	})
}
