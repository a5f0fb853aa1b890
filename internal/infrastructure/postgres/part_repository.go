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

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, part_no, description, machine_type_id, bin, cost_center, price, stock,
	safety_stock, safety_stock_check, image_url, last_import_at, last_export_at, created_at, updated_at`

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste un repuesto nuevo. El stock lo fija el llamador (siempre 0 desde el caso de uso).
func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.PartNo, p.Description, p.MachineTypeID, p.Bin, p.CostCenter, p.Price, p.Stock,
		p.SafetyStock, p.SafetyStockCheck, nullString(p.ImageURL), p.LastImportAt, p.LastExportAt,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repuesto %s: %w", p.ID, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return domain.Invalid("machine_type_id", "tipo de máquina inexistente")
		}
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto. Devuelve nil, nil si no existe.
func (r *PartRepo) GetByID(ctx context.Context, id entity.PartID) (*entity.Part, error) {
	return r.get(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id)
}

// GetForUpdate obtiene el repuesto y bloquea la fila hasta el fin de la transacción.
func (r *PartRepo) GetForUpdate(ctx context.Context, id entity.PartID) (*entity.Part, error) {
	return r.get(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1 FOR UPDATE`, id)
}

func (r *PartRepo) get(ctx context.Context, query string, id entity.PartID) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// Update modifica los metadatos del repuesto. Stock y fechas de movimiento no se tocan.
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	p.UpdatedAt = time.Now()
	query := `
		UPDATE parts SET part_no = $2, description = $3, machine_type_id = $4, bin = $5, cost_center = $6,
			price = $7, safety_stock = $8, safety_stock_check = $9, image_url = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.PartNo, p.Description, p.MachineTypeID, p.Bin, p.CostCenter,
		p.Price, p.SafetyStock, p.SafetyStockCheck, nullString(p.ImageURL), p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("machine_type_id", "tipo de máquina inexistente")
		}
		return fmt.Errorf("update part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repuesto %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// AdjustStock aplica stock += delta y devuelve el nuevo stock.
// El CHECK (stock >= 0) de la tabla es la última barrera contra un stock negativo.
func (r *PartRepo) AdjustStock(ctx context.Context, id entity.PartID, delta int) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx,
		`UPDATE parts SET stock = stock + $2, updated_at = now() WHERE id = $1 RETURNING stock`,
		id, delta,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("repuesto %s: %w", id, domain.ErrNotFound)
		}
		if isCheckViolation(err) {
			return 0, &domain.InsufficientStockError{PartID: string(id), Requested: -delta}
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return stock, nil
}

// TouchMovement registra la fecha del último movimiento según el sentido.
func (r *PartRepo) TouchMovement(ctx context.Context, id entity.PartID, dir entity.Direction, at time.Time) error {
	column := "last_export_at"
	if dir == entity.DirectionImport {
		column = "last_import_at"
	}
	_, err := r.q.Exec(ctx, `UPDATE parts SET `+column+` = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch part: %w", err)
	}
	return nil
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	var imageURL *string
	err := row.Scan(
		&p.ID, &p.PartNo, &p.Description, &p.MachineTypeID, &p.Bin, &p.CostCenter, &p.Price, &p.Stock,
		&p.SafetyStock, &p.SafetyStockCheck, &imageURL, &p.LastImportAt, &p.LastExportAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ImageURL = derefString(imageURL)
	return &p, nil
}
