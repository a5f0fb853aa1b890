package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, part_id, quantity, direction, moved_at, actor_id, location_id, reason, merged_count, created_at`

// MovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta una fila nueva y asigna el ID generado por la secuencia.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.MergedCount == 0 {
		m.MergedCount = 1
	}
	query := `
		INSERT INTO movements (part_id, quantity, direction, moved_at, actor_id, location_id, reason, merged_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.PartID, m.Quantity, m.Direction, m.Timestamp, m.ActorID, m.LocationID, m.Reason, m.MergedCount,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("movimiento de %s: %w", m.PartID, domain.ErrNotFound)
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene una fila del ledger. Devuelve nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id entity.MovementID) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// FindMergeCandidate busca la fila más reciente con la misma clave dentro de [from, to) y la bloquea.
func (r *MovementRepo) FindMergeCandidate(ctx context.Context, key ledger.MergeKey, from, to time.Time) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE part_id = $1 AND direction = $2 AND actor_id = $3
		  AND location_id IS NOT DISTINCT FROM $4 AND reason = $5
		  AND moved_at >= $6 AND moved_at < $7
		ORDER BY id DESC
		LIMIT 1
		FOR UPDATE`
	m, err := scanMovement(r.q.QueryRow(ctx, query,
		key.PartID, key.Direction, key.ActorID, key.LocationID, key.Reason, from, to,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find merge candidate: %w", err)
	}
	return m, nil
}

// AddQuantity suma delta a la fila, refresca moved_at y cuenta la fusión.
func (r *MovementRepo) AddQuantity(ctx context.Context, id entity.MovementID, delta int, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE movements SET quantity = quantity + $2, moved_at = $3, merged_count = merged_count + 1 WHERE id = $1`,
		id, delta, at,
	)
	if err != nil {
		return fmt.Errorf("merge movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("movimiento %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByPart devuelve todas las filas del repuesto en orden de inserción.
func (r *MovementRepo) ListByPart(ctx context.Context, partID entity.PartID) ([]entity.Movement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE part_id = $1 ORDER BY id`, partID)
	if err != nil {
		return nil, fmt.Errorf("list movements by part: %w", err)
	}
	defer rows.Close()

	var list []entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.PartID, &m.Quantity, &m.Direction, &m.Timestamp,
		&m.ActorID, &m.LocationID, &m.Reason, &m.MergedCount, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
