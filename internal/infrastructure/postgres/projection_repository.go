package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.ProjectionRepository = (*ProjectionRepo)(nil)

// pg construye SQL para PostgreSQL; la ejecución la hace pgx.
var pg = goqu.Dialect("postgres")

// ProjectionRepo consultas de solo lectura para tableros, historial y reportes.
type ProjectionRepo struct {
	q Querier
}

// NewProjectionRepository construye el adaptador de proyecciones.
func NewProjectionRepository(q Querier) *ProjectionRepo {
	return &ProjectionRepo{q: q}
}

// movementsFrom une el ledger con repuesto, empleado, posición y máquina, aplicando los filtros.
func movementsFrom(q repository.ProjectionQuery) *goqu.SelectDataset {
	ds := pg.From(goqu.T("movements").As("m")).
		Join(goqu.T("parts").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("m.part_id")))).
		LeftJoin(goqu.T("employees").As("e"), goqu.On(goqu.I("e.id").Eq(goqu.I("m.actor_id")))).
		LeftJoin(goqu.T("machine_positions").As("mp"), goqu.On(goqu.I("mp.id").Eq(goqu.I("m.location_id")))).
		LeftJoin(goqu.T("machines").As("mc"), goqu.On(goqu.I("mc.id").Eq(goqu.I("mp.machine_id"))))

	if conds := movementConditions(q); len(conds) > 0 {
		ds = ds.Where(conds...)
	}
	return ds
}

func movementConditions(q repository.ProjectionQuery) []exp.Expression {
	var conds []exp.Expression
	if q.From != nil {
		conds = append(conds, goqu.I("m.moved_at").Gte(*q.From))
	}
	if q.To != nil {
		conds = append(conds, goqu.I("m.moved_at").Lt(*q.To))
	}
	if q.PartID != "" {
		conds = append(conds, goqu.I("m.part_id").Eq(string(q.PartID)))
	}
	if q.EmployeeID != "" {
		conds = append(conds, goqu.I("m.actor_id").Eq(string(q.EmployeeID)))
	}
	if q.MachineID != nil {
		conds = append(conds, goqu.I("mp.machine_id").Eq(int64(*q.MachineID)))
	}
	if q.Direction != "" {
		conds = append(conds, goqu.I("m.direction").Eq(string(q.Direction)))
	}
	switch q.FOC {
	case repository.FOCOnly:
		conds = append(conds, goqu.And(
			goqu.I("m.direction").Eq(string(entity.DirectionExport)),
			goqu.I("m.reason").Eq(q.FOCReason),
		))
	case repository.FOCExcluded:
		conds = append(conds, goqu.Or(
			goqu.I("m.direction").Neq(string(entity.DirectionExport)),
			goqu.I("m.reason").Neq(q.FOCReason),
		))
	}
	return conds
}

// MovementTotals agrega cantidades y valores. El valor de salidas excluye las FOC.
func (r *ProjectionRepo) MovementTotals(ctx context.Context, q repository.ProjectionQuery) (repository.MovementTotals, error) {
	ds := movementsFrom(q).Select(
		goqu.L("COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'IMPORT'), 0)"),
		goqu.L("COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'EXPORT' AND m.reason = ?), 0)", q.FOCReason),
		goqu.L("COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'EXPORT' AND m.reason <> ?), 0)", q.FOCReason),
		goqu.L("COALESCE(SUM(m.quantity * p.price) FILTER (WHERE m.direction = 'IMPORT'), 0)"),
		goqu.L("COALESCE(SUM(m.quantity * p.price) FILTER (WHERE m.direction = 'EXPORT' AND m.reason <> ?), 0)", q.FOCReason),
	)
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return repository.MovementTotals{}, fmt.Errorf("projection.MovementTotals sql: %w", err)
	}

	var t repository.MovementTotals
	err = r.q.QueryRow(ctx, query, args...).Scan(
		&t.ImportedQty, &t.ExportedFOCQty, &t.ExportedPricedQty, &t.ImportValue, &t.ExportValue,
	)
	if err != nil {
		return repository.MovementTotals{}, fmt.Errorf("projection.MovementTotals: %w", err)
	}
	return t, nil
}

// Movements devuelve las filas enriquecidas, más recientes primero.
func (r *ProjectionRepo) Movements(ctx context.Context, q repository.ProjectionQuery) ([]repository.MovementRow, error) {
	ds := movementsFrom(q).Select(
		goqu.I("m.id"), goqu.I("m.part_id"), goqu.I("p.description"), goqu.I("p.price"), goqu.I("m.actor_id"),
		goqu.COALESCE(goqu.I("e.name"), ""),
		goqu.COALESCE(goqu.I("mc.group_name"), ""),
		goqu.COALESCE(goqu.I("mc.name"), ""),
		goqu.COALESCE(goqu.I("mp.name"), ""),
		goqu.I("m.quantity"), goqu.I("m.direction"), goqu.I("m.reason"), goqu.I("m.moved_at"), goqu.I("m.merged_count"),
	).Order(goqu.I("m.moved_at").Desc(), goqu.I("m.id").Desc())

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("projection.Movements sql: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("projection.Movements: %w", err)
	}
	defer rows.Close()

	var list []repository.MovementRow
	for rows.Next() {
		var m repository.MovementRow
		if err := rows.Scan(
			&m.ID, &m.PartID, &m.Description, &m.Price, &m.EmployeeID,
			&m.EmployeeName, &m.GroupName, &m.MachineName, &m.PositionName,
			&m.Quantity, &m.Direction, &m.Reason, &m.Timestamp, &m.MergedCount,
		); err != nil {
			return nil, fmt.Errorf("projection.Movements scan: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Monthly agrupa por mes calendario (YYYY-MM) y sentido.
func (r *ProjectionRepo) Monthly(ctx context.Context, q repository.ProjectionQuery) ([]repository.MonthlyPoint, error) {
	month := goqu.L("to_char(m.moved_at, 'YYYY-MM')")
	if q.TimeZone != "" {
		month = goqu.L("to_char(m.moved_at AT TIME ZONE ?, 'YYYY-MM')", q.TimeZone)
	}
	ds := movementsFrom(q).Select(
		month.As("month"),
		goqu.I("m.direction"),
		goqu.L("COALESCE(SUM(m.quantity), 0)"),
		goqu.L("COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'EXPORT' AND m.reason = ?), 0)", q.FOCReason),
		goqu.L("COALESCE(SUM(m.quantity * p.price) FILTER (WHERE m.direction = 'IMPORT' OR m.reason <> ?), 0)", q.FOCReason),
	).GroupBy(goqu.I("month"), goqu.I("m.direction")).
		Order(goqu.I("month").Asc(), goqu.I("m.direction").Desc())

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("projection.Monthly sql: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("projection.Monthly: %w", err)
	}
	defer rows.Close()

	var points []repository.MonthlyPoint
	for rows.Next() {
		var p repository.MonthlyPoint
		if err := rows.Scan(&p.Month, &p.Direction, &p.Quantity, &p.FOCQuantity, &p.Value); err != nil {
			return nil, fmt.Errorf("projection.Monthly scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func partsFrom(f repository.PartFilter) *goqu.SelectDataset {
	ds := pg.From(goqu.T("parts").As("p")).
		LeftJoin(goqu.T("machine_types").As("mt"), goqu.On(goqu.I("mt.id").Eq(goqu.I("p.machine_type_id"))))

	var conds []exp.Expression
	if f.PartID != "" {
		conds = append(conds, goqu.I("p.id").Eq(string(f.PartID)))
	}
	if f.MachineTypeID != nil {
		conds = append(conds, goqu.I("p.machine_type_id").Eq(int64(*f.MachineTypeID)))
	}
	if f.MinStock != nil {
		conds = append(conds, goqu.I("p.stock").Gte(*f.MinStock))
	}
	if f.MaxStock != nil {
		conds = append(conds, goqu.I("p.stock").Lte(*f.MaxStock))
	}
	if f.BelowSafetyOnly {
		conds = append(conds, goqu.L("p.stock < p.safety_stock"))
	}
	if f.SafetyCheckOnly {
		conds = append(conds, goqu.I("p.safety_stock_check").IsTrue())
	}
	if len(conds) > 0 {
		ds = ds.Where(conds...)
	}
	return ds
}

// StockTotals suma stock y valor del catálogo filtrado.
func (r *ProjectionRepo) StockTotals(ctx context.Context, f repository.PartFilter) (repository.StockTotals, error) {
	ds := partsFrom(f).Select(
		goqu.COUNT(goqu.Star()),
		goqu.L("COALESCE(SUM(p.stock), 0)"),
		goqu.L("COALESCE(SUM(p.stock * p.price), 0)"),
		goqu.L("COUNT(*) FILTER (WHERE p.stock < p.safety_stock)"),
	)
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return repository.StockTotals{}, fmt.Errorf("projection.StockTotals sql: %w", err)
	}

	var t repository.StockTotals
	if err := r.q.QueryRow(ctx, query, args...).Scan(&t.PartCount, &t.TotalStock, &t.StockValue, &t.BelowSafety); err != nil {
		return repository.StockTotals{}, fmt.Errorf("projection.StockTotals: %w", err)
	}
	return t, nil
}

// Parts devuelve la vista de stock ordenada por material.
func (r *ProjectionRepo) Parts(ctx context.Context, f repository.PartFilter) ([]repository.PartView, error) {
	ds := partsFrom(f).Select(
		goqu.I("p.id"), goqu.I("p.part_no"), goqu.I("p.description"), goqu.I("p.machine_type_id"),
		goqu.I("p.bin"), goqu.I("p.cost_center"), goqu.I("p.price"), goqu.I("p.stock"),
		goqu.I("p.safety_stock"), goqu.I("p.safety_stock_check"), goqu.I("p.image_url"),
		goqu.I("p.last_import_at"), goqu.I("p.last_export_at"), goqu.I("p.created_at"), goqu.I("p.updated_at"),
		goqu.COALESCE(goqu.I("mt.name"), ""),
	).Order(goqu.I("p.id").Asc())

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("projection.Parts sql: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("projection.Parts: %w", err)
	}
	defer rows.Close()

	var list []repository.PartView
	for rows.Next() {
		var v repository.PartView
		var imageURL *string
		if err := rows.Scan(
			&v.ID, &v.PartNo, &v.Description, &v.MachineTypeID, &v.Bin, &v.CostCenter, &v.Price, &v.Stock,
			&v.SafetyStock, &v.SafetyStockCheck, &imageURL, &v.LastImportAt, &v.LastExportAt,
			&v.CreatedAt, &v.UpdatedAt, &v.MachineTypeName,
		); err != nil {
			return nil, fmt.Errorf("projection.Parts scan: %w", err)
		}
		v.ImageURL = derefString(imageURL)
		list = append(list, v)
	}
	return list, rows.Err()
}
