// Package analytics contiene las proyecciones de solo lectura sobre el ledger y el catálogo:
// totales, series mensuales, historial de movimientos y vista de stock.
package analytics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
	"github.com/jhoicas/Repuestos-api/pkg/textnorm"
)

// Cache almacena resultados de proyecciones. Get devuelve false si la clave no existe y, en
// cualquier caso, la versión de la caché que leyó. Set guarda bajo esa versión: si hubo una
// invalidación en medio, el valor queda en una versión abandonada y no se vuelve a servir.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (hit bool, version int64, err error)
	Set(ctx context.Context, version int64, key string, value any) error
}

// ProjectionUseCase consultas derivadas; nunca modifica el ledger ni el catálogo.
type ProjectionUseCase struct {
	repo   repository.ProjectionRepository
	policy ledger.Policy
	cache  Cache
	log    *logger.Logger
	now    func() time.Time
}

// Option configura dependencias opcionales.
type Option func(*ProjectionUseCase)

// WithCache activa la caché de tablero.
func WithCache(c Cache) Option { return func(uc *ProjectionUseCase) { uc.cache = c } }

// WithLogger logger para fallos de caché.
func WithLogger(l *logger.Logger) Option { return func(uc *ProjectionUseCase) { uc.log = l } }

// WithClock reemplaza time.Now (días en bodega, rangos por mes).
func WithClock(now func() time.Time) Option { return func(uc *ProjectionUseCase) { uc.now = now } }

// NewProjectionUseCase construye el caso de uso.
func NewProjectionUseCase(repo repository.ProjectionRepository, policy ledger.Policy, opts ...Option) *ProjectionUseCase {
	uc := &ProjectionUseCase{repo: repo, policy: policy, log: logger.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Movements historial filtrado y paginado, más recientes primero.
func (uc *ProjectionUseCase) Movements(ctx context.Context, f dto.MovementFilter) (*dto.MovementPage, error) {
	rows, err := uc.MovementRows(ctx, f)
	if err != nil {
		return nil, err
	}
	f.Page.DefaultPage()
	return &dto.MovementPage{
		Items: page(rows, f.Page),
		Page:  dto.PageResponse{Limit: f.Page.Limit, Offset: f.Page.Offset, Total: len(rows)},
	}, nil
}

// MovementRows historial filtrado completo (para exportar).
func (uc *ProjectionUseCase) MovementRows(ctx context.Context, f dto.MovementFilter) ([]dto.MovementRowDTO, error) {
	q, err := uc.toQuery(f)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Movements(ctx, q)
	if err != nil {
		return nil, domain.StoreFailure("historial de movimientos", err)
	}

	out := make([]dto.MovementRowDTO, 0, len(rows))
	for _, r := range rows {
		if !textnorm.Contains(f.Search, string(r.PartID), r.Description, r.EmployeeName, r.MachineName) {
			continue
		}
		foc := uc.policy.IsFOC(r.Direction, r.Reason)
		value := r.Price.Mul(decimalFromInt(r.Quantity))
		if foc {
			value = zero
		}
		out = append(out, dto.MovementRowDTO{
			ID:          int64(r.ID),
			MaterialNo:  string(r.PartID),
			Description: r.Description,
			EmployeeID:  string(r.EmployeeID),
			Employee:    r.EmployeeName,
			GroupName:   r.GroupName,
			Machine:     r.MachineName,
			MCPos:       r.PositionName,
			Quantity:    r.Quantity,
			Reason:      r.Reason,
			Date:        r.Timestamp,
			Direction:   string(r.Direction),
			FOC:         foc,
			Value:       value.Round(2),
			MergedCount: r.MergedCount,
		})
	}
	return out, nil
}

// StockView vista de stock filtrada y paginada.
func (uc *ProjectionUseCase) StockView(ctx context.Context, f dto.StockFilter) (*dto.StockPage, error) {
	items, err := uc.StockRows(ctx, f)
	if err != nil {
		return nil, err
	}
	f.Page.DefaultPage()
	return &dto.StockPage{
		Items: page(items, f.Page),
		Page:  dto.PageResponse{Limit: f.Page.Limit, Offset: f.Page.Offset, Total: len(items)},
	}, nil
}

// StockRows vista de stock completa con estado derivado (bajo mínimo, días en bodega).
func (uc *ProjectionUseCase) StockRows(ctx context.Context, f dto.StockFilter) ([]dto.PartResponse, error) {
	pf, err := toPartFilter(f)
	if err != nil {
		return nil, err
	}
	parts, err := uc.repo.Parts(ctx, pf)
	if err != nil {
		return nil, domain.StoreFailure("vista de stock", err)
	}

	now := uc.now()
	out := make([]dto.PartResponse, 0, len(parts))
	for i := range parts {
		p := &parts[i]
		if !textnorm.Contains(f.Search, string(p.ID), p.PartNo, p.Description, p.Bin, p.CostCenter) {
			continue
		}
		out = append(out, dto.PartFromEntity(&p.Part, p.MachineTypeName, now))
	}
	return out, nil
}

func toPartFilter(f dto.StockFilter) (repository.PartFilter, error) {
	if f.MinStock != nil && f.MaxStock != nil && *f.MinStock > *f.MaxStock {
		return repository.PartFilter{}, domain.Invalid("min_stock", "no puede superar max_stock")
	}
	pf := repository.PartFilter{
		MinStock:        f.MinStock,
		MaxStock:        f.MaxStock,
		BelowSafetyOnly: f.BelowSafetyOnly,
	}
	if f.MachineTypeID != nil {
		id := entity.MachineTypeID(*f.MachineTypeID)
		pf.MachineTypeID = &id
	}
	return pf, nil
}

// toQuery valida el filtro y lo traduce a la consulta del repositorio.
// Year/Month se resuelven en la zona horaria del ledger.
func (uc *ProjectionUseCase) toQuery(f dto.MovementFilter) (repository.ProjectionQuery, error) {
	q := repository.ProjectionQuery{
		From:       f.From,
		To:         f.To,
		PartID:     entity.PartID(strings.TrimSpace(f.PartID)),
		EmployeeID: entity.EmployeeID(strings.TrimSpace(f.EmployeeID)),
		FOCReason:  uc.focReason(),
		TimeZone:   uc.timeZone(),
	}

	switch dir := entity.Direction(strings.ToUpper(strings.TrimSpace(f.Direction))); {
	case dir == "":
	case dir.Valid():
		q.Direction = dir
	default:
		return q, domain.Invalid("direction", "debe ser IMPORT o EXPORT")
	}

	switch repository.FOCFilter(strings.ToLower(strings.TrimSpace(f.FOC))) {
	case "", repository.FOCAll:
		q.FOC = repository.FOCAll
	case repository.FOCOnly:
		q.FOC = repository.FOCOnly
	case repository.FOCExcluded:
		q.FOC = repository.FOCExcluded
	default:
		return q, domain.Invalid("foc", "debe ser all, foc o non_foc")
	}

	if f.MachineID != nil {
		id := entity.MachineID(*f.MachineID)
		q.MachineID = &id
	}

	if f.Month != 0 || f.Year != 0 {
		from, to, err := uc.monthRange(f.Year, f.Month)
		if err != nil {
			return q, err
		}
		q.From, q.To = &from, &to
	}
	if q.From != nil && q.To != nil && !q.From.Before(*q.To) {
		return q, domain.Invalid("from", "debe ser anterior a to")
	}
	return q, nil
}

// monthRange con Month = 0 devuelve el año completo; Year = 0 usa el año en curso.
func (uc *ProjectionUseCase) monthRange(year, month int) (time.Time, time.Time, error) {
	loc := uc.location()
	if year == 0 {
		year = uc.now().In(loc).Year()
	}
	if month < 0 || month > 12 {
		return time.Time{}, time.Time{}, domain.Invalid("month", "debe estar entre 1 y 12")
	}
	if month == 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(1, 0, 0), nil
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0), nil
}

func (uc *ProjectionUseCase) location() *time.Location {
	if uc.policy.Location == nil {
		return time.Local
	}
	return uc.policy.Location
}

// timeZone nombre IANA para agrupar por mes en la base; "Local" no es válido en PostgreSQL.
func (uc *ProjectionUseCase) timeZone() string {
	name := uc.location().String()
	if name == "Local" {
		return ""
	}
	return name
}

func (uc *ProjectionUseCase) focReason() string {
	if uc.policy.FOCReason == "" {
		return entity.ReasonFOC
	}
	return uc.policy.FOCReason
}

// cacheKey identifica una consulta de tablero de forma estable.
func cacheKey(kind string, v any) string {
	b, _ := json.Marshal(v)
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:8]))
}

func page[T any](items []T, p dto.PageRequest) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
