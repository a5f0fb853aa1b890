package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

const dashboardBelowSafety = 10 // repuestos bajo mínimo en el widget del tablero

var zero = decimal.Zero

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// Dashboard construye el resumen del tablero para el filtro dado.
//
// Cuatro consultas en paralelo:
//  1. MovementTotals(q)                → cantidades y valores de entradas/salidas
//  2. StockTotals(repuesto)            → valor del stock y conteo bajo mínimo
//  3. Monthly(q)                       → serie mensual
//  4. Parts(bajo mínimo)               → widget de repuestos críticos
func (uc *ProjectionUseCase) Dashboard(ctx context.Context, f dto.MovementFilter) (*dto.DashboardResponse, error) {
	q, err := uc.toQuery(f)
	if err != nil {
		return nil, err
	}

	key := cacheKey("dashboard", q)
	// La versión se toma antes de consultar; cacheable es false si no se pudo leer.
	var version int64
	cacheable := false
	if uc.cache != nil {
		var cached dto.DashboardResponse
		hit, v, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("caché de tablero no disponible")
		} else if hit {
			return &cached, nil
		} else {
			version, cacheable = v, true
		}
	}

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type totalsResult struct {
		t   repository.MovementTotals
		err error
	}
	type stockResult struct {
		t   repository.StockTotals
		err error
	}
	type monthlyResult struct {
		points []repository.MonthlyPoint
		err    error
	}
	type partsResult struct {
		parts []repository.PartView
		err   error
	}

	totalsCh := make(chan totalsResult, 1)
	stockCh := make(chan stockResult, 1)
	monthlyCh := make(chan monthlyResult, 1)
	partsCh := make(chan partsResult, 1)

	go func() {
		t, err := uc.repo.MovementTotals(ctx, q)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.repo.StockTotals(ctx, repository.PartFilter{PartID: q.PartID})
		stockCh <- stockResult{t, err}
	}()
	go func() {
		p, err := uc.repo.Monthly(ctx, q)
		monthlyCh <- monthlyResult{p, err}
	}()
	go func() {
		p, err := uc.repo.Parts(ctx, repository.PartFilter{PartID: q.PartID, BelowSafetyOnly: true})
		partsCh <- partsResult{p, err}
	}()

	totals := <-totalsCh
	stock := <-stockCh
	monthly := <-monthlyCh
	below := <-partsCh

	for _, e := range []struct {
		what string
		err  error
	}{{"totales", totals.err}, {"stock", stock.err}, {"serie mensual", monthly.err}, {"bajo mínimo", below.err}} {
		if e.err != nil {
			return nil, domain.StoreFailure(fmt.Sprintf("tablero: %s", e.what), e.err)
		}
	}

	out := &dto.DashboardResponse{
		Totals:      uc.buildTotals(totals.t, stock.t),
		Monthly:     uc.buildMonthly(monthly.points),
		BelowSafety: uc.buildBelowSafety(below.parts),
		GeneratedAt: uc.now(),
	}

	if cacheable {
		if err := uc.cache.Set(ctx, version, key, out); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el tablero en caché")
		}
	}
	return out, nil
}

// buildTotals aplica la política de inclusión de FOC en la cantidad exportada total.
func (uc *ProjectionUseCase) buildTotals(m repository.MovementTotals, s repository.StockTotals) dto.TotalsDTO {
	exported := m.ExportedPricedQty
	if uc.policy.FOCInExportTotals {
		exported += m.ExportedFOCQty
	}
	return dto.TotalsDTO{
		ImportedQty:       m.ImportedQty,
		ExportedQty:       exported,
		ExportedPricedQty: m.ExportedPricedQty,
		ExportedFOCQty:    m.ExportedFOCQty,
		FOCInExportTotals: uc.policy.FOCInExportTotals,
		ImportValue:       m.ImportValue.Round(2),
		ExportValue:       m.ExportValue.Round(2),
		StockValue:        s.StockValue.Round(2),
		TotalStock:        s.TotalStock,
		PartCount:         s.PartCount,
		BelowSafetyCount:  s.BelowSafety,
	}
}

// buildMonthly pivota los puntos (mes, sentido) a una fila por mes.
func (uc *ProjectionUseCase) buildMonthly(points []repository.MonthlyPoint) []dto.MonthlyPointDTO {
	byMonth := map[string]*dto.MonthlyPointDTO{}
	var months []string
	for _, p := range points {
		row, ok := byMonth[p.Month]
		if !ok {
			row = &dto.MonthlyPointDTO{Month: p.Month, ImportValue: zero, ExportValue: zero}
			byMonth[p.Month] = row
			months = append(months, p.Month)
		}
		switch p.Direction {
		case entity.DirectionImport:
			row.ImportQty += p.Quantity
			row.ImportValue = row.ImportValue.Add(p.Value).Round(2)
		case entity.DirectionExport:
			qty := p.Quantity
			if !uc.policy.FOCInExportTotals {
				qty -= p.FOCQuantity
			}
			row.ExportQty += qty
			row.ExportFOCQty += p.FOCQuantity
			row.ExportValue = row.ExportValue.Add(p.Value).Round(2)
		}
	}
	sort.Strings(months)

	out := make([]dto.MonthlyPointDTO, 0, len(months))
	for _, m := range months {
		out = append(out, *byMonth[m])
	}
	return out
}

// buildBelowSafety ordena por déficit (mayor primero) y recorta al tamaño del widget.
func (uc *ProjectionUseCase) buildBelowSafety(parts []repository.PartView) []dto.PartResponse {
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].SafetyStock-parts[i].Stock > parts[j].SafetyStock-parts[j].Stock
	})
	if len(parts) > dashboardBelowSafety {
		parts = parts[:dashboardBelowSafety]
	}
	now := uc.now()
	out := make([]dto.PartResponse, 0, len(parts))
	for i := range parts {
		out = append(out, dto.PartFromEntity(&parts[i].Part, parts[i].MachineTypeName, now))
	}
	return out
}
