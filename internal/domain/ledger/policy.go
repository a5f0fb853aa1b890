// Package ledger contiene las reglas puras del ledger de movimientos: clave y período de fusión,
// tratamiento de salidas FOC y cálculo del delta de stock. No tiene dependencias de infraestructura.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// MergePeriod ventana de calendario dentro de la cual dos solicitudes con la misma clave se fusionan.
type MergePeriod string

// Períodos de fusión soportados.
const (
	PeriodDay   MergePeriod = "day"
	PeriodMonth MergePeriod = "month"
	PeriodNone  MergePeriod = "none" // cada solicitud produce su propia fila
)

// ParseMergePeriod interpreta el valor de configuración (day, month, none).
func ParseMergePeriod(s string) (MergePeriod, error) {
	switch MergePeriod(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodNone, "":
		return PeriodNone, nil
	}
	return "", fmt.Errorf("período de fusión desconocido: %q", s)
}

// Policy reúne las decisiones configurables del ledger.
type Policy struct {
	ExportPeriod      MergePeriod
	ImportPeriod      MergePeriod
	FOCReason         string
	FOCInExportTotals bool
	Location          *time.Location
}

// DefaultPolicy salidas fusionadas por día, entradas por mes, FOC = "FOC" incluido en totales.
func DefaultPolicy() Policy {
	return Policy{
		ExportPeriod:      PeriodDay,
		ImportPeriod:      PeriodMonth,
		FOCReason:         entity.ReasonFOC,
		FOCInExportTotals: true,
		Location:          time.Local,
	}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// PeriodFor devuelve el período de fusión aplicable al sentido dado.
func (p Policy) PeriodFor(dir entity.Direction) MergePeriod {
	if dir == entity.DirectionExport {
		return p.ExportPeriod
	}
	return p.ImportPeriod
}

// Window calcula [from, to) del período que contiene t. ok es false cuando el período no fusiona.
func (p Policy) Window(dir entity.Direction, t time.Time) (from, to time.Time, ok bool) {
	local := t.In(p.location())
	switch p.PeriodFor(dir) {
	case PeriodDay:
		from = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
		return from, from.AddDate(0, 0, 1), true
	case PeriodMonth:
		from = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
		return from, from.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// IsFOC indica si el movimiento es una salida sin costo. Solo las salidas pueden ser FOC.
func (p Policy) IsFOC(dir entity.Direction, reason string) bool {
	return dir == entity.DirectionExport && reason == p.focReason()
}

func (p Policy) focReason() string {
	if p.FOCReason == "" {
		return entity.ReasonFOC
	}
	return p.FOCReason
}

// RequiresSufficiency indica si la solicitud debe validarse contra el stock disponible.
func (p Policy) RequiresSufficiency(dir entity.Direction, reason string) bool {
	return dir == entity.DirectionExport && !p.IsFOC(dir, reason)
}

// StockDelta efecto sobre el stock cacheado de una cantidad incremental.
// Entrada: +q. Salida FOC: 0. Salida normal: -q.
func (p Policy) StockDelta(dir entity.Direction, reason string, quantity int) int {
	switch {
	case dir == entity.DirectionImport:
		return quantity
	case p.IsFOC(dir, reason):
		return 0
	default:
		return -quantity
	}
}

// NewPolicy construye la política a partir de valores de configuración.
// loc nil equivale a la hora local del servidor.
func NewPolicy(exportPeriod, importPeriod, focReason string, focInExportTotals bool, loc *time.Location) (Policy, error) {
	exp, err := ParseMergePeriod(exportPeriod)
	if err != nil {
		return Policy{}, fmt.Errorf("salidas: %w", err)
	}
	imp, err := ParseMergePeriod(importPeriod)
	if err != nil {
		return Policy{}, fmt.Errorf("entradas: %w", err)
	}
	if strings.TrimSpace(focReason) == "" {
		focReason = entity.ReasonFOC
	}
	return Policy{
		ExportPeriod:      exp,
		ImportPeriod:      imp,
		FOCReason:         focReason,
		FOCInExportTotals: focInExportTotals,
		Location:          loc,
	}, nil
}
