// Package report arma los reportes exportables (historial de movimientos y stock)
// a partir de las proyecciones y delega el formato del archivo en un Renderer.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// Format formato del archivo exportado.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Nombres de hoja.
const (
	SheetMovements = "Export History"
	SheetStock     = "Stock"
)

// Columnas en el orden de presentación.
var (
	MovementColumns = []string{"material_no", "description", "employee", "group_name", "machine", "mc_pos", "quantity", "reason", "date", "type"}
	StockColumns    = []string{"part_no", "material_no", "description", "machine_type", "bin", "cost_center", "price", "stock", "safety_stock", "safety_stock_check", "import_date", "export_date"}
)

// Table contenido tabular independiente del formato.
type Table struct {
	Title   string
	Sheet   string
	Columns []string
	Rows    [][]string
}

// Renderer convierte una tabla en los bytes de un archivo.
type Renderer interface {
	Render(ctx context.Context, t Table) ([]byte, error)
	ContentType() string
}

// Source proyecciones de las que salen los reportes.
type Source interface {
	MovementRows(ctx context.Context, f dto.MovementFilter) ([]dto.MovementRowDTO, error)
	StockRows(ctx context.Context, f dto.StockFilter) ([]dto.PartResponse, error)
}

// Artifact archivo listo para descargar.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportUseCase genera los archivos exportables.
type ReportUseCase struct {
	source    Source
	renderers map[Format]Renderer
	loc       *time.Location
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. loc define cómo se muestran las fechas.
func NewReportUseCase(source Source, renderers map[Format]Renderer, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{source: source, renderers: renderers, loc: loc, now: time.Now}
}

// ParseFormat valida el formato pedido; vacío equivale a xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", domain.Invalid("format", "debe ser xlsx o pdf")
	}
}

// Movements exporta el historial filtrado.
func (uc *ReportUseCase) Movements(ctx context.Context, f dto.MovementFilter, format Format) (*Artifact, error) {
	renderer, err := uc.renderer(format)
	if err != nil {
		return nil, err
	}
	rows, err := uc.source.MovementRows(ctx, f)
	if err != nil {
		return nil, err
	}
	t := MovementTable(rows, uc.loc)
	return uc.render(ctx, renderer, t, "export_history", format)
}

// Stock exporta la vista de stock filtrada.
func (uc *ReportUseCase) Stock(ctx context.Context, f dto.StockFilter, format Format) (*Artifact, error) {
	renderer, err := uc.renderer(format)
	if err != nil {
		return nil, err
	}
	parts, err := uc.source.StockRows(ctx, f)
	if err != nil {
		return nil, err
	}
	t := StockTable(parts, uc.loc)
	return uc.render(ctx, renderer, t, "stock", format)
}

func (uc *ReportUseCase) renderer(format Format) (Renderer, error) {
	r, ok := uc.renderers[format]
	if !ok {
		return nil, domain.Invalid("format", fmt.Sprintf("formato %q no disponible", format))
	}
	return r, nil
}

func (uc *ReportUseCase) render(ctx context.Context, r Renderer, t Table, name string, format Format) (*Artifact, error) {
	data, err := r.Render(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("reporte %s: %w", name, err)
	}
	return &Artifact{
		Filename:    fmt.Sprintf("%s_%s.%s", name, uc.now().In(uc.loc).Format("20060102_1504"), format),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

// MovementTable arma la tabla del historial en el orden de columnas del reporte.
func MovementTable(rows []dto.MovementRowDTO, loc *time.Location) Table {
	t := Table{Title: "Historial de movimientos", Sheet: SheetMovements, Columns: MovementColumns}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.MaterialNo,
			r.Description,
			r.Employee,
			r.GroupName,
			r.Machine,
			r.MCPos,
			strconv.Itoa(r.Quantity),
			r.Reason,
			r.Date.In(loc).Format("2006-01-02 15:04"),
			r.Direction,
		})
	}
	return t
}

// StockTable arma la tabla de stock en el orden de columnas del reporte.
func StockTable(parts []dto.PartResponse, loc *time.Location) Table {
	t := Table{Title: "Stock de repuestos", Sheet: SheetStock, Columns: StockColumns}
	for _, p := range parts {
		t.Rows = append(t.Rows, []string{
			p.PartNo,
			p.ID,
			p.Description,
			p.MachineType,
			p.Bin,
			p.CostCenter,
			p.Price.StringFixed(2),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.SafetyStock),
			strconv.FormatBool(p.SafetyStockCheck),
			formatDate(p.LastImportAt, loc),
			formatDate(p.LastExportAt, loc),
		})
	}
	return t
}

func formatDate(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("2006-01-02")
}
