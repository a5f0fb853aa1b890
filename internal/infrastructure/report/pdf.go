// Package report implementa los Renderer de reportes: PDF con Maroto v2 y XLSX con excelize.
//
// Layout de la página PDF (A4 horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte       │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por campo, cabecera azul                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: cantidad de filas                                  │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreport "github.com/jhoicas/Repuestos-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appreport.Renderer = (*MarotoPDFRenderer)(nil)

// MarotoPDFRenderer implementa report.Renderer usando Maroto v2.
type MarotoPDFRenderer struct {
	now func() time.Time
}

// NewMarotoPDFRenderer construye el generador.
func NewMarotoPDFRenderer() *MarotoPDFRenderer { return &MarotoPDFRenderer{now: time.Now} }

// ContentType MIME del PDF.
func (g *MarotoPDFRenderer) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes. La grilla tiene una unidad por columna de la tabla.
func (g *MarotoPDFRenderer) Render(_ context.Context, t appreport.Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("pdf: la tabla no tiene columnas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(len(t.Columns)).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle(t.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t.Title, len(t.Columns), g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(t.Columns))
	m.AddRows(tableRows(t)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(len(t.Columns)).Add(
		text.New(fmt.Sprintf("%d filas", len(t.Rows)), props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string, grid int, at time.Time) core.Row {
	left := grid - grid/3
	return row.New(12).Add(
		col.New(left).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
		),
		col.New(grid-left).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera con fondo azul.
func tableHeaderRow(columns []string) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(1).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorWhite, Top: 1.5, Left: 0.5, Right: 0.5,
		})))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro, con filas alternas sombreadas.
func tableRows(t appreport.Table) []core.Row {
	result := make([]core.Row, 0, len(t.Rows))
	for i, r := range t.Rows {
		cols := make([]core.Col, 0, len(t.Columns))
		for j := range t.Columns {
			cols = append(cols, col.New(1).Add(text.New(
				nonEmpty(cell(r, j), "—"),
				props.Text{Size: 6.5, Top: 1, Left: 0.5, Right: 0.5},
			)))
		}
		rw := row.New(6).Add(cols...)
		if i%2 == 1 {
			rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, rw)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(r []string, i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
