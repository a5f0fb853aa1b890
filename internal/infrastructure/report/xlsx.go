package report

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	appreport "github.com/jhoicas/Repuestos-api/internal/application/report"
)

var _ appreport.Renderer = (*ExcelRenderer)(nil)

const (
	maxColWidth = 50.0
	minColWidth = 8.0
)

// ExcelRenderer implementa report.Renderer con excelize: una hoja con cabecera en negrita y filtro.
type ExcelRenderer struct{}

// NewExcelRenderer construye el generador.
func NewExcelRenderer() *ExcelRenderer { return &ExcelRenderer{} }

// ContentType MIME del libro xlsx.
func (ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render escribe la tabla en la hoja t.Sheet y devuelve el libro serializado.
func (ExcelRenderer) Render(_ context.Context, t appreport.Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("xlsx: la tabla no tiene columnas")
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: nombre de hoja: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}

	widths := make([]float64, len(t.Columns))
	headerRow := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		headerRow[i] = c
		widths[i] = width(c)
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}

	for i, r := range t.Rows {
		values := make([]any, len(t.Columns))
		for j := range t.Columns {
			if j < len(r) {
				values[j] = r[j]
				widths[j] = max(widths[j], width(r[j]))
			}
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", header); err != nil {
		return nil, fmt.Errorf("xlsx: aplicar estilo: %w", err)
	}
	for i, w := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, len(t.Rows)+1), nil); err != nil {
		return nil, fmt.Errorf("xlsx: autofiltro: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("xlsx: fijar cabecera: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

func width(s string) float64 {
	w := float64(utf8.RuneCountInString(s)) + 2
	if w < minColWidth {
		return minColWidth
	}
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}
