package export

import (
	"fmt"
	"io"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/warehouse/internal/domain/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maxGridCols ancho de la grilla de maroto.
const maxGridCols = 12

// PDFExporter escribe el reporte como documento PDF A4 usando Maroto v2.
type PDFExporter struct {
	title string
}

// NewPDFExporter construye el exportador.
func NewPDFExporter(title string) *PDFExporter {
	return &PDFExporter{title: title}
}

// Export genera el PDF y escribe sus bytes en w.
func (e *PDFExporter) Export(w io.Writer, r *report.Report) error {
	if len(r.Labels) == 0 || len(r.Labels) > maxGridCols {
		return fmt.Errorf("pdf: el reporte debe tener entre 1 y %d columnas", maxGridCols)
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(e.title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(12).Add(col.New(maxGridCols).Add(
		text.New(e.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableRow(r.Labels, true))
	for _, rec := range r.StringRecords() {
		m.AddRows(tableRow(rec, false))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

// tableRow una fila de la tabla; la primera columna se alinea a la izquierda y el resto a la derecha.
func tableRow(values []string, header bool) core.Row {
	size := maxGridCols / len(values)
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		p := props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1}
		if i == 0 {
			p.Align = align.Left
			p.Right = 0
			p.Left = 1
		}
		if header {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		cols = append(cols, col.New(size).Add(text.New(v, p)))
	}
	return row.New(7).Add(cols...)
}
