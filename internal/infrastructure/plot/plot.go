// Package plot dibuja reportes como gráficos PNG de barras o de líneas con gonum/plot.
// Usa la columna 0 como etiqueta del eje X y la columna 1 como valor.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/report"
)

var (
	_ usecase.PlotterFactory = (*Factory)(nil)
	_ usecase.ChartPlotter   = (*Plotter)(nil)
)

const (
	defaultWidth  = 800
	defaultHeight = 480
	minSize       = 100
)

var colorSeries = color.RGBA{R: 0, G: 70, B: 127, A: 255}

// Factory construye graficadores PNG.
type Factory struct {
	Width  int
	Height int
}

// NewFactory fábrica con el tamaño de imagen por defecto.
func NewFactory() *Factory {
	return &Factory{Width: defaultWidth, Height: defaultHeight}
}

// NewPlotter devuelve el graficador del tipo pedido o domain.ErrUnsupported.
func (f *Factory) NewPlotter(reportType report.Type, chart report.ChartType) (usecase.ChartPlotter, error) {
	switch chart {
	case report.ChartBar, report.ChartLine:
		return &Plotter{
			Title:  string(reportType),
			Kind:   chart,
			Width:  f.Width,
			Height: f.Height,
		}, nil
	}
	return nil, fmt.Errorf("%w: tipo de gráfico %q", domain.ErrUnsupported, chart)
}

// Plotter dibuja un único gráfico.
type Plotter struct {
	Title  string
	Kind   report.ChartType
	Width  int
	Height int
}

// Plot codifica el gráfico como PNG en w.
func (p *Plotter) Plot(w io.Writer, r *report.Report) error {
	if len(r.Labels) < 2 {
		return fmt.Errorf("plot: el reporte necesita al menos dos columnas")
	}
	labels, values, err := series(r)
	if err != nil {
		return err
	}

	pl := gplot.New()
	pl.Title.Text = fmt.Sprintf("%s - %s", p.Title, r.Labels[1])
	pl.X.Label.Text = r.Labels[0]
	pl.Y.Label.Text = r.Labels[1]
	pl.Y.Min = 0
	pl.Add(plotter.NewGrid())

	if len(values) > 0 {
		if err := p.addSeries(pl, values); err != nil {
			return err
		}
	}
	pl.NominalX(labels...)
	pl.X.Min = -0.5
	pl.X.Max = float64(max(len(values), 1)) - 0.5
	if pl.Y.Max <= 0 {
		pl.Y.Max = 1
	}

	width, height := p.Width, p.Height
	if width < minSize || height < minSize {
		width, height = defaultWidth, defaultHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	pl.Draw(draw.New(vgimg.NewWith(vgimg.UseImage(img))))
	return png.Encode(w, img)
}

func (p *Plotter) addSeries(pl *gplot.Plot, values plotter.Values) error {
	switch p.Kind {
	case report.ChartLine:
		xys := make(plotter.XYs, len(values))
		for i, v := range values {
			xys[i] = plotter.XY{X: float64(i), Y: v}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		line.Color = colorSeries
		line.Width = vg.Points(2)
		points.Color = colorSeries
		points.Shape = draw.CircleGlyph{}
		pl.Add(line, points)
	default:
		bars, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		bars.Color = colorSeries
		bars.LineStyle.Width = 0
		pl.Add(bars)
	}
	return nil
}

// series extrae etiquetas (columna 0) y valores numéricos (columna 1).
func series(r *report.Report) ([]string, plotter.Values, error) {
	labels := make([]string, 0, len(r.Records))
	values := make(plotter.Values, 0, len(r.Records))
	for i, rec := range r.Records {
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("plot: registro %d incompleto", i)
		}
		v, err := toFloat(rec[1])
		if err != nil {
			return nil, nil, fmt.Errorf("plot: registro %d: %w", i, err)
		}
		labels = append(labels, report.FormatValue(rec[0]))
		values = append(values, v)
	}
	return labels, values, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64(), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case string:
		return strconv.ParseFloat(x, 64)
	case time.Time:
		return 0, fmt.Errorf("valor de fecha no graficable")
	}
	return 0, fmt.Errorf("valor no numérico: %v", v)
}
