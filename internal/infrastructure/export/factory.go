// Package export implementa los exportadores de reportes: CSV, TXT, HTML, JSON y PDF.
// Todos consumen el mismo contrato (etiquetas + registros) de report.Report.
package export

import (
	"fmt"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/report"
)

var _ usecase.ExporterFactory = (*Factory)(nil)

// Factory construye exportadores por formato.
type Factory struct {
	// Title se usa como título en HTML y PDF.
	Title string
}

// NewFactory construye la fábrica con el título de documento dado.
func NewFactory(title string) *Factory {
	if title == "" {
		title = "Reporte"
	}
	return &Factory{Title: title}
}

// NewExporter devuelve el exportador del formato o domain.ErrUnsupported.
func (f *Factory) NewExporter(format report.ExportFormat) (usecase.ReportExporter, error) {
	switch format {
	case report.FormatCSV:
		return NewCSVExporter(true), nil
	case report.FormatTXT:
		return NewTXTExporter(), nil
	case report.FormatHTML:
		return NewHTMLExporter(f.Title), nil
	case report.FormatJSON:
		return NewJSONExporter(), nil
	case report.FormatPDF:
		return NewPDFExporter(f.Title), nil
	}
	return nil, fmt.Errorf("%w: formato de exportación %q", domain.ErrUnsupported, format)
}
