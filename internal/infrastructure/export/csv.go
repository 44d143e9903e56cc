package export

import (
	"encoding/csv"
	"io"

	"github.com/jhoicas/warehouse/internal/domain/report"
)

// CSVExporter escribe el reporte como CSV, opcionalmente con fila de encabezados.
type CSVExporter struct {
	withHeader bool
}

// NewCSVExporter construye el exportador.
func NewCSVExporter(withHeader bool) *CSVExporter {
	return &CSVExporter{withHeader: withHeader}
}

// Export escribe encabezados y registros.
func (e *CSVExporter) Export(w io.Writer, r *report.Report) error {
	cw := csv.NewWriter(w)
	if e.withHeader {
		if err := cw.Write(r.Labels); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(r.StringRecords()); err != nil {
		return err
	}
	return cw.Error()
}
