package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/warehouse/internal/domain/report"
)

// TXTExporter escribe el reporte como tabla de texto con columnas alineadas.
type TXTExporter struct{}

// NewTXTExporter construye el exportador.
func NewTXTExporter() *TXTExporter { return &TXTExporter{} }

// Export escribe encabezados, una línea separadora y los registros.
func (e *TXTExporter) Export(w io.Writer, r *report.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(r.Labels, "\t"))
	sep := make([]string, len(r.Labels))
	for i, l := range r.Labels {
		sep[i] = strings.Repeat("-", len([]rune(l)))
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
	for _, rec := range r.StringRecords() {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	return tw.Flush()
}
