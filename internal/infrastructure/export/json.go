package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/report"
)

// JSONExporter escribe el reporte como {"labels": [...], "records": [{etiqueta: valor}]}.
// Los decimales se emiten como números JSON, no como strings.
type JSONExporter struct{}

// NewJSONExporter construye el exportador.
func NewJSONExporter() *JSONExporter { return &JSONExporter{} }

type jsonReport struct {
	Labels  []string         `json:"labels"`
	Records []map[string]any `json:"records"`
}

// Export escribe el documento JSON indentado.
func (e *JSONExporter) Export(w io.Writer, r *report.Report) error {
	out := jsonReport{Labels: r.Labels, Records: make([]map[string]any, 0, len(r.Records))}
	for _, rec := range r.Records {
		obj := make(map[string]any, len(r.Labels))
		for i, label := range r.Labels {
			if i < len(rec) {
				obj[label] = jsonValue(rec[i])
			}
		}
		out.Records = append(out.Records, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jsonValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return json.Number(x.String())
	case time.Time:
		return x.Format(entity.DateLayout)
	default:
		return v
	}
}
