// Package report contiene el modelo tabular de reportes (etiquetas + registros) y las
// agregaciones que lo producen. El modelo es independiente del formato de salida.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// Type tipo de reporte.
type Type string

// TypeDailyRevenue ingresos diarios de pedidos entregados.
const TypeDailyRevenue Type = "DAILY_REVENUE"

// ParseType interpreta un tipo de reporte sin distinguir mayúsculas (acepta "daily-revenue").
// No valida que esté implementado: eso lo decide quien genera el reporte.
func ParseType(s string) Type {
	return Type(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
}

// Slug devuelve el tipo en minúsculas con guiones, útil para nombres de archivo y claves.
func (t Type) Slug() string {
	return strings.ToLower(strings.ReplaceAll(string(t), "_", "-"))
}

// Report tabla con etiquetas de columna y registros alineados a ellas.
// Se construye por solicitud y no se persiste.
type Report struct {
	Labels  []string
	Records [][]any
}

// New crea un reporte vacío con las etiquetas dadas.
func New(labels ...string) *Report {
	return &Report{Labels: labels}
}

// AddRecord agrega un registro. Debe tener tantos valores como etiquetas.
func (r *Report) AddRecord(values ...any) {
	r.Records = append(r.Records, values)
}

// FormatValue representa un valor de registro como texto: fechas en yyyy-MM-dd y
// decimales sin notación exponencial.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(entity.DateLayout)
	case decimal.Decimal:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// StringRecords devuelve todos los registros formateados con FormatValue.
func (r *Report) StringRecords() [][]string {
	out := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = FormatValue(v)
		}
		out = append(out, row)
	}
	return out
}
