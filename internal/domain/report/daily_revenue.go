package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// Etiquetas del reporte de ingresos diarios.
const (
	LabelDate         = "Date"
	LabelTotalRevenue = "Total revenue"
)

// DailyRevenue agrupa los pedidos entregados por fecha y suma su precio total.
// Excluye pedidos pendientes. Emite un registro (fecha, ingreso) por fecha distinta en orden
// ascendente: los pedidos se ordenan por fecha e ID antes de agrupar y el grupo conserva
// el orden de aparición de cada fecha.
func DailyRevenue(orders []entity.Order) *Report {
	r := New(LabelDate, LabelTotalRevenue)

	fulfilled := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if !o.Pending {
			fulfilled = append(fulfilled, o)
		}
	}
	sort.SliceStable(fulfilled, func(i, j int) bool { return entity.OrderLess(fulfilled[i], fulfilled[j]) })

	var dates []time.Time
	totals := make(map[time.Time]decimal.Decimal)
	for _, o := range fulfilled {
		day := entity.Day(o.Date)
		if _, seen := totals[day]; !seen {
			dates = append(dates, day)
			totals[day] = decimal.Zero
		}
		totals[day] = totals[day].Add(o.TotalPrice())
	}
	for _, d := range dates {
		r.AddRecord(d, totals[d])
	}
	return r
}
