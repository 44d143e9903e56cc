package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de pedidos y reportes (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// OrderLine representa una línea de pedido: producto y cantidad (> 0).
type OrderLine struct {
	Product  Product
	Quantity int
}

// Subtotal devuelve precio * cantidad.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order representa un pedido de un cliente. Inmutable una vez creado.
// Date es una fecha calendario (medianoche UTC); Pending excluye el pedido de los reportes de ingresos.
type Order struct {
	ID       int
	Customer Customer
	Date     time.Time
	Lines    []OrderLine
	Pending  bool
}

// NewOrder construye un pedido normalizando la fecha y ordenando las líneas por ID de producto.
func NewOrder(id int, customer Customer, date time.Time, lines []OrderLine, pending bool) Order {
	sorted := make([]OrderLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Product.ID < sorted[j].Product.ID })
	return Order{
		ID:       id,
		Customer: customer,
		Date:     Day(date),
		Lines:    sorted,
		Pending:  pending,
	}
}

// TotalPrice suma precio * cantidad de todas las líneas.
func (o Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Quantities devuelve la cantidad pedida por ID de producto.
func (o Order) Quantities() map[int]int {
	out := make(map[int]int, len(o.Lines))
	for _, l := range o.Lines {
		out[l.Product.ID] += l.Quantity
	}
	return out
}

// Status etiqueta legible del estado del pedido.
func (o Order) Status() string {
	if o.Pending {
		return "pendiente"
	}
	return "entregado"
}

// OrderLess compara pedidos por fecha y luego por ID.
func OrderLess(a, b Order) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.ID < b.ID
}

// Day trunca t a la fecha calendario (medianoche UTC) conservando año, mes y día locales.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha en formato yyyy-MM-dd.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
