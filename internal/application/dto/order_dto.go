package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// OrderItemRequest una línea del pedido.
type OrderItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CreateOrderRequest entrada para registrar un pedido.
type CreateOrderRequest struct {
	CustomerID int                `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderLineResponse línea de un pedido.
type OrderLineResponse struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID       int                 `json:"id"`
	Customer CustomerResponse    `json:"customer"`
	Date     string              `json:"date"` // yyyy-MM-dd
	Pending  bool                `json:"pending"`
	Status   string              `json:"status"`
	Lines    []OrderLineResponse `json:"lines"`
	Total    decimal.Decimal     `json:"total"`
}

// ToOrderResponse mapea la entidad.
func ToOrderResponse(o entity.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			UnitPrice:   l.Product.Price,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal(),
		})
	}
	return OrderResponse{
		ID:       o.ID,
		Customer: ToCustomerResponse(o.Customer),
		Date:     o.Date.Format(entity.DateLayout),
		Pending:  o.Pending,
		Status:   o.Status(),
		Lines:    lines,
		Total:    o.TotalPrice(),
	}
}
