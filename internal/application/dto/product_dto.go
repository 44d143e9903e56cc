package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ToProductResponse mapea la entidad.
func ToProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price}
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ToCustomerResponse mapea la entidad.
func ToCustomerResponse(c entity.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name}
}

// StockResponse existencias de un producto.
type StockResponse struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}
