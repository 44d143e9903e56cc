package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. El ID lo asigna el repositorio al crearlo.
type Product struct {
	ID    int
	Name  string
	Price decimal.Decimal // precio unitario, entero no negativo
}
