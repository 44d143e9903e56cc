package entity

// Stock representa la existencia actual de un producto.
// Puede quedar negativa si no se exige stock suficiente al registrar pedidos.
type Stock struct {
	ProductID int
	Quantity  int
}
