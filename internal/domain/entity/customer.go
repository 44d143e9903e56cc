package entity

// Customer representa un cliente. Solo lectura desde la fachada; se crea al sembrar datos.
type Customer struct {
	ID   int
	Name string
}
