package repository

// Set agrupa los cuatro repositorios del almacén de un mismo backend.
type Set struct {
	Products  ProductRepository
	Customers CustomerRepository
	Inventory InventoryRepository
	Orders    OrderRepository
}
