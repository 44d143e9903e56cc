// Package memory implementa los repositorios sobre mapas en memoria.
// Un Store agrupa los cuatro mapas para que TxRunner pueda revertir stock y pedidos juntos.
package memory

import (
	"sync"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

// Store datos en memoria compartidos por los repositorios.
// Las escrituras de pedidos y stock deben pasar por TxRunner.Run; fuera de él no hay rollback.
type Store struct {
	txMu      sync.Mutex // serializa TxRunner.Run
	mu        sync.RWMutex
	products  map[int]entity.Product
	customers map[int]entity.Customer
	stock     map[int]entity.Stock
	orders    map[int]entity.Order
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[int]entity.Product),
		customers: make(map[int]entity.Customer),
		stock:     make(map[int]entity.Stock),
		orders:    make(map[int]entity.Order),
	}
}

// Repositories repositorios en memoria atados a un Store.
type Repositories struct {
	Products  *ProductRepo
	Customers *CustomerRepo
	Inventory *InventoryRepo
	Orders    *OrderRepo
	TxRunner  *TxRunner
}

// NewRepositories construye todos los repositorios sobre el mismo Store.
func NewRepositories(s *Store) *Repositories {
	return &Repositories{
		Products:  NewProductRepository(s),
		Customers: NewCustomerRepository(s),
		Inventory: NewInventoryRepository(s),
		Orders:    NewOrderRepository(s),
		TxRunner:  NewTxRunner(s),
	}
}

// Set devuelve los repositorios como repository.Set.
func (r *Repositories) Set() repository.Set {
	return repository.Set{Products: r.Products, Customers: r.Customers, Inventory: r.Inventory, Orders: r.Orders}
}

func nextID[V any](m map[int]V) int {
	max := 0
	for id := range m {
		if id > max {
			max = id
		}
	}
	return max + 1
}
