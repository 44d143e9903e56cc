package memory

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación en memoria de InventoryRepository.
type InventoryRepo struct {
	s *Store
}

// NewInventoryRepository construye el repositorio sobre el Store.
func NewInventoryRepository(s *Store) *InventoryRepo {
	return &InventoryRepo{s: s}
}

// Get obtiene el stock de un producto.
func (r *InventoryRepo) Get(_ context.Context, productID int) (*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stock[productID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// GetForUpdate en memoria no hay bloqueo de fila; equivale a Get.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID int) (*entity.Stock, error) {
	return r.Get(ctx, productID)
}

// Upsert inserta o reemplaza la cantidad en stock del producto.
func (r *InventoryRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stock[stock.ProductID] = *stock
	return nil
}

// List lista el stock de todos los productos.
func (r *InventoryRepo) List(_ context.Context) ([]*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Stock, 0, len(r.s.stock))
	for _, st := range r.s.stock {
		st := st
		list = append(list, &st)
	}
	return list, nil
}
