package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	s *Store
}

// NewOrderRepository construye el repositorio sobre el Store.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

// Create persiste el pedido asignando un ID nuevo si viene en 0.
func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if order.ID == 0 {
		order.ID = nextID(r.s.orders)
	} else if _, exists := r.s.orders[order.ID]; exists {
		return fmt.Errorf("%w: pedido %d", domain.ErrDuplicate, order.ID)
	}
	stored := *order
	stored.Lines = append([]entity.OrderLine(nil), order.Lines...)
	r.s.orders[order.ID] = stored
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(_ context.Context, id int) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return &o, nil
}

// List lista todos los pedidos.
func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		o := o
		o.Lines = append([]entity.OrderLine(nil), o.Lines...)
		list = append(list, &o)
	}
	return list, nil
}
