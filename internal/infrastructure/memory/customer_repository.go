package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	s *Store
}

// NewCustomerRepository construye el repositorio sobre el Store.
func NewCustomerRepository(s *Store) *CustomerRepo {
	return &CustomerRepo{s: s}
}

// Create persiste el cliente asignando un ID nuevo si viene en 0.
func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if customer.ID == 0 {
		customer.ID = nextID(r.s.customers)
	} else if _, exists := r.s.customers[customer.ID]; exists {
		return fmt.Errorf("%w: cliente %d", domain.ErrDuplicate, customer.ID)
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(_ context.Context, id int) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// List lista todos los clientes.
func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		c := c
		list = append(list, &c)
	}
	return list, nil
}
