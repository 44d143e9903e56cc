package repository

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Create solo se usa al sembrar datos; la fachada no expone altas de clientes.
type CustomerRepository interface {
	// Create persiste el cliente con las mismas reglas de ID que ProductRepository.Create.
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
}
