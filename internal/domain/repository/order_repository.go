package repository

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	// Create persiste el pedido. Si order.ID es 0 el repositorio asigna uno nuevo;
	// un ID explícito ya existente devuelve domain.ErrDuplicate.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
}
