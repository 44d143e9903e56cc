package repository

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe: la ausencia no es un error.
type ProductRepository interface {
	// Create persiste el producto. Si product.ID es 0 el repositorio asigna uno nuevo;
	// un ID explícito ya existente devuelve domain.ErrDuplicate.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}
