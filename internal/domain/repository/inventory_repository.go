package repository

import (
	"context"

	"github.com/jhoicas/warehouse/internal/domain/entity"
)

// InventoryRepository define el puerto para consultar/actualizar el stock por producto.
// Usado dentro de transacciones para garantizar consistencia con los pedidos.
type InventoryRepository interface {
	// Get devuelve (nil, nil) si el producto no tiene registro de stock.
	Get(ctx context.Context, productID int) (*entity.Stock, error)
	// GetForUpdate igual que Get pero bloquea la fila cuando el almacenamiento lo soporta.
	GetForUpdate(ctx context.Context, productID int) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	List(ctx context.Context) ([]*entity.Stock, error)
}
