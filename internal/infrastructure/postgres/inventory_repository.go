package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository (tabla stock).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el stock de un producto.
func (r *InventoryRepo) Get(ctx context.Context, productID int) (*entity.Stock, error) {
	return r.get(ctx, `SELECT product_id, quantity FROM stock WHERE product_id = $1`, productID)
}

// GetForUpdate obtiene el stock bloqueando la fila (SELECT FOR UPDATE). Usar dentro de una transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID int) (*entity.Stock, error) {
	return r.get(ctx, `SELECT product_id, quantity FROM stock WHERE product_id = $1 FOR UPDATE`, productID)
}

func (r *InventoryRepo) get(ctx context.Context, query string, productID int) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el stock de un producto.
func (r *InventoryRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock (product_id, quantity) VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
		stock.ProductID, stock.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List lista el stock por ID de producto.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, `SELECT product_id, quantity FROM stock ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.Quantity); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
