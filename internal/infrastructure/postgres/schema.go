package postgres

import (
	"context"
	"fmt"
)

// schema tablas del almacén. Las sentencias son idempotentes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id    SERIAL PRIMARY KEY,
		name  TEXT NOT NULL,
		price NUMERIC(14,0) NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id   SERIAL PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stock (
		product_id INTEGER PRIMARY KEY REFERENCES products(id),
		quantity   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          SERIAL PRIMARY KEY,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		order_date  DATE NOT NULL,
		pending     BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		order_id   INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(id),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (order_id, product_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_date ON orders (order_date, id)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// IsEmpty indica si la base no tiene productos (para decidir si sembrar datos demo).
func IsEmpty(ctx context.Context, q Querier) (bool, error) {
	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	return n == 0, nil
}
