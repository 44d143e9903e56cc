package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryRepository(tx), NewOrderRepository(tx))
	})
}

// SeedIfEmpty ejecuta seed en una sola transacción solo si la tabla de productos está vacía.
// Un fallo a mitad de la siembra no deja filas. Devuelve true si sembró.
func (r *TxRunner) SeedIfEmpty(ctx context.Context, seed func(ctx context.Context, repos repository.Set) error) (bool, error) {
	seeded := false
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		// Dos procesos arrancando a la vez no siembran dos veces
		if _, err := tx.Exec(ctx, `LOCK TABLE products IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
		empty, err := IsEmpty(ctx, tx)
		if err != nil || !empty {
			return err
		}
		if err := seed(ctx, txSet(tx)); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func txSet(q Querier) repository.Set {
	return repository.Set{
		Products:  NewProductRepository(q),
		Customers: NewCustomerRepository(q),
		Inventory: NewInventoryRepository(q),
		Orders:    NewOrderRepository(q),
	}
}

// Repositories repositorios PostgreSQL sobre el pool.
type Repositories struct {
	Products  *ProductRepo
	Customers *CustomerRepo
	Inventory *InventoryRepo
	Orders    *OrderRepo
	TxRunner  *TxRunner
}

// NewRepositories construye todos los repositorios sobre el mismo pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Products:  NewProductRepository(pool),
		Customers: NewCustomerRepository(pool),
		Inventory: NewInventoryRepository(pool),
		Orders:    NewOrderRepository(pool),
		TxRunner:  NewTxRunner(pool),
	}
}

// Set devuelve los repositorios como repository.Set.
func (r *Repositories) Set() repository.Set {
	return repository.Set{Products: r.Products, Customers: r.Customers, Inventory: r.Inventory, Orders: r.Orders}
}
