package memory

import (
	"context"
	"maps"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner emula una transacción sobre el Store: toma una copia del stock y de los pedidos
// y la restaura si fn devuelve error. Las ejecuciones se serializan, así un rollback nunca
// pisa lo confirmado por otra y la verificación de stock dentro de fn ve un saldo estable.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con los repositorios de inventario y pedidos; hace rollback ante error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.RLock()
	stock := maps.Clone(r.s.stock)
	orders := maps.Clone(r.s.orders)
	r.s.mu.RUnlock()

	if err := fn(NewInventoryRepository(r.s), NewOrderRepository(r.s)); err != nil {
		r.s.mu.Lock()
		r.s.stock = stock
		r.s.orders = orders
		r.s.mu.Unlock()
		return err
	}
	return nil
}
