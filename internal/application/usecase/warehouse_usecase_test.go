package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/internal/domain/repository"
	"github.com/jhoicas/warehouse/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testToday = time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testToday }

// newTestWarehouse construye la fachada sobre un Store en memoria con un cliente (1),
// dos productos (1: precio 10, 2: precio 3) y stock 5 de cada uno.
func newTestWarehouse(t *testing.T, opts ...usecase.WarehouseOption) (*usecase.WarehouseUseCase, *memory.Repositories) {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: 1, Name: "Ana"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: 1, Name: "A", Price: decimal.NewFromInt(10)}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: 2, Name: "B", Price: decimal.NewFromInt(3)}))
	require.NoError(t, repos.Inventory.Upsert(ctx, &entity.Stock{ProductID: 1, Quantity: 5}))
	require.NoError(t, repos.Inventory.Upsert(ctx, &entity.Stock{ProductID: 2, Quantity: 5}))

	opts = append([]usecase.WarehouseOption{usecase.WithClock(fixedClock)}, opts...)
	uc := usecase.NewWarehouseUseCase(repos.Products, repos.Customers, repos.Inventory, repos.Orders, repos.TxRunner, opts...)
	return uc, repos
}

func stockOf(t *testing.T, uc *usecase.WarehouseUseCase) map[int]int {
	t.Helper()
	list, err := uc.GetInventory(context.Background())
	require.NoError(t, err)
	out := make(map[int]int, len(list))
	for _, s := range list {
		out[s.ProductID] = s.Quantity
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// AddProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestAddProduct_AsignaIDUnicoYSeListaOrdenado(t *testing.T) {
	uc, _ := newTestWarehouse(t)
	ctx := context.Background()

	p, err := uc.AddProduct(ctx, "Cuaderno", decimal.NewFromInt(0))
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)

	products, err := uc.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	for i, want := range []int{1, 2, 3} {
		assert.Equal(t, want, products[i].ID)
	}
	assert.Equal(t, "Cuaderno", products[2].Name)
}

func TestAddProduct_PrecioNegativoNoModificaElStore(t *testing.T) {
	uc, _ := newTestWarehouse(t)
	ctx := context.Background()

	_, err := uc.AddProduct(ctx, "X", decimal.NewFromInt(-1))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "no puede ser negativo")

	products, err := uc.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestAddProduct_RechazaPrecioFraccionarioYNombreVacio(t *testing.T) {
	uc, _ := newTestWarehouse(t)
	ctx := context.Background()

	_, err := uc.AddProduct(ctx, "X", decimal.RequireFromString("1.5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddProduct(ctx, "   ", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestAddOrder_CreaPedidoYDescuentaStock(t *testing.T) {
	uc, _ := newTestWarehouse(t)
	ctx := context.Background()

	o, err := uc.AddOrder(ctx, 1, map[int]int{1: 2, 2: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, o.ID)
	assert.False(t, o.Pending)
	assert.Equal(t, entity.Day(testToday), o.Date)
	assert.True(t, o.TotalPrice().Equal(decimal.NewFromInt(23)))
	assert.Equal(t, map[int]int{1: 3, 2: 4}, stockOf(t, uc))

	orders, err := uc.GetOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana", orders[0].Customer.Name)
}

func TestAddOrder_EntradasInvalidasNoDejanRastro(t *testing.T) {
	cases := []struct {
		name       string
		customerID int
		quantities map[int]int
		msg        string
	}{
		{"pedido vacío", 1, map[int]int{}, "al menos un producto"},
		{"cliente desconocido", 42, map[int]int{1: 1}, "cliente desconocido: 42"},
		{"producto desconocido", 1, map[int]int{1: 1, 9: 1}, "producto desconocido: 9"},
		{"cantidad cero", 1, map[int]int{1: 0}, "mayor que 0"},
		{"cantidad negativa", 1, map[int]int{1: 1, 2: -3}, "mayor que 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newTestWarehouse(t)
			ctx := context.Background()

			_, err := uc.AddOrder(ctx, tc.customerID, tc.quantities)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.msg)

			orders, err := uc.GetOrders(ctx)
			require.NoError(t, err)
			assert.Empty(t, orders)
			assert.Equal(t, map[int]int{1: 5, 2: 5}, stockOf(t, uc))
		})
	}
}

func TestAddOrder_SinControlDeStockPermiteSaldoNegativo(t *testing.T) {
	uc, _ := newTestWarehouse(t)

	_, err := uc.AddOrder(context.Background(), 1, map[int]int{1: 8})
	require.NoError(t, err)
	assert.Equal(t, -3, stockOf(t, uc)[1])
}

func TestAddOrder_ConControlDeStockRechazaFaltantes(t *testing.T) {
	uc, _ := newTestWarehouse(t, usecase.WithStockEnforcement(true))
	ctx := context.Background()

	_, err := uc.AddOrder(ctx, 1, map[int]int{1: 1, 2: 6})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, map[int]int{1: 5, 2: 5}, stockOf(t, uc))

	_, err = uc.AddOrder(ctx, 1, map[int]int{2: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, uc)[2])
}

// failingOrderTx envuelve el TxRunner en memoria y hace fallar el alta del pedido,
// después de que el stock ya fue descontado dentro de la transacción.
type failingOrderTx struct {
	inner *memory.TxRunner
}

type failingOrderRepo struct {
	repository.OrderRepository
}

var errOrderStore = errors.New("almacenamiento de pedidos no disponible")

func (failingOrderRepo) Create(context.Context, *entity.Order) error { return errOrderStore }

func (f failingOrderTx) Run(ctx context.Context, fn func(repository.InventoryRepository, repository.OrderRepository) error) error {
	return f.inner.Run(ctx, func(inv repository.InventoryRepository, orders repository.OrderRepository) error {
		return fn(inv, failingOrderRepo{orders})
	})
}

func TestAddOrder_FalloDentroDeLaTransaccionRevierteStock(t *testing.T) {
	_, repos := newTestWarehouse(t)
	uc := usecase.NewWarehouseUseCase(repos.Products, repos.Customers, repos.Inventory, repos.Orders,
		failingOrderTx{inner: repos.TxRunner}, usecase.WithClock(fixedClock))

	_, err := uc.AddOrder(context.Background(), 1, map[int]int{1: 2})
	require.ErrorIs(t, err, errOrderStore)
	assert.Equal(t, map[int]int{1: 5, 2: 5}, stockOf(t, uc))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrders_OrdenadosPorFechaLuegoID(t *testing.T) {
	_, repos := newTestWarehouse(t)
	ctx := context.Background()
	c := entity.Customer{ID: 1, Name: "Ana"}
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	for _, o := range []entity.Order{
		entity.NewOrder(3, c, d2, nil, false),
		entity.NewOrder(4, c, d1, nil, false),
		entity.NewOrder(1, c, d2, nil, true),
		entity.NewOrder(2, c, d1, nil, false),
	} {
		o := o
		require.NoError(t, repos.Orders.Create(ctx, &o))
	}
	uc := usecase.NewWarehouseUseCase(repos.Products, repos.Customers, repos.Inventory, repos.Orders, repos.TxRunner)

	orders, err := uc.GetOrders(ctx)
	require.NoError(t, err)
	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int{2, 4, 1, 3}, ids)
}

func TestGetByID_AusenciaNoEsError(t *testing.T) {
	uc, _ := newTestWarehouse(t)
	ctx := context.Background()

	p, err := uc.GetProduct(ctx, 77)
	require.NoError(t, err)
	assert.Nil(t, p)

	c, err := uc.GetCustomer(ctx, 77)
	require.NoError(t, err)
	assert.Nil(t, c)

	o, err := uc.GetOrder(ctx, 77)
	require.NoError(t, err)
	assert.Nil(t, o)
}

// ──────────────────────────────────────────────────────────────────────────────
// GenerateReport
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateReport_ExcluyePedidosPendientes(t *testing.T) {
	_, repos := newTestWarehouse(t)
	ctx := context.Background()
	c := entity.Customer{ID: 1, Name: "Ana"}
	a := entity.Product{ID: 1, Name: "A", Price: decimal.NewFromInt(10)}
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o1 := entity.NewOrder(1, c, d, []entity.OrderLine{{Product: a, Quantity: 2}}, false)
	o2 := entity.NewOrder(2, c, d, []entity.OrderLine{{Product: a, Quantity: 5}}, true)
	require.NoError(t, repos.Orders.Create(ctx, &o1))
	require.NoError(t, repos.Orders.Create(ctx, &o2))
	uc := usecase.NewWarehouseUseCase(repos.Products, repos.Customers, repos.Inventory, repos.Orders, repos.TxRunner)

	r, err := uc.GenerateReport(ctx, report.TypeDailyRevenue)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2024-01-01", "20"}}, r.StringRecords())
}

func TestGenerateReport_TipoNoSoportado(t *testing.T) {
	uc, _ := newTestWarehouse(t)
	ctx := context.Background()

	r, err := uc.GenerateReport(ctx, report.Type("MONTHLY_COST"))
	assert.Nil(t, r)
	require.ErrorIs(t, err, domain.ErrUnsupported)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)

	orders, err := uc.GetOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
