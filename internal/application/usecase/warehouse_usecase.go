package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

// WarehouseUseCase fachada única sobre los repositorios: valida entradas, mantiene los invariantes
// entre entidades y genera reportes. No registra logs; solo devuelve errores al llamador.
type WarehouseUseCase struct {
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.OrderRepository
	txRunner      TxRunner

	enforceStock bool
	now          func() time.Time
}

// WarehouseOption configura opciones de la fachada.
type WarehouseOption func(*WarehouseUseCase)

// WithStockEnforcement rechaza pedidos cuya cantidad supere el stock disponible.
func WithStockEnforcement(enabled bool) WarehouseOption {
	return func(uc *WarehouseUseCase) { uc.enforceStock = enabled }
}

// WithClock reemplaza el reloj usado para fechar pedidos nuevos.
func WithClock(now func() time.Time) WarehouseOption {
	return func(uc *WarehouseUseCase) { uc.now = now }
}

// NewWarehouseUseCase construye la fachada con sus repositorios inyectados.
func NewWarehouseUseCase(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	txRunner TxRunner,
	opts ...WarehouseOption,
) *WarehouseUseCase {
	uc := &WarehouseUseCase{
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		txRunner:      txRunner,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetProducts devuelve una copia de los productos ordenada por ID.
func (uc *WarehouseUseCase) GetProducts(ctx context.Context) ([]entity.Product, error) {
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(list))
	for _, p := range list {
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCustomers devuelve una copia de los clientes ordenada por ID.
func (uc *WarehouseUseCase) GetCustomers(ctx context.Context) ([]entity.Customer, error) {
	list, err := uc.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Customer, 0, len(list))
	for _, c := range list {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetOrders devuelve una copia de los pedidos ordenada por fecha y luego por ID.
func (uc *WarehouseUseCase) GetOrders(ctx context.Context) ([]entity.Order, error) {
	list, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(list))
	for _, o := range list {
		out = append(out, copyOrder(o))
	}
	sort.SliceStable(out, func(i, j int) bool { return entity.OrderLess(out[i], out[j]) })
	return out, nil
}

// GetInventory devuelve el stock de cada producto ordenado por ID de producto.
func (uc *WarehouseUseCase) GetInventory(ctx context.Context) ([]entity.Stock, error) {
	list, err := uc.inventoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Stock, 0, len(list))
	for _, s := range list {
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// GetProduct obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *WarehouseUseCase) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

// GetCustomer obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (uc *WarehouseUseCase) GetCustomer(ctx context.Context, id int) (*entity.Customer, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	cp := *c
	return &cp, nil
}

// GetOrder obtiene un pedido por ID. Devuelve (nil, nil) si no existe.
func (uc *WarehouseUseCase) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	cp := copyOrder(o)
	return &cp, nil
}

// AddProduct crea un producto con ID asignado por el repositorio.
// El precio debe ser un entero no negativo y el nombre no puede estar vacío.
func (uc *WarehouseUseCase) AddProduct(ctx context.Context, name string, price decimal.Decimal) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del producto es requerido", domain.ErrInvalidInput)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio del producto no puede ser negativo", domain.ErrInvalidInput)
	}
	if !price.IsInteger() {
		return nil, fmt.Errorf("%w: el precio del producto debe ser un número entero", domain.ErrInvalidInput)
	}
	product := &entity.Product{Name: name, Price: price}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	cp := *product
	return &cp, nil
}

// AddOrder registra un pedido entregado con la fecha actual y descuenta el stock de cada línea.
// Todas las validaciones ocurren antes de cualquier cambio: un pedido inválido no deja rastro.
func (uc *WarehouseUseCase) AddOrder(ctx context.Context, customerID int, quantities map[int]int) (*entity.Order, error) {
	if len(quantities) == 0 {
		return nil, fmt.Errorf("%w: el pedido debe tener al menos un producto", domain.ErrInvalidInput)
	}
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: ID de cliente desconocido: %d", domain.ErrInvalidInput, customerID)
	}

	// Orden estable para que los mensajes de error sean deterministas
	productIDs := make([]int, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}
	sort.Ints(productIDs)

	lines := make([]entity.OrderLine, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := uc.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: ID de producto desconocido: %d", domain.ErrInvalidInput, id)
		}
		qty := quantities[id]
		if qty < 1 {
			return nil, fmt.Errorf("%w: la cantidad pedida debe ser mayor que 0", domain.ErrInvalidInput)
		}
		lines = append(lines, entity.OrderLine{Product: *product, Quantity: qty})
	}

	if uc.enforceStock {
		for _, l := range lines {
			stock, err := uc.inventoryRepo.Get(ctx, l.Product.ID)
			if err != nil {
				return nil, err
			}
			if err := checkStock(stock, l); err != nil {
				return nil, err
			}
		}
	}

	order := entity.NewOrder(0, *customer, uc.now(), lines, false)
	err = uc.txRunner.Run(ctx, func(
		inventoryRepo repository.InventoryRepository,
		orderRepo repository.OrderRepository,
	) error {
		for _, l := range order.Lines {
			stock, err := inventoryRepo.GetForUpdate(ctx, l.Product.ID)
			if err != nil {
				return err
			}
			if uc.enforceStock {
				if err := checkStock(stock, l); err != nil {
					return err
				}
			}
			if stock == nil {
				stock = &entity.Stock{ProductID: l.Product.ID}
			}
			stock.Quantity -= l.Quantity
			if err := inventoryRepo.Upsert(ctx, stock); err != nil {
				return err
			}
		}
		return orderRepo.Create(ctx, &order)
	})
	if err != nil {
		return nil, err
	}
	cp := copyOrder(&order)
	return &cp, nil
}

// GenerateReport genera un reporte del tipo indicado. Solo DAILY_REVENUE está implementado.
func (uc *WarehouseUseCase) GenerateReport(ctx context.Context, reportType report.Type) (*report.Report, error) {
	switch reportType {
	case report.TypeDailyRevenue:
		orders, err := uc.orderRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		values := make([]entity.Order, 0, len(orders))
		for _, o := range orders {
			values = append(values, *o)
		}
		return report.DailyRevenue(values), nil
	}
	return nil, fmt.Errorf("%w: tipo de reporte %s", domain.ErrUnsupported, reportType)
}

func checkStock(stock *entity.Stock, l entity.OrderLine) error {
	available := 0
	if stock != nil {
		available = stock.Quantity
	}
	if available < l.Quantity {
		return fmt.Errorf("%w: producto %d (disponible %d, pedido %d)",
			domain.ErrInsufficientStock, l.Product.ID, available, l.Quantity)
	}
	return nil
}

func copyOrder(o *entity.Order) entity.Order {
	cp := *o
	cp.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return cp
}
