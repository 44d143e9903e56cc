package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

// Seed carga el catálogo de demostración: productos, clientes, stock y algunos pedidos.
// Las fechas de los pedidos son relativas a today para que el reporte diario tenga datos recientes.
func Seed(ctx context.Context, repos repository.Set, today time.Time) error {
	products := []entity.Product{
		{ID: 1, Name: "Cuaderno", Price: decimal.NewFromInt(300)},
		{ID: 2, Name: "Lápiz", Price: decimal.NewFromInt(50)},
		{ID: 3, Name: "Borrador", Price: decimal.NewFromInt(70)},
		{ID: 4, Name: "Regla", Price: decimal.NewFromInt(120)},
		{ID: 5, Name: "Mochila", Price: decimal.NewFromInt(2500)},
	}
	for i := range products {
		if err := repos.Products.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	for _, st := range []entity.Stock{
		{ProductID: 1, Quantity: 40},
		{ProductID: 2, Quantity: 200},
		{ProductID: 3, Quantity: 150},
		{ProductID: 4, Quantity: 60},
		{ProductID: 5, Quantity: 10},
	} {
		st := st
		if err := repos.Inventory.Upsert(ctx, &st); err != nil {
			return err
		}
	}
	customers := []entity.Customer{
		{ID: 1, Name: "Ana Gómez"},
		{ID: 2, Name: "Carlos Ruiz"},
		{ID: 3, Name: "Lucía Pérez"},
	}
	for i := range customers {
		if err := repos.Customers.Create(ctx, &customers[i]); err != nil {
			return err
		}
	}

	day := entity.Day(today)
	line := func(productIdx, qty int) entity.OrderLine {
		return entity.OrderLine{Product: products[productIdx], Quantity: qty}
	}
	orders := []entity.Order{
		entity.NewOrder(1, customers[0], day.AddDate(0, 0, -2), []entity.OrderLine{line(0, 2), line(1, 10)}, false),
		entity.NewOrder(2, customers[1], day.AddDate(0, 0, -2), []entity.OrderLine{line(4, 1)}, false),
		entity.NewOrder(3, customers[2], day.AddDate(0, 0, -1), []entity.OrderLine{line(2, 5), line(3, 1)}, false),
		entity.NewOrder(4, customers[0], day.AddDate(0, 0, -1), []entity.OrderLine{line(4, 2)}, true),
		entity.NewOrder(5, customers[1], day, []entity.OrderLine{line(0, 1)}, false),
	}
	for i := range orders {
		if err := repos.Orders.Create(ctx, &orders[i]); err != nil {
			return err
		}
	}
	return nil
}
