package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (tablas orders y order_lines).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const selectOrders = `
	SELECT o.id, o.order_date, o.pending, c.id, c.name
	FROM orders o JOIN customers c ON c.id = o.customer_id`

const selectLines = `
	SELECT l.order_id, l.quantity, p.id, p.name, p.price
	FROM order_lines l JOIN products p ON p.id = l.product_id`

// Create persiste cabecera y líneas. Para que sea atómico, usar con una tx (ver TxRunner).
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == 0 {
		err := r.q.QueryRow(ctx,
			`INSERT INTO orders (customer_id, order_date, pending) VALUES ($1, $2, $3) RETURNING id`,
			order.Customer.ID, order.Date, order.Pending,
		).Scan(&order.ID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
	} else {
		_, err := r.q.Exec(ctx,
			`INSERT INTO orders (id, customer_id, order_date, pending) VALUES ($1, $2, $3, $4)`,
			order.ID, order.Customer.ID, order.Date, order.Pending,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: pedido %d", domain.ErrDuplicate, order.ID)
			}
			return fmt.Errorf("insert order: %w", err)
		}
		if err := syncSequence(ctx, r.q, "orders"); err != nil {
			return err
		}
	}

	for _, l := range order.Lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_lines (order_id, product_id, quantity) VALUES ($1, $2, $3)`,
			order.ID, l.Product.ID, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, selectOrders+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	lines, err := r.lines(ctx, ` WHERE l.order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	built := entity.NewOrder(o.ID, o.Customer, o.Date, lines[o.ID], o.Pending)
	return &built, nil
}

// List lista todos los pedidos por fecha e ID.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, selectOrders+` ORDER BY o.order_date, o.id`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var headers []entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		headers = append(headers, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	lines, err := r.lines(ctx, "")
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Order, 0, len(headers))
	for _, h := range headers {
		o := entity.NewOrder(h.ID, h.Customer, h.Date, lines[h.ID], h.Pending)
		list = append(list, &o)
	}
	return list, nil
}

// lines devuelve las líneas agrupadas por ID de pedido.
func (r *OrderRepo) lines(ctx context.Context, where string, args ...any) (map[int][]entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, selectLines+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]entity.OrderLine)
	for rows.Next() {
		var (
			orderID int
			l       entity.OrderLine
		)
		if err := rows.Scan(&orderID, &l.Quantity, &l.Product.ID, &l.Product.Name, &l.Product.Price); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], l)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (entity.Order, error) {
	var (
		o    entity.Order
		date time.Time
	)
	if err := row.Scan(&o.ID, &date, &o.Pending, &o.Customer.ID, &o.Customer.Name); err != nil {
		return entity.Order{}, err
	}
	o.Date = entity.Day(date)
	return o, nil
}
