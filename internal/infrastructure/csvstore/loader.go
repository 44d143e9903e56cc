// Package csvstore carga el estado inicial del almacén desde cuatro archivos CSV sin encabezado:
//
//	products.csv   id,name,price
//	inventory.csv  productId,quantity
//	customers.csv  id,name
//	orders.csv     id,customerId,date,pending,<productId>x<quantity>...
//
// Cualquier error aborta la carga completa; no se devuelven datos parciales.
package csvstore

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

// Nombres de archivo dentro del directorio de datos.
const (
	ProductsFile  = "products.csv"
	InventoryFile = "inventory.csv"
	CustomersFile = "customers.csv"
	OrdersFile    = "orders.csv"
)

// LoadError error de carga con su ubicación. Envuelve domain.ErrLoad.
type LoadError struct {
	File  string
	Line  int
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s:%d: %v", domain.ErrLoad, e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s:%d: %s: %v", domain.ErrLoad, e.File, e.Line, e.Field, e.Err)
}

// Unwrap permite errors.Is(err, domain.ErrLoad) y sobre la causa.
func (e *LoadError) Unwrap() []error {
	return []error{domain.ErrLoad, e.Err}
}

var (
	errNotInteger  = errors.New("debe ser un número entero")
	errMissing     = errors.New("campo faltante")
	errDuplicate   = errors.New("ID duplicado")
	errUnknown     = errors.New("referencia desconocida")
	errBadDate     = errors.New("la fecha debe tener formato yyyy-MM-dd")
	errBadToken    = errors.New("el detalle debe tener formato <productId>x<cantidad>")
	errNotPositive = errors.New("debe ser mayor que 0")
	errNegative    = errors.New("no puede ser negativo")
	errNoDetail    = errors.New("el pedido debe tener al menos un producto")
)

// Options opciones de lectura.
type Options struct {
	// Encoding "utf-8" (por defecto) o "latin1".
	Encoding string
}

// Data contenido validado de los cuatro archivos.
type Data struct {
	Products  []entity.Product
	Stock     []entity.Stock
	Customers []entity.Customer
	Orders    []entity.Order
}

// Load lee y valida los cuatro archivos de dir.
func Load(dir string, opts Options) (*Data, error) {
	l := &loader{
		dir:       dir,
		opts:      opts,
		products:  make(map[int]entity.Product),
		stock:     make(map[int]int),
		customers: make(map[int]entity.Customer),
		orderIDs:  make(map[int]struct{}),
	}
	steps := []struct {
		file string
		fn   func(line int, row []string) error
	}{
		{ProductsFile, l.product},
		{InventoryFile, l.inventory},
		{CustomersFile, l.customer},
		{OrdersFile, l.order},
	}
	for _, s := range steps {
		if err := l.readFile(s.file, s.fn); err != nil {
			return nil, err
		}
	}
	return &l.data, nil
}

// Seed persiste los datos en los repositorios, conservando los IDs del archivo.
func (d *Data) Seed(ctx context.Context, repos repository.Set) error {
	for i := range d.Products {
		p := d.Products[i]
		if err := repos.Products.Create(ctx, &p); err != nil {
			return fmt.Errorf("guardar producto %d: %w", p.ID, err)
		}
	}
	for i := range d.Customers {
		c := d.Customers[i]
		if err := repos.Customers.Create(ctx, &c); err != nil {
			return fmt.Errorf("guardar cliente %d: %w", c.ID, err)
		}
	}
	for i := range d.Stock {
		s := d.Stock[i]
		if err := repos.Inventory.Upsert(ctx, &s); err != nil {
			return fmt.Errorf("guardar stock del producto %d: %w", s.ProductID, err)
		}
	}
	for i := range d.Orders {
		o := d.Orders[i]
		if err := repos.Orders.Create(ctx, &o); err != nil {
			return fmt.Errorf("guardar pedido %d: %w", o.ID, err)
		}
	}
	return nil
}

type loader struct {
	dir  string
	opts Options
	data Data

	file      string
	products  map[int]entity.Product
	stock     map[int]int
	customers map[int]entity.Customer
	orderIDs  map[int]struct{}
}

func (l *loader) readFile(name string, fn func(line int, row []string) error) error {
	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return &LoadError{File: name, Err: err}
	}
	defer f.Close()

	l.file = name
	r, err := l.decode(f)
	if err != nil {
		return &LoadError{File: name, Err: err}
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return &LoadError{File: name, Line: pe.Line, Err: pe.Err}
			}
			return &LoadError{File: name, Err: err}
		}
		line, _ := cr.FieldPos(0)
		if isBlank(row) {
			continue
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}

// decode aplica la codificación configurada y descarta el BOM UTF-8.
func (l *loader) decode(r io.Reader) (io.Reader, error) {
	switch strings.ToLower(l.opts.Encoding) {
	case "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "", "utf-8", "utf8":
		br := bufio.NewReader(r)
		if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
			_, _ = br.Discard(3)
		}
		return br, nil
	}
	return nil, fmt.Errorf("codificación no soportada: %q", l.opts.Encoding)
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (l *loader) fail(line int, field string, err error) error {
	return &LoadError{File: l.file, Line: line, Field: field, Err: err}
}

func field(row []string, i int) (string, bool) {
	if i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func (l *loader) intField(line int, row []string, i int, name string) (int, error) {
	s, ok := field(row, i)
	if !ok {
		return 0, l.fail(line, name, errMissing)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, l.fail(line, name, fmt.Errorf("%w: %q", errNotInteger, s))
	}
	return n, nil
}

// idField como intField pero exige un ID positivo; el 0 lo reservan los repositorios para asignar uno nuevo.
func (l *loader) idField(line int, row []string, i int, name string) (int, error) {
	id, err := l.intField(line, row, i, name)
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, l.fail(line, name, fmt.Errorf("%w: %d", errNotPositive, id))
	}
	return id, nil
}

func (l *loader) stringField(line int, row []string, i int, name string) (string, error) {
	s, ok := field(row, i)
	if !ok {
		return "", l.fail(line, name, errMissing)
	}
	return s, nil
}

func (l *loader) product(line int, row []string) error {
	id, err := l.idField(line, row, 0, "id")
	if err != nil {
		return err
	}
	name, err := l.stringField(line, row, 1, "name")
	if err != nil {
		return err
	}
	price, err := l.intField(line, row, 2, "price")
	if err != nil {
		return err
	}
	if price < 0 {
		return l.fail(line, "price", fmt.Errorf("%w: %d", errNegative, price))
	}
	if _, dup := l.products[id]; dup {
		return l.fail(line, "id", fmt.Errorf("%w: producto %d", errDuplicate, id))
	}
	p := entity.Product{ID: id, Name: name, Price: decimal.NewFromInt(int64(price))}
	l.products[id] = p
	l.data.Products = append(l.data.Products, p)
	return nil
}

// inventory la última fila de un producto reemplaza a las anteriores.
func (l *loader) inventory(line int, row []string) error {
	id, err := l.idField(line, row, 0, "productId")
	if err != nil {
		return err
	}
	if _, ok := l.products[id]; !ok {
		return l.fail(line, "productId", fmt.Errorf("%w: producto %d", errUnknown, id))
	}
	qty, err := l.intField(line, row, 1, "quantity")
	if err != nil {
		return err
	}
	if _, seen := l.stock[id]; seen {
		for i := range l.data.Stock {
			if l.data.Stock[i].ProductID == id {
				l.data.Stock[i].Quantity = qty
			}
		}
	} else {
		l.data.Stock = append(l.data.Stock, entity.Stock{ProductID: id, Quantity: qty})
	}
	l.stock[id] = qty
	return nil
}

func (l *loader) customer(line int, row []string) error {
	id, err := l.idField(line, row, 0, "id")
	if err != nil {
		return err
	}
	name, err := l.stringField(line, row, 1, "name")
	if err != nil {
		return err
	}
	if _, dup := l.customers[id]; dup {
		return l.fail(line, "id", fmt.Errorf("%w: cliente %d", errDuplicate, id))
	}
	c := entity.Customer{ID: id, Name: name}
	l.customers[id] = c
	l.data.Customers = append(l.data.Customers, c)
	return nil
}

func (l *loader) order(line int, row []string) error {
	id, err := l.idField(line, row, 0, "id")
	if err != nil {
		return err
	}
	if _, dup := l.orderIDs[id]; dup {
		return l.fail(line, "id", fmt.Errorf("%w: pedido %d", errDuplicate, id))
	}
	customerID, err := l.intField(line, row, 1, "customerId")
	if err != nil {
		return err
	}
	customer, ok := l.customers[customerID]
	if !ok {
		return l.fail(line, "customerId", fmt.Errorf("%w: cliente %d", errUnknown, customerID))
	}
	rawDate, err := l.stringField(line, row, 2, "date")
	if err != nil {
		return err
	}
	date, err := entity.ParseDate(rawDate)
	if err != nil {
		return l.fail(line, "date", fmt.Errorf("%w: %q", errBadDate, rawDate))
	}
	rawPending, err := l.stringField(line, row, 3, "pending")
	if err != nil {
		return err
	}
	pending := strings.EqualFold(rawPending, "true")

	quantities := make(map[int]int)
	for i := 4; i < len(row); i++ {
		token := strings.TrimSpace(row[i])
		if token == "" {
			continue
		}
		name := fmt.Sprintf("detail[%d]", i-4)
		productID, qty, err := parseDetail(token)
		if err != nil {
			return l.fail(line, name, err)
		}
		if productID < 1 {
			return l.fail(line, name, fmt.Errorf("productId %w: %d", errNotPositive, productID))
		}
		if qty < 1 {
			return l.fail(line, name, fmt.Errorf("cantidad %w: %d", errNotPositive, qty))
		}
		if _, ok := l.products[productID]; !ok {
			return l.fail(line, name, fmt.Errorf("%w: producto %d", errUnknown, productID))
		}
		quantities[productID] = qty
	}

	if len(quantities) == 0 {
		return l.fail(line, "detail", errNoDetail)
	}

	lines := make([]entity.OrderLine, 0, len(quantities))
	for productID, qty := range quantities {
		lines = append(lines, entity.OrderLine{Product: l.products[productID], Quantity: qty})
	}
	l.orderIDs[id] = struct{}{}
	l.data.Orders = append(l.data.Orders, entity.NewOrder(id, customer, date, lines, pending))
	return nil
}

// parseDetail interpreta "<productId>x<cantidad>", ej. "3x2".
func parseDetail(token string) (int, int, error) {
	idPart, qtyPart, ok := strings.Cut(token, "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errBadToken, token)
	}
	productID, err := strconv.Atoi(idPart)
	if err != nil {
		return 0, 0, fmt.Errorf("productId %w: %q", errNotInteger, idPart)
	}
	qty, err := strconv.Atoi(qtyPart)
	if err != nil {
		return 0, 0, fmt.Errorf("cantidad %w: %q", errNotInteger, qtyPart)
	}
	return productID, qty, nil
}
