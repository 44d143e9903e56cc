// Package cli implementa la interfaz interactiva de menús numerados sobre la fachada del almacén.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/pkg/logger"
)

const prompt = "Ingrese una opción y presione ENTER: "

// DeliveryRegistry destinos de entrega seleccionables desde Configuración.
type DeliveryRegistry interface {
	Names() []string
	Open(ctx context.Context, name string) (usecase.ReportDelivery, error)
}

// CLI bucle de menús. No es seguro para uso concurrente.
type CLI struct {
	warehouse  *usecase.WarehouseUseCase
	reports    *usecase.ReportUseCase
	deliveries DeliveryRegistry
	log        *logger.Logger

	in      *bufio.Scanner
	out     io.Writer
	errOut  io.Writer
	tempDir string

	active usecase.ReportDelivery
}

// Option configura la CLI.
type Option func(*CLI)

// WithIO reemplaza entrada, salida y salida de errores (por defecto stdin, stdout y stderr).
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(c *CLI) {
		c.in = bufio.NewScanner(in)
		c.out = out
		c.errOut = errOut
	}
}

// WithTempDir directorio donde se escriben los gráficos (por defecto os.TempDir()).
func WithTempDir(dir string) Option {
	return func(c *CLI) { c.tempDir = dir }
}

// WithLogger logger para eventos internos.
func WithLogger(log *logger.Logger) Option {
	return func(c *CLI) { c.log = log }
}

// WithDelivery destino activo inicial.
func WithDelivery(d usecase.ReportDelivery) Option {
	return func(c *CLI) { c.active = d }
}

// New construye la CLI.
func New(warehouse *usecase.WarehouseUseCase, reports *usecase.ReportUseCase, deliveries DeliveryRegistry, opts ...Option) *CLI {
	c := &CLI{
		warehouse:  warehouse,
		reports:    reports,
		deliveries: deliveries,
		log:        logger.Nop(),
		in:         bufio.NewScanner(os.Stdin),
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run ejecuta el menú principal hasta que el usuario sale o se agota la entrada.
func (c *CLI) Run(ctx context.Context) error {
	for {
		c.display(mainMenu)
		mainChoice, err := c.choose(mainMenu)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if c.report(err) {
				return err
			}
			continue
		}
		if mainChoice == -1 {
			return nil
		}
		if err := c.subMenuLoop(ctx, mainChoice); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (c *CLI) subMenuLoop(ctx context.Context, mainChoice int) error {
	m := subMenu(mainChoice)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.display(m)
		choice, err := c.choose(m)
		if err == nil {
			if choice == -1 {
				return nil
			}
			err = c.action(ctx, mainChoice, choice)
		}
		if err != nil && c.report(err) {
			return err
		}
	}
}

func subMenu(mainChoice int) menu {
	switch mainChoice {
	case optProducts:
		return productMenu
	case optCustomers:
		return customerMenu
	case optOrders:
		return orderMenu
	case optExport, optCharts:
		return reportMenu
	default:
		return settingsMenu
	}
}

// report muestra errores recuperables y devuelve true si el error debe terminar la CLI.
func (c *CLI) report(err error) bool {
	var re rangeError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return true
	case errors.Is(err, errNotANumber), errors.As(err, &re),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrUnsupported),
		errors.Is(err, domain.ErrDelivery):
	default:
		c.log.Error().Err(err).Msg("error inesperado en la CLI")
	}
	fmt.Fprintln(c.errOut, err)
	return false
}

func (c *CLI) display(m menu) {
	for _, o := range m {
		fmt.Fprintf(c.out, "%d.\t%s\n", o.number, o.label)
	}
}

func (c *CLI) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

func (c *CLI) ask(question string) (string, error) {
	fmt.Fprint(c.out, question)
	return c.readLine()
}

func (c *CLI) choose(m menu) (int, error) {
	line, err := c.ask(prompt)
	if err != nil {
		return 0, err
	}
	return m.parseChoice(line)
}

func (c *CLI) askInt(question, field string) (int, error) {
	line, err := c.ask(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %s debe ser un número entero", domain.ErrInvalidInput, field)
	}
	return n, nil
}

func notImplemented(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrUnsupported, what)
}

func (c *CLI) action(ctx context.Context, mainChoice, choice int) error {
	switch mainChoice {
	case optProducts:
		switch choice {
		case optList:
			return c.listProducts(ctx)
		case optAdd:
			return c.addProduct(ctx)
		case optUpdate:
			return notImplemented("actualizar productos")
		default:
			return notImplemented("eliminar productos")
		}
	case optCustomers:
		switch choice {
		case optList:
			return c.listCustomers(ctx)
		case optAdd:
			return notImplemented("agregar clientes")
		case optUpdate:
			return notImplemented("actualizar clientes")
		default:
			return notImplemented("eliminar clientes")
		}
	case optOrders:
		switch choice {
		case optList:
			return c.listOrders(ctx)
		case optAdd:
			return c.addOrder(ctx)
		case optUpdate:
			return notImplemented("actualizar pedidos")
		default:
			return notImplemented("eliminar pedidos")
		}
	case optExport:
		return c.exportReport(ctx, report.TypeDailyRevenue)
	case optCharts:
		return c.plotReport(ctx, report.TypeDailyRevenue)
	default:
		return c.configureDelivery(ctx)
	}
}

// ── Productos, clientes y pedidos ────────────────────────────────────────────

func (c *CLI) listProducts(ctx context.Context) error {
	products, err := c.warehouse.GetProducts(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", p.ID, p.Name, p.Price)
	}
	return tw.Flush()
}

func (c *CLI) addProduct(ctx context.Context) error {
	name, err := c.ask("Ingrese el nombre del producto y presione ENTER: ")
	if err != nil {
		return err
	}
	rawPrice, err := c.ask("Ingrese el precio del producto y presione ENTER: ")
	if err != nil {
		return err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rawPrice))
	if err != nil {
		return fmt.Errorf("%w: el precio del producto debe ser un número entero", domain.ErrInvalidInput)
	}
	p, err := c.warehouse.AddProduct(ctx, name, price)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Producto creado con ID %d.\n", p.ID)
	return nil
}

func (c *CLI) listCustomers(ctx context.Context) error {
	customers, err := c.warehouse.GetCustomers(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, cu := range customers {
		fmt.Fprintf(tw, "%d\t%s\t\n", cu.ID, cu.Name)
	}
	return tw.Flush()
}

func (c *CLI) listOrders(ctx context.Context) error {
	orders, err := c.warehouse.GetOrders(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t(%d)\t%s\t[%s]\t\n",
			o.ID, o.Date.Format(entity.DateLayout), o.Customer.Name, o.Customer.ID, o.TotalPrice(), o.Status())
	}
	return tw.Flush()
}

// addOrder pide cliente y pares producto/cantidad hasta una línea vacía.
// Repetir un producto reemplaza la cantidad anterior.
func (c *CLI) addOrder(ctx context.Context) error {
	customerID, err := c.askInt("Ingrese el ID del cliente y presione ENTER: ", "el ID del cliente")
	if err != nil {
		return err
	}
	quantities := make(map[int]int)
	for {
		rawProduct, err := c.ask("Ingrese el ID del producto (o nada para terminar) y presione ENTER: ")
		if err != nil {
			return err
		}
		if strings.TrimSpace(rawProduct) == "" {
			break
		}
		rawQty, err := c.ask("Ingrese la cantidad (o nada para terminar) y presione ENTER: ")
		if err != nil {
			return err
		}
		if strings.TrimSpace(rawQty) == "" {
			break
		}
		productID, err := strconv.Atoi(strings.TrimSpace(rawProduct))
		if err != nil {
			return fmt.Errorf("%w: el ID del producto debe ser un número entero", domain.ErrInvalidInput)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rawQty))
		if err != nil {
			return fmt.Errorf("%w: la cantidad debe ser un número entero", domain.ErrInvalidInput)
		}
		quantities[productID] = qty
	}
	o, err := c.warehouse.AddOrder(ctx, customerID, quantities)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Pedido %d registrado (total %s).\n", o.ID, o.TotalPrice())
	return nil
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func (c *CLI) exportReport(ctx context.Context, reportType report.Type) error {
	formats := c.reports.Formats()
	labels := make([]string, 0, len(formats)+1)
	for _, f := range formats {
		labels = append(labels, "Exportar a "+string(f))
	}
	m := newMenu(append(labels, backLabel)...)
	c.display(m)
	choice, err := c.choose(m)
	if err != nil || choice == -1 {
		return err
	}
	format := formats[choice-1]

	var content []byte
	if format == report.FormatPDF {
		// Binario: a archivo en lugar de la terminal
		content, err = c.reports.Export(ctx, reportType, format, nil)
		if err != nil {
			return err
		}
		path, err := c.writeTemp("*."+format.Extension(), content)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Reporte creado en: %s\n", path)
	} else {
		content, err = c.reports.Export(ctx, reportType, format, c.out)
		if err != nil {
			return err
		}
	}

	if err := c.reports.Deliver(ctx, c.active, reportType, format, content); err != nil {
		c.log.Warn().Err(err).Msg("entrega de reporte fallida")
		fmt.Fprintln(c.errOut, err)
	}
	return nil
}

func (c *CLI) plotReport(ctx context.Context, reportType report.Type) error {
	charts := c.reports.Charts()
	labels := make([]string, 0, len(charts)+1)
	for _, ch := range charts {
		labels = append(labels, fmt.Sprintf("Crear gráfico %s", ch))
	}
	m := newMenu(append(labels, backLabel)...)
	c.display(m)
	choice, err := c.choose(m)
	if err != nil || choice == -1 {
		return err
	}

	f, err := os.CreateTemp(c.tempDir, "warehouse-*.png")
	if err != nil {
		return fmt.Errorf("crear archivo del gráfico: %w", err)
	}
	defer f.Close()
	if err := c.reports.Plot(ctx, reportType, charts[choice-1], f); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	fmt.Fprintf(c.out, "Gráfico creado en: %s\n", f.Name())
	return nil
}

func (c *CLI) writeTemp(pattern string, content []byte) (string, error) {
	f, err := os.CreateTemp(c.tempDir, "warehouse-"+pattern)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(content); err != nil {
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return f.Name(), nil
}

// ── Configuración ─────────────────────────────────────────────────────────────

func (c *CLI) configureDelivery(ctx context.Context) error {
	if c.deliveries == nil {
		return notImplemented("configurar entrega de reportes")
	}
	names := c.deliveries.Names()
	labels := make([]string, 0, len(names)+1)
	for _, n := range names {
		labels = append(labels, fmt.Sprintf("Cambiar a '%s'", n))
	}
	m := newMenu(append(labels, backLabel)...)
	c.display(m)
	choice, err := c.choose(m)
	if err != nil || choice == -1 {
		return err
	}
	d, err := c.deliveries.Open(ctx, names[choice-1])
	if err != nil {
		return err
	}
	c.active = d
	fmt.Fprintf(c.out, "Seleccionado '%s'.\n", d.Name())
	return nil
}
