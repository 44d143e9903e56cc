package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// menuOption una entrada numerada de menú.
type menuOption struct {
	number int
	label  string
}

// menu opciones numeradas desde 1; la última siempre es "volver" o "salir".
type menu []menuOption

func newMenu(labels ...string) menu {
	m := make(menu, 0, len(labels))
	for i, l := range labels {
		m = append(m, menuOption{number: i + 1, label: l})
	}
	return m
}

const backLabel = "Volver al menú anterior"

var (
	mainMenu = newMenu(
		"Gestionar productos",
		"Gestionar clientes",
		"Gestionar pedidos",
		"Exportar reportes",
		"Gráficos de reportes",
		"Configuración",
		"Salir del programa",
	)
	productMenu  = newMenu("Listar productos", "Agregar producto", "Actualizar producto", "Eliminar producto", backLabel)
	customerMenu = newMenu("Listar clientes", "Agregar cliente", "Actualizar cliente", "Eliminar cliente", backLabel)
	orderMenu    = newMenu("Listar pedidos", "Agregar pedido", "Actualizar pedido", "Eliminar pedido", backLabel)
	reportMenu   = newMenu("Reporte de ingresos diarios", backLabel)
	settingsMenu = newMenu("Configurar entrega de reportes", backLabel)
)

// Opciones del menú principal.
const (
	optProducts = iota + 1
	optCustomers
	optOrders
	optExport
	optCharts
	optSettings
)

// Opciones de los submenús de gestión.
const (
	optList = iota + 1
	optAdd
	optUpdate
	optDelete
)

// errNotANumber la entrada no es un entero.
var errNotANumber = errors.New("Entrada inválida. Ingrese un número.")

// rangeError opción fuera del rango del menú.
type rangeError struct{ first, last int }

func (e rangeError) Error() string {
	return fmt.Sprintf("Opción inválida. Las opciones disponibles son: %d a %d.", e.first, e.last)
}

// parseChoice valida la entrada contra el menú. Devuelve -1 si se eligió la última opción.
func (m menu) parseChoice(line string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errNotANumber
	}
	first, last := m[0].number, m[len(m)-1].number
	if n < first || n > last {
		return 0, rangeError{first, last}
	}
	if n == last {
		return -1, nil
	}
	return n, nil
}
