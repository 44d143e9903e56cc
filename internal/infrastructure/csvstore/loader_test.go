package csvstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/infrastructure/csvstore"
	"github.com/jhoicas/warehouse/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var validFiles = map[string]string{
	csvstore.ProductsFile:  "1,Cuaderno,300\n2,Lápiz,50\n\n3,Borrador,70\n",
	csvstore.InventoryFile: "1,40\n2,200\n3,150\n",
	csvstore.CustomersFile: "1,Ana Gómez\n2,Carlos Ruiz\n",
	csvstore.OrdersFile:    "1,1,2024-01-01,false,1x2,2x10\n2,2,2024-01-01,true,3x5\n3,2,2024-01-02,FALSE,2x1\n",
}

// writeFiles escribe los archivos válidos reemplazando los indicados en overrides.
func writeFiles(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range validFiles {
		if o, ok := overrides[name]; ok {
			content = o
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func requireLoadError(t *testing.T, err error, file string, line int, field string) *csvstore.LoadError {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoad)
	var le *csvstore.LoadError
	require.True(t, errors.As(err, &le), "debe ser *LoadError: %v", err)
	assert.Equal(t, file, le.File)
	assert.Equal(t, line, le.Line)
	assert.Equal(t, field, le.Field)
	return le
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga válida
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_ArchivosValidos(t *testing.T) {
	data, err := csvstore.Load(writeFiles(t, nil), csvstore.Options{})
	require.NoError(t, err)

	require.Len(t, data.Products, 3)
	assert.Equal(t, "Lápiz", data.Products[1].Name)
	assert.True(t, data.Products[0].Price.Equal(decimal.NewFromInt(300)))
	assert.Len(t, data.Stock, 3)
	assert.Len(t, data.Customers, 2)

	require.Len(t, data.Orders, 3)
	first := data.Orders[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Ana Gómez", first.Customer.Name)
	assert.Equal(t, map[int]int{1: 2, 2: 10}, first.Quantities())
	assert.True(t, first.TotalPrice().Equal(decimal.NewFromInt(1100)))
	assert.False(t, first.Pending)
	assert.True(t, data.Orders[1].Pending)
	assert.False(t, data.Orders[2].Pending)
}

func TestLoad_Latin1(t *testing.T) {
	// "Lápiz" en ISO-8859-1: á = 0xE1
	dir := writeFiles(t, map[string]string{csvstore.ProductsFile: "1,L\xe1piz,50\n"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvstore.InventoryFile), []byte("1,5\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvstore.OrdersFile), []byte("1,1,2024-01-01,false,1x1\n"), 0o644))

	data, err := csvstore.Load(dir, csvstore.Options{Encoding: "latin1"})
	require.NoError(t, err)
	assert.Equal(t, "Lápiz", data.Products[0].Name)
}

func TestLoad_DescartaBOM(t *testing.T) {
	dir := writeFiles(t, map[string]string{csvstore.CustomersFile: "\ufeff1,Ana Gómez\n2,Carlos Ruiz\n"})
	data, err := csvstore.Load(dir, csvstore.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, data.Customers[0].ID)
}

func TestSeed_PueblaRepositoriosConservandoIDs(t *testing.T) {
	data, err := csvstore.Load(writeFiles(t, nil), csvstore.Options{})
	require.NoError(t, err)

	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	require.NoError(t, data.Seed(ctx, repos.Set()))

	p, err := repos.Products.GetByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Borrador", p.Name)

	st, err := repos.Inventory.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 200, st.Quantity)

	orders, err := repos.Orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de carga
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_Errores(t *testing.T) {
	cases := []struct {
		name      string
		overrides map[string]string
		file      string
		line      int
		field     string
	}{
		{"precio no entero", map[string]string{csvstore.ProductsFile: "1,A,10\n2,B,diez\n"}, csvstore.ProductsFile, 2, "price"},
		{"id de producto duplicado", map[string]string{csvstore.ProductsFile: "1,A,10\n1,B,20\n"}, csvstore.ProductsFile, 2, "id"},
		{"nombre faltante", map[string]string{csvstore.ProductsFile: "1\n"}, csvstore.ProductsFile, 1, "name"},
		{"stock de producto desconocido", map[string]string{csvstore.InventoryFile: "9,1\n"}, csvstore.InventoryFile, 1, "productId"},
		{"cantidad de stock inválida", map[string]string{csvstore.InventoryFile: "1,x\n"}, csvstore.InventoryFile, 1, "quantity"},
		{"cliente duplicado", map[string]string{csvstore.CustomersFile: "1,A\n1,B\n"}, csvstore.CustomersFile, 2, "id"},
		{"cliente desconocido en pedido", map[string]string{csvstore.OrdersFile: "1,7,2024-01-01,false,1x1\n"}, csvstore.OrdersFile, 1, "customerId"},
		{"fecha inválida", map[string]string{csvstore.OrdersFile: "1,1,01/01/2024,false,1x1\n"}, csvstore.OrdersFile, 1, "date"},
		{"producto desconocido en pedido", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false,1x1,8x2\n"}, csvstore.OrdersFile, 1, "detail[1]"},
		{"detalle sin x", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false,12\n"}, csvstore.OrdersFile, 1, "detail[0]"},
		{"cantidad no entera en detalle", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false,1xdos\n"}, csvstore.OrdersFile, 1, "detail[0]"},
		{"pedido duplicado", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false,1x1\n1,1,2024-01-02,false,1x1\n"}, csvstore.OrdersFile, 2, "id"},
		{"precio negativo", map[string]string{csvstore.ProductsFile: "1,Neg,-10\n"}, csvstore.ProductsFile, 1, "price"},
		{"cantidad cero en detalle", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false,1x0\n"}, csvstore.OrdersFile, 1, "detail[0]"},
		{"cantidad negativa en detalle", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false,1x1,2x-3\n"}, csvstore.OrdersFile, 1, "detail[1]"},
		{"pedido sin detalle", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false\n"}, csvstore.OrdersFile, 1, "detail"},
		{"pedido con detalle vacío", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false,,\n"}, csvstore.OrdersFile, 1, "detail"},
		{"id de producto cero", map[string]string{csvstore.ProductsFile: "0,Zero,10\n1,One,5\n"}, csvstore.ProductsFile, 1, "id"},
		{"productId cero en stock", map[string]string{csvstore.InventoryFile: "1,5\n0,3\n"}, csvstore.InventoryFile, 2, "productId"},
		{"id de cliente negativo", map[string]string{csvstore.CustomersFile: "-1,Ana\n"}, csvstore.CustomersFile, 1, "id"},
		{"id de pedido cero", map[string]string{csvstore.OrdersFile: "0,1,2024-01-01,false,1x1\n"}, csvstore.OrdersFile, 1, "id"},
		{"productId cero en detalle", map[string]string{csvstore.OrdersFile: "1,1,2024-01-01,false,0x2\n"}, csvstore.OrdersFile, 1, "detail[0]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := csvstore.Load(writeFiles(t, tc.overrides), csvstore.Options{})
			assert.Nil(t, data, "no debe devolver datos parciales")
			requireLoadError(t, err, tc.file, tc.line, tc.field)
		})
	}
}

func TestLoad_ArchivoFaltante(t *testing.T) {
	dir := writeFiles(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, csvstore.OrdersFile)))

	_, err := csvstore.Load(dir, csvstore.Options{})
	le := requireLoadError(t, err, csvstore.OrdersFile, 0, "")
	assert.ErrorIs(t, le, os.ErrNotExist)
}

func TestLoad_CodificacionDesconocida(t *testing.T) {
	_, err := csvstore.Load(writeFiles(t, nil), csvstore.Options{Encoding: "utf-16"})
	assert.ErrorIs(t, err, domain.ErrLoad)
}
