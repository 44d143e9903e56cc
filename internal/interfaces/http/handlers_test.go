package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/internal/infrastructure/export"
	"github.com/jhoicas/warehouse/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse/internal/infrastructure/plot"
	apphttp "github.com/jhoicas/warehouse/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var today = time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

type recordingDelivery struct {
	calls int
	err   error
}

func (d *recordingDelivery) Name() string { return "test" }

func (d *recordingDelivery) Deliver(context.Context, report.Type, report.ExportFormat, []byte) error {
	d.calls++
	return d.err
}

// buildTestApp arma la API sobre repositorios en memoria con:
//   - cliente 1 "Ana"
//   - producto 1 "A" (10) con stock 5
func buildTestApp(t *testing.T, delivery usecase.ReportDelivery) *fiber.App {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: 1, Name: "Ana"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: 1, Name: "A", Price: decimal.NewFromInt(10)}))
	require.NoError(t, repos.Inventory.Upsert(ctx, &entity.Stock{ProductID: 1, Quantity: 5}))

	warehouse := usecase.NewWarehouseUseCase(
		repos.Products, repos.Customers, repos.Inventory, repos.Orders, repos.TxRunner,
		usecase.WithClock(func() time.Time { return today }),
		usecase.WithStockEnforcement(true),
	)
	reports := usecase.NewReportUseCase(warehouse, export.NewFactory("Test"), plot.NewFactory())

	app := fiber.New()
	deps := apphttp.RouterDeps{WarehouseUC: warehouse, ReportUC: reports}
	if delivery != nil {
		deps.Delivery = func(context.Context) (usecase.ReportDelivery, error) { return delivery, nil }
	}
	apphttp.Router(app, deps)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CrearYListar(t *testing.T) {
	app := buildTestApp(t, nil)

	resp, body := do(t, app, http.MethodPost, "/api/products", `{"name":"B","price":25}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var created dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, 2, created.ID)
	assert.True(t, created.Price.Equal(decimal.NewFromInt(25)))

	resp, body = do(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.ProductResponse]
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "A", list.Items[0].Name)
}

func TestProducts_PrecioNegativoEs400(t *testing.T) {
	app := buildTestApp(t, nil)
	resp, body := do(t, app, http.MethodPost, "/api/products", `{"name":"B","price":-1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)
}

func TestProducts_NoEncontradoEs404(t *testing.T) {
	app := buildTestApp(t, nil)
	resp, _ := do(t, app, http.MethodGet, "/api/products/99", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decodeError(t, body).Code)
}

func TestCustomers_ListarYObtener(t *testing.T) {
	app := buildTestApp(t, nil)

	resp, body := do(t, app, http.MethodGet, "/api/customers/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var c dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &c))
	assert.Equal(t, "Ana", c.Name)

	resp, _ = do(t, app, http.MethodGet, "/api/customers", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos e inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_CrearDescuentaStock(t *testing.T) {
	app := buildTestApp(t, nil)

	resp, body := do(t, app, http.MethodPost, "/api/orders", `{"customer_id":1,"items":[{"product_id":1,"quantity":2}]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, "2024-01-01", order.Date)
	assert.False(t, order.Pending)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(20)))

	resp, body = do(t, app, http.MethodGet, "/api/inventory", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stock dto.ListResponse[dto.StockResponse]
	require.NoError(t, json.Unmarshal(body, &stock))
	assert.Equal(t, []dto.StockResponse{{ProductID: 1, Quantity: 3}}, stock.Items)

	resp, _ = do(t, app, http.MethodGet, "/api/orders/1", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOrders_Errores(t *testing.T) {
	app := buildTestApp(t, nil)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"sin líneas", `{"customer_id":1,"items":[]}`, fiber.StatusBadRequest, "VALIDATION"},
		{"sin campo items", `{"customer_id":1}`, fiber.StatusBadRequest, "VALIDATION"},
		{"sin cliente", `{"items":[{"product_id":1,"quantity":1}]}`, fiber.StatusBadRequest, "VALIDATION"},
		{"cliente desconocido", `{"customer_id":9,"items":[{"product_id":1,"quantity":1}]}`, fiber.StatusBadRequest, "VALIDATION"},
		{"cantidad cero", `{"customer_id":1,"items":[{"product_id":1,"quantity":0}]}`, fiber.StatusBadRequest, "VALIDATION"},
		{"producto repetido", `{"customer_id":1,"items":[{"product_id":1,"quantity":1},{"product_id":1,"quantity":1}]}`, fiber.StatusBadRequest, "VALIDATION"},
		{"stock insuficiente", `{"customer_id":1,"items":[{"product_id":1,"quantity":6}]}`, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"cuerpo inválido", `{`, fiber.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, app, http.MethodPost, "/api/orders", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			assert.Equal(t, tc.code, decodeError(t, body).Code)
		})
	}

	resp, body := do(t, app, http.MethodGet, "/api/orders", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.OrderResponse]
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Empty(t, list.Items, "ningún pedido inválido debe quedar registrado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_ExportarCSV(t *testing.T) {
	app := buildTestApp(t, nil)
	do(t, app, http.MethodPost, "/api/orders", `{"customer_id":1,"items":[{"product_id":1,"quantity":2}]}`)

	resp, body := do(t, app, http.MethodGet, "/api/reports/daily-revenue?format=csv", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Date,Total revenue\n2024-01-01,20\n", string(body))
}

func TestReports_TipoYFormatoNoSoportados(t *testing.T) {
	app := buildTestApp(t, nil)

	resp, body := do(t, app, http.MethodGet, "/api/reports/monthly", "")
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, "NOT_IMPLEMENTED", decodeError(t, body).Code)

	resp, _ = do(t, app, http.MethodGet, "/api/reports/daily_revenue?format=xlsx", "")
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
}

func TestReports_Entregar(t *testing.T) {
	d := &recordingDelivery{}
	app := buildTestApp(t, d)

	resp, body := do(t, app, http.MethodPost, "/api/reports/DAILY_REVENUE/deliveries?format=json", "")
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode, string(body))
	var out dto.DeliveryResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "test", out.Delivery)
	assert.Equal(t, "JSON", out.Format)
	assert.Equal(t, 1, d.calls)
}

func TestReports_EntregaFallidaEs502(t *testing.T) {
	app := buildTestApp(t, &recordingDelivery{err: errors.New("broker caído")})

	resp, body := do(t, app, http.MethodPost, "/api/reports/DAILY_REVENUE/deliveries", "")
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "DELIVERY_FAILED", decodeError(t, body).Code)
}

func TestReports_Grafico(t *testing.T) {
	app := buildTestApp(t, nil)
	do(t, app, http.MethodPost, "/api/orders", `{"customer_id":1,"items":[{"product_id":1,"quantity":1}]}`)

	resp, body := do(t, app, http.MethodGet, "/api/reports/DAILY_REVENUE/chart?kind=line", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(body))
	assert.NoError(t, err)

	resp, _ = do(t, app, http.MethodGet, "/api/reports/DAILY_REVENUE/chart?kind=pie", "")
	assert.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
}
