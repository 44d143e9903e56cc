package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	ReportUC    *usecase.ReportUseCase
	Delivery    DeliveryOpener
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.WarehouseUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.WarehouseUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.WarehouseUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)

	api.Get("/inventory", NewInventoryHandler(deps.WarehouseUC).List)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.Delivery, log)
	reports.Get("/:type", reportHandler.Export)
	reports.Post("/:type/deliveries", reportHandler.Deliver)
	reports.Get("/:type/chart", reportHandler.Chart)
}
