package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza que el descuento de stock y el alta del pedido ocurran juntos o no ocurran.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// ReportExporter renderiza un reporte en un formato concreto.
type ReportExporter interface {
	Export(w io.Writer, r *report.Report) error
}

// ExporterFactory construye el exportador de un formato; formatos desconocidos devuelven domain.ErrUnsupported.
type ExporterFactory interface {
	NewExporter(format report.ExportFormat) (ReportExporter, error)
}

// ChartPlotter dibuja un reporte como imagen PNG.
type ChartPlotter interface {
	Plot(w io.Writer, r *report.Report) error
}

// PlotterFactory construye el graficador para un tipo de reporte y de gráfico.
type PlotterFactory interface {
	NewPlotter(reportType report.Type, chart report.ChartType) (ChartPlotter, error)
}

// ReportDelivery entrega un reporte ya exportado a un destino externo.
type ReportDelivery interface {
	Name() string
	Deliver(ctx context.Context, reportType report.Type, format report.ExportFormat, content []byte) error
}
