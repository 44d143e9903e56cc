package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/report"
)

// ReportGenerator fuente de reportes (normalmente WarehouseUseCase).
type ReportGenerator interface {
	GenerateReport(ctx context.Context, reportType report.Type) (*report.Report, error)
}

// ReportUseCase exporta, grafica y entrega reportes generados por la fachada.
type ReportUseCase struct {
	generator ReportGenerator
	exporters ExporterFactory
	plotters  PlotterFactory
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(generator ReportGenerator, exporters ExporterFactory, plotters PlotterFactory) *ReportUseCase {
	return &ReportUseCase{generator: generator, exporters: exporters, plotters: plotters}
}

// Export genera el reporte, lo renderiza en el formato pedido y lo escribe en w.
// Devuelve el contenido exportado para poder entregarlo después.
func (uc *ReportUseCase) Export(ctx context.Context, reportType report.Type, format report.ExportFormat, w io.Writer) ([]byte, error) {
	exporter, err := uc.exporters.NewExporter(format)
	if err != nil {
		return nil, err
	}
	r, err := uc.generator.GenerateReport(ctx, reportType)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := exporter.Export(&buf, r); err != nil {
		return nil, fmt.Errorf("exportar reporte %s a %s: %w", reportType, format, err)
	}
	if w != nil {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return nil, fmt.Errorf("escribir reporte: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// Deliver entrega un reporte ya exportado. Los fallos se envuelven en domain.ErrDelivery
// y no afectan el estado del almacén.
func (uc *ReportUseCase) Deliver(
	ctx context.Context,
	delivery ReportDelivery,
	reportType report.Type,
	format report.ExportFormat,
	content []byte,
) error {
	if delivery == nil {
		return nil
	}
	if err := delivery.Deliver(ctx, reportType, format, content); err != nil {
		return fmt.Errorf("%w: '%s': %v", domain.ErrDelivery, delivery.Name(), err)
	}
	return nil
}

// Plot genera el reporte y lo dibuja como PNG en w.
func (uc *ReportUseCase) Plot(ctx context.Context, reportType report.Type, chart report.ChartType, w io.Writer) error {
	plotter, err := uc.plotters.NewPlotter(reportType, chart)
	if err != nil {
		return err
	}
	r, err := uc.generator.GenerateReport(ctx, reportType)
	if err != nil {
		return err
	}
	if err := plotter.Plot(w, r); err != nil {
		return fmt.Errorf("graficar reporte %s: %w", reportType, err)
	}
	return nil
}

// Formats formatos de exportación disponibles, en orden de menú.
func (uc *ReportUseCase) Formats() []report.ExportFormat {
	return append([]report.ExportFormat(nil), report.ExportFormats...)
}

// Charts tipos de gráfico disponibles, en orden de menú.
func (uc *ReportUseCase) Charts() []report.ChartType {
	return append([]report.ChartType(nil), report.ChartTypes...)
}
