package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// DeliveryOpener devuelve el destino de entrega configurado.
type DeliveryOpener func(ctx context.Context) (usecase.ReportDelivery, error)

// ReportHandler exporta, grafica y entrega reportes.
type ReportHandler struct {
	uc       *usecase.ReportUseCase
	delivery DeliveryOpener
	log      *logger.Logger
}

// NewReportHandler construye el handler. Sin opener, las entregas se descartan.
func NewReportHandler(uc *usecase.ReportUseCase, delivery DeliveryOpener, log *logger.Logger) *ReportHandler {
	if delivery == nil {
		delivery = func(context.Context) (usecase.ReportDelivery, error) { return discard{}, nil }
	}
	return &ReportHandler{uc: uc, delivery: delivery, log: log}
}

type discard struct{}

func (discard) Name() string { return "none" }

func (discard) Deliver(context.Context, report.Type, report.ExportFormat, []byte) error { return nil }

// Export godoc
// @Summary      Exportar reporte
// @Tags         reports
// @Produce      plain
// @Param        type    path   string  true   "Tipo de reporte (DAILY_REVENUE)"
// @Param        format  query  string  false  "CSV, TXT, HTML, JSON o PDF"  default(JSON)
// @Success      200
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/reports/{type} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	reportType := report.ParseType(c.Params("type"))
	format := report.ParseExportFormat(c.Query("format", string(report.FormatJSON)))

	content, err := h.uc.Export(c.UserContext(), reportType, format, nil)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(content)
}

// Deliver godoc
// @Summary      Exportar y entregar reporte al destino configurado
// @Tags         reports
// @Produce      json
// @Param        type    path   string  true   "Tipo de reporte (DAILY_REVENUE)"
// @Param        format  query  string  false  "CSV, TXT, HTML, JSON o PDF"  default(CSV)
// @Success      202  {object}  dto.DeliveryResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/{type}/deliveries [post]
func (h *ReportHandler) Deliver(c *fiber.Ctx) error {
	ctx := c.UserContext()
	reportType := report.ParseType(c.Params("type"))
	format := report.ParseExportFormat(c.Query("format", string(report.FormatCSV)))

	content, err := h.uc.Export(ctx, reportType, format, nil)
	if err != nil {
		return writeError(c, err)
	}
	delivery, err := h.delivery(ctx)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Deliver(ctx, delivery, reportType, format, content); err != nil {
		h.log.Error().Err(err).Str("delivery", delivery.Name()).Msg("entrega de reporte fallida")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.DeliveryResponse{
		Delivery: delivery.Name(),
		Type:     string(reportType),
		Format:   string(format),
		Bytes:    len(content),
	})
}

// Chart godoc
// @Summary      Gráfico PNG del reporte
// @Tags         reports
// @Produce      png
// @Param        type  path   string  true   "Tipo de reporte (DAILY_REVENUE)"
// @Param        kind  query  string  false  "BAR o LINE"  default(BAR)
// @Success      200
// @Router       /api/reports/{type}/chart [get]
func (h *ReportHandler) Chart(c *fiber.Ctx) error {
	reportType := report.ParseType(c.Params("type"))
	chart := report.ParseChartType(c.Query("kind", string(report.ChartBar)))

	c.Set(fiber.HeaderContentType, "image/png")
	if err := h.uc.Plot(c.UserContext(), reportType, chart, c.Response().BodyWriter()); err != nil {
		c.Response().ResetBody()
		return writeError(c, err)
	}
	return nil
}
