// Package delivery implementa los destinos de entrega de reportes exportados:
// ninguno, directorio local, S3, RabbitMQ y Redis.
package delivery

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/report"
)

var _ usecase.ReportDelivery = (*None)(nil)

// None descarta el reporte. Es la entrega por defecto.
type None struct{}

// Name implementa usecase.ReportDelivery.
func (None) Name() string { return "none" }

// Deliver no hace nada.
func (None) Deliver(context.Context, report.Type, report.ExportFormat, []byte) error { return nil }

// objectName nombre único de un reporte entregado: <slug>/<fecha>/<uuid>.<ext>.
func objectName(reportType report.Type, format report.ExportFormat, now time.Time) string {
	return path.Join(
		reportType.Slug(),
		now.UTC().Format("2006-01-02"),
		fmt.Sprintf("%s.%s", uuid.NewString(), format.Extension()),
	)
}
