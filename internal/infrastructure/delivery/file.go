package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/report"
)

var _ usecase.ReportDelivery = (*File)(nil)

// File escribe cada reporte como archivo bajo Dir.
type File struct {
	Dir string
	now func() time.Time
}

// NewFile construye la entrega a directorio local.
func NewFile(dir string) *File {
	return &File{Dir: dir, now: time.Now}
}

// Name implementa usecase.ReportDelivery.
func (f *File) Name() string { return "file" }

// Deliver escribe el contenido en Dir/<slug>/<fecha>/<uuid>.<ext>.
func (f *File) Deliver(ctx context.Context, reportType report.Type, format report.ExportFormat, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := filepath.Join(f.Dir, filepath.FromSlash(objectName(reportType, format, f.now())))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("crear directorio de reportes: %w", err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("escribir reporte: %w", err)
	}
	return nil
}
