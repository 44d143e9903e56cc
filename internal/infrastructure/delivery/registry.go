package delivery

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/pkg/config"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// Names destinos disponibles, en el orden del menú de configuración.
var Names = []string{
	config.DeliveryNone,
	config.DeliveryFile,
	config.DeliveryS3,
	config.DeliveryAMQP,
	config.DeliveryRedis,
}

// Registry abre destinos por nombre bajo demanda y los reutiliza.
// Las conexiones externas (S3, RabbitMQ, Redis) solo se abren al elegirlas.
type Registry struct {
	cfg *config.Config
	log *logger.Logger

	mu     sync.Mutex
	opened map[string]usecase.ReportDelivery
}

// NewRegistry construye el registro a partir de la configuración.
func NewRegistry(cfg *config.Config, log *logger.Logger) *Registry {
	return &Registry{cfg: cfg, log: log, opened: make(map[string]usecase.ReportDelivery)}
}

// Names destinos disponibles.
func (r *Registry) Names() []string {
	return append([]string(nil), Names...)
}

// Open devuelve el destino con ese nombre, abriéndolo si hace falta.
func (r *Registry) Open(ctx context.Context, name string) (usecase.ReportDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.opened[name]; ok {
		return d, nil
	}
	var (
		d   usecase.ReportDelivery
		err error
	)
	switch name {
	case config.DeliveryNone:
		d = None{}
	case config.DeliveryFile:
		d = NewFile(r.cfg.Report.Dir)
	case config.DeliveryS3:
		d, err = NewS3(ctx, r.cfg.S3)
	case config.DeliveryAMQP:
		d, err = DialAMQP(r.cfg.AMQP, r.log)
	case config.DeliveryRedis:
		d, err = NewRedis(ctx, r.cfg.Redis)
	default:
		return nil, fmt.Errorf("%w: destino de entrega %q", domain.ErrUnsupported, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", domain.ErrDelivery, name, err)
	}
	r.log.Info().Str("delivery", name).Msg("destino de entrega listo")
	r.opened[name] = d
	return d, nil
}

// Close cierra todas las conexiones abiertas.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first error
	for name, d := range r.opened {
		if c, ok := d.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = fmt.Errorf("cerrar destino %s: %w", name, err)
			}
		}
		delete(r.opened, name)
	}
	return first
}
