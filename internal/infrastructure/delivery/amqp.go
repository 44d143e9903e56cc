package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/pkg/config"
	"github.com/jhoicas/warehouse/pkg/logger"
)

var _ usecase.ReportDelivery = (*AMQP)(nil)

const exchangeType = "topic"

// Publisher subconjunto de *amqp.Channel usado por la entrega.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQP publica cada reporte en un exchange topic con routing key report.<tipo>.<formato>.
type AMQP struct {
	ch       Publisher
	exchange string
	closeFn  func() error
	now      func() time.Time
}

// DialAMQP conecta al broker con reintentos y declara el exchange.
func DialAMQP(cfg config.AMQPConfig, log *logger.Logger) (*AMQP, error) {
	conn, ch, err := setupConn(cfg, log)
	if err != nil {
		return nil, err
	}
	d := NewAMQPWithChannel(ch, cfg.Exchange)
	d.closeFn = func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return d, nil
}

// NewAMQPWithChannel construye la entrega sobre un canal existente.
func NewAMQPWithChannel(ch Publisher, exchange string) *AMQP {
	return &AMQP{ch: ch, exchange: exchange, now: time.Now}
}

func setupConn(cfg config.AMQPConfig, log *logger.Logger) (*amqp.Connection, *amqp.Channel, error) {
	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	var conn *amqp.Connection
	var err error
	for i := 0; i < retries; i++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("no se pudo conectar a RabbitMQ")
		if i < retries-1 {
			time.Sleep(cfg.RetryDelay)
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("amqp: conectar: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp: abrir canal: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		exchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp: declarar exchange: %w", err)
	}
	return conn, ch, nil
}

// Name implementa usecase.ReportDelivery.
func (a *AMQP) Name() string { return "amqp" }

// RoutingKey report.<slug>.<extensión>, ej. report.daily-revenue.csv.
func RoutingKey(reportType report.Type, format report.ExportFormat) string {
	return strings.Join([]string{"report", reportType.Slug(), format.Extension()}, ".")
}

// Deliver publica el contenido como mensaje persistente.
func (a *AMQP) Deliver(ctx context.Context, reportType report.Type, format report.ExportFormat, content []byte) error {
	err := a.ch.PublishWithContext(ctx,
		a.exchange,                     // exchange
		RoutingKey(reportType, format), // routing key
		false,                          // mandatory
		false,                          // immediate
		amqp.Publishing{
			ContentType:  format.ContentType(),
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    a.now(),
			Type:         string(reportType),
			Body:         content,
		},
	)
	if err != nil {
		return fmt.Errorf("amqp: publicar: %w", err)
	}
	return nil
}

// Close cierra canal y conexión si fueron abiertos por DialAMQP.
func (a *AMQP) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}
