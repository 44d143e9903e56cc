package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/pkg/config"
)

var _ usecase.ReportDelivery = (*Redis)(nil)

// Redis guarda cada reporte bajo <prefix><slug>:<fecha>:<uuid>.<ext> con TTL,
// y actualiza <prefix><slug>:latest:<ext> con la última versión.
type Redis struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	now       func() time.Time
}

// NewRedis conecta y verifica el servidor con PING.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: conectar: %w", err)
	}
	return NewRedisWithClient(client, cfg.KeyPrefix, cfg.TTL), nil
}

// NewRedisWithClient construye la entrega con un cliente existente.
func NewRedisWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *Redis {
	if keyPrefix == "" {
		keyPrefix = "warehouse:report:"
	}
	return &Redis{client: client, keyPrefix: keyPrefix, ttl: ttl, now: time.Now}
}

// Name implementa usecase.ReportDelivery.
func (r *Redis) Name() string { return "redis" }

// LatestKey clave de la última versión entregada de un tipo y formato.
func (r *Redis) LatestKey(reportType report.Type, format report.ExportFormat) string {
	return fmt.Sprintf("%s%s:latest:%s", r.keyPrefix, reportType.Slug(), format.Extension())
}

// Deliver guarda ambas claves en un pipeline transaccional.
func (r *Redis) Deliver(ctx context.Context, reportType report.Type, format report.ExportFormat, content []byte) error {
	key := r.keyPrefix + objectName(reportType, format, r.now())
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, content, r.ttl)
		pipe.Set(ctx, r.LatestKey(reportType, format), content, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: guardar %s: %w", key, err)
	}
	return nil
}

// Close cierra el cliente.
func (r *Redis) Close() error {
	return r.client.Close()
}
