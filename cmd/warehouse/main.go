package main

import (
	"context"
	"os"

	"github.com/jhoicas/warehouse/internal/infrastructure/bootstrap"
	"github.com/jhoicas/warehouse/internal/interfaces/cli"
	"github.com/jhoicas/warehouse/pkg/config"
	"github.com/jhoicas/warehouse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	// stdout queda para los menús
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Output: os.Stderr,
	})

	ctx := context.Background()

	wh, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer func() {
		if err := wh.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar recursos")
		}
	}()

	opts := []cli.Option{cli.WithLogger(log.Named("cli"))}
	if d, err := wh.Deliveries.Open(ctx, cfg.Report.Delivery); err != nil {
		log.Warn().Err(err).Str("delivery", cfg.Report.Delivery).Msg("destino de entrega no disponible, se usa 'none'")
	} else {
		opts = append(opts, cli.WithDelivery(d))
	}

	if err := cli.New(wh.Warehouse, wh.Reports, wh.Deliveries, opts...).Run(ctx); err != nil {
		log.Error().Err(err).Msg("cli finalizada con error")
	}
}
