// Package bootstrap arma los casos de uso sobre el backend de almacenamiento configurado.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/warehouse/internal/application/usecase"
	"github.com/jhoicas/warehouse/internal/domain/repository"
	"github.com/jhoicas/warehouse/internal/infrastructure/csvstore"
	"github.com/jhoicas/warehouse/internal/infrastructure/delivery"
	"github.com/jhoicas/warehouse/internal/infrastructure/export"
	"github.com/jhoicas/warehouse/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse/internal/infrastructure/plot"
	"github.com/jhoicas/warehouse/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse/pkg/config"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// App casos de uso listos para la CLI o el servidor HTTP.
type App struct {
	Warehouse  *usecase.WarehouseUseCase
	Reports    *usecase.ReportUseCase
	Deliveries *delivery.Registry

	closers []func() error
}

// Backend repositorios de un backend y su TxRunner.
type Backend struct {
	Repos    repository.Set
	TxRunner usecase.TxRunner
	Close    func() error
}

// New abre el backend y construye la aplicación. Llamar Close al terminar.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	warehouse := usecase.NewWarehouseUseCase(
		backend.Repos.Products,
		backend.Repos.Customers,
		backend.Repos.Inventory,
		backend.Repos.Orders,
		backend.TxRunner,
		usecase.WithStockEnforcement(cfg.Storage.EnforceStock),
	)
	reports := usecase.NewReportUseCase(warehouse, export.NewFactory(cfg.Report.Title), plot.NewFactory())
	deliveries := delivery.NewRegistry(cfg, log.Named("delivery"))

	return &App{
		Warehouse:  warehouse,
		Reports:    reports,
		Deliveries: deliveries,
		closers:    []func() error{deliveries.Close, backend.Close},
	}, nil
}

// Close libera conexiones de entrega y del backend.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenBackend abre memory (datos demo), csv (DATA_DIR) o postgres según STORAGE_BACKEND.
func OpenBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		repos := memory.NewRepositories(memory.NewStore())
		if err := memory.Seed(ctx, repos.Set(), time.Now()); err != nil {
			return nil, fmt.Errorf("sembrar datos demo: %w", err)
		}
		log.Info().Str("backend", "memory").Msg("datos de demostración cargados")
		return &Backend{Repos: repos.Set(), TxRunner: repos.TxRunner, Close: noClose}, nil

	case config.BackendCSV:
		data, err := csvstore.Load(cfg.Storage.DataDir, csvstore.Options{Encoding: cfg.Storage.CSVEncoding})
		if err != nil {
			return nil, err
		}
		repos := memory.NewRepositories(memory.NewStore())
		if err := data.Seed(ctx, repos.Set()); err != nil {
			return nil, err
		}
		log.Info().
			Str("backend", "csv").
			Str("dir", cfg.Storage.DataDir).
			Int("products", len(data.Products)).
			Int("customers", len(data.Customers)).
			Int("orders", len(data.Orders)).
			Msg("datos cargados desde CSV")
		return &Backend{Repos: repos.Set(), TxRunner: repos.TxRunner, Close: noClose}, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		repos := postgres.NewRepositories(pool)
		if err := seedIfEmpty(ctx, repos, log); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("backend", "postgres").Msg("conectado a PostgreSQL")
		return &Backend{
			Repos:    repos.Set(),
			TxRunner: repos.TxRunner,
			Close:    func() error { pool.Close(); return nil },
		}, nil
	}
	return nil, fmt.Errorf("backend de almacenamiento desconocido: %q", cfg.Storage.Backend)
}

// seedIfEmpty carga los datos demo, en una sola transacción, solo si la tabla de productos está vacía.
func seedIfEmpty(ctx context.Context, repos *postgres.Repositories, log *logger.Logger) error {
	seeded, err := repos.TxRunner.SeedIfEmpty(ctx, func(ctx context.Context, set repository.Set) error {
		return memory.Seed(ctx, set, time.Now())
	})
	if err != nil {
		return fmt.Errorf("sembrar datos de demostración: %w", err)
	}
	if seeded {
		log.Info().Msg("base vacía: datos de demostración cargados")
	}
	return nil
}

func noClose() error { return nil }
