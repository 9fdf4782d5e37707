// Package app arma las dependencias (store, servicios, logger, métricas) a
// partir de la configuración.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"animal-facility/internal/adapters/storage/memory"
	"animal-facility/internal/adapters/storage/postgres"
	"animal-facility/internal/adapters/storage/sqlite"
	"animal-facility/internal/config"
	"animal-facility/internal/domain/assignment"
	"animal-facility/internal/domain/facility"
	"animal-facility/internal/domain/registry"
	"animal-facility/internal/domain/schedule"
	"animal-facility/internal/platform/logger"
	"animal-facility/internal/platform/metrics"
)

type App struct {
	Config  *config.Config
	Log     logger.Logger
	Metrics *metrics.Recorder
	Store   facility.Store

	Registry   *registry.Service
	Assignment *assignment.Manager
	Scheduler  *schedule.Scheduler

	closeStore func() error
}

// New abre el store configurado y construye los servicios. logOut nil = stderr.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	log := logger.NewFromConfig(cfg.Log.Level, cfg.Log.Format, logOut)
	rec := metrics.New()

	store, closeStore, err := OpenStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	log.Debug("store ready", map[string]any{"driver": cfg.Storage.Driver})

	return &App{
		Config:     cfg,
		Log:        log,
		Metrics:    rec,
		Store:      store,
		Registry:   registry.NewService(store, registry.Options{Logger: log, Metrics: rec}),
		Assignment: assignment.NewManager(store, assignment.Options{Logger: log, Metrics: rec}),
		Scheduler: schedule.NewScheduler(store, schedule.Options{
			DueSoonDays: &cfg.Schedule.DueSoonDays,
			Logger:      log,
			Metrics:     rec,
		}),
		closeStore: closeStore,
	}, nil
}

// OpenStore elige la implementación de facility.Store según storage.driver.
func OpenStore(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (facility.Store, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), func() error { return nil }, nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.PostgresDSN, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close exporta las métricas (si hay textfile configurado) y cierra el store.
func (a *App) Close() error {
	var errs []error
	if err := a.Metrics.WriteTextfile(a.Config.Metrics.Textfile); err != nil {
		errs = append(errs, fmt.Errorf("write metrics: %w", err))
	}
	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}
