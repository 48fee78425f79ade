package main

import (
	"context"
	"fmt"
	"log/slog"

	"nhplus/internal/archive"
	"nhplus/internal/auth/lockout"
	"nhplus/internal/auth/login"
	"nhplus/internal/platform/config"
	"nhplus/internal/platform/database"
	"nhplus/internal/platform/logger"
	"nhplus/internal/platform/metrics"
	"nhplus/internal/records/service"
	"nhplus/internal/records/store/caregiver"
	"nhplus/internal/records/store/medicine"
	"nhplus/internal/records/store/patient"
	"nhplus/internal/records/store/treatment"
	"nhplus/internal/records/store/user"
)

type stores struct {
	patients   patient.Store
	caregivers caregiver.Store
	treatments treatment.Store
	medicines  medicine.Store
	users      user.Store
}

// app holds everything one command invocation needs.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	db      *database.DB
	stores  stores
	records *service.Service
	archive *archive.Service
	login   *login.Service
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger.New(cfg.Log),
		metrics: metrics.New(),
	}

	if cfg.Database.Driver == config.DriverMemory {
		a.stores = stores{
			patients:   patient.NewInMemory(),
			caregivers: caregiver.NewInMemory(),
			treatments: treatment.NewInMemory(),
			medicines:  medicine.NewInMemory(),
			users:      user.NewInMemory(),
		}
	} else {
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.stores = stores{
			patients:   patient.NewSQL(db),
			caregivers: caregiver.NewSQL(db),
			treatments: treatment.NewSQL(db),
			medicines:  medicine.NewSQL(db),
			users:      user.NewSQL(db),
		}
	}

	var err error
	a.records, err = service.New(service.Stores{
		Patients:   a.stores.patients,
		Caregivers: a.stores.caregivers,
		Treatments: a.stores.treatments,
		Medicines:  a.stores.medicines,
		Users:      a.stores.users,
	}, service.WithLogger(a.logger))
	if err != nil {
		return nil, a.fail(err)
	}

	a.archive, err = archive.New(a.stores.patients, a.stores.caregivers, a.stores.treatments,
		archive.WithLogger(a.logger),
		archive.WithMetrics(a.metrics),
		archive.WithRetentionYears(cfg.Retention.Years),
	)
	if err != nil {
		return nil, a.fail(err)
	}

	a.login, err = login.New(a.stores.users,
		login.WithLogger(a.logger),
		login.WithMetrics(a.metrics),
		login.WithLockoutConfig(lockout.Config{
			MaxAttempts:    cfg.Lockout.MaxAttempts,
			Duration:       cfg.Lockout.Duration,
			ResetOnSuccess: cfg.Lockout.ResetOnSuccess,
		}),
	)
	if err != nil {
		return nil, a.fail(err)
	}
	return a, nil
}

// migrate brings the schema up to date. The memory backend has no schema.
func (a *app) migrate() (int, error) {
	if a.db == nil {
		return 0, nil
	}
	return a.db.Migrate()
}

// close stops timers, leaves the metrics textfile behind and releases the
// database.
func (a *app) close() error {
	if a.login != nil {
		a.login.Close()
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
		a.logger.Warn("failed to write metrics textfile", "path", a.cfg.Metrics.TextfilePath, "error", err)
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *app) fail(err error) error {
	if a.db != nil {
		_ = a.db.Close()
	}
	return fmt.Errorf("wire services: %w", err)
}
