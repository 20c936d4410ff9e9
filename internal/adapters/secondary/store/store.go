// Package store opens the catalogue repository selected by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"ecm-catalogue-service/internal/adapters/secondary/memory"
	"ecm-catalogue-service/internal/adapters/secondary/postgres"
	"ecm-catalogue-service/internal/adapters/secondary/sqlite"
	"ecm-catalogue-service/internal/config"
	ports "ecm-catalogue-service/internal/core/ports/output"
)

// Store is an open catalogue repository plus the hooks the server needs for
// health checks and shutdown.
type Store struct {
	Repo  ports.CatalogueRepository
	Ping  func(ctx context.Context) error
	Close func()
}

func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Database)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg.Store.SQLitePath)
	case config.DriverMemory, "":
		log.Info("using in-memory catalogue store")
		return &Store{
			Repo:  memory.NewCatalogueRepository(),
			Ping:  func(context.Context) error { return nil },
			Close: func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func openPostgres(ctx context.Context, db config.DatabaseConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(db.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(db.MaxOpenConns)
	poolCfg.MinConns = int32(db.MaxIdleConns)
	poolCfg.MaxConnLifetime = db.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.WithFields(log.Fields{"host": db.Host, "database": db.Name}).Info("postgres catalogue store ready")

	return &Store{
		Repo:  postgres.NewCatalogueRepository(pool),
		Ping:  pool.Ping,
		Close: pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	log.WithField("path", path).Info("sqlite catalogue store ready")

	return &Store{
		Repo: sqlite.NewCatalogueRepository(db),
		Ping: db.PingContext,
		Close: func() {
			if err := db.Close(); err != nil {
				log.WithError(err).Warn("close sqlite catalogue store")
			}
		},
	}, nil
}
