// Package storage opens the repository backend and the optional redis client
// selected by configuration
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/segyhp/propmgmt/internal/config"
	"github.com/segyhp/propmgmt/internal/repository"
	"github.com/segyhp/propmgmt/internal/repository/memory"
	"github.com/segyhp/propmgmt/internal/repository/migrations"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// Backend is an opened repository set. DB is nil for the memory backend.
type Backend struct {
	Driver string
	Repos  *repository.Repositories
	DB     *sqlx.DB
}

// Open connects the configured backend, migrating SQL schemas first when
// auto-migrate is on
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		store := memory.NewStore()
		if cfg.SeedSample {
			store = memory.NewSampleStore()
			logger.Info("seeded memory store with sample portfolio")
		}
		return &Backend{Driver: config.DriverMemory, Repos: memory.NewRepositories(store)}, nil

	case config.DriverPostgres, config.DriverSQLite:
		if cfg.AutoMigrate {
			if err := migrations.Up(cfg.Driver, cfg.URL); err != nil {
				return nil, err
			}
			logger.Info("database migrations applied", slog.String("driver", cfg.Driver))
		}

		db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
		}

		if cfg.Driver == config.DriverSQLite {
			// one writer at a time
			db.SetMaxOpenConns(1)
		} else {
			db.SetMaxOpenConns(maxOpenConns)
			db.SetMaxIdleConns(maxIdleConns)
			db.SetConnMaxLifetime(connMaxLifetime)
		}

		return &Backend{Driver: cfg.Driver, Repos: repository.NewSQLRepositories(db), DB: db}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// OpenRedis returns nil when no redis URL is configured
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
