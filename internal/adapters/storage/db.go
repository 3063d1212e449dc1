// Package storage persists favorite quotes through gorm, on sqlite for local
// runs and postgres in deployed environments.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

// checkerName is the readiness check name of the store.
const checkerName = "favorites-store"

// DB owns the gorm connection pool.
type DB struct {
	gorm   *gorm.DB
	driver string
	logger *slog.Logger
}

// Open connects to the configured database, applies pool settings, pings it
// and, when enabled, migrates the schema.
func Open(ctx context.Context, cfg *config.StoreConfig, logger *slog.Logger) (*DB, error) {
	if cfg == nil {
		return nil, errors.New("store config is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(logger.With(slog.String("component", "gorm"))),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if isMemorySQLite(cfg) {
		// Every connection to :memory: is a separate database.
		maxOpen = 1
	}

	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 && !isMemorySQLite(cfg) {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.ConnMaxIdleTime > 0 && !isMemorySQLite(cfg) {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	db := &DB{gorm: gdb, driver: cfg.Driver, logger: logger}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s store: %w", cfg.Driver, err)
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	logger.Info("favorites store connected",
		slog.String("driver", cfg.Driver),
		slog.Int("max_open_conns", maxOpen),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Bool("auto_migrate", cfg.AutoMigrate),
	)

	return db, nil
}

func dialectorFor(cfg *config.StoreConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.StoreDriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	case config.StoreDriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func isMemorySQLite(cfg *config.StoreConfig) bool {
	return cfg.Driver == config.StoreDriverSQLite && strings.Contains(cfg.DSN, ":memory:")
}

// Migrate creates or updates the favorites table and its index.
func (db *DB) Migrate(ctx context.Context) error {
	if err := db.gorm.WithContext(ctx).AutoMigrate(&favoriteRow{}); err != nil {
		return fmt.Errorf("migrating favorites schema: %w", err)
	}

	db.logger.Info("favorites schema migrated", slog.String("driver", db.driver))

	return nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("closing %s store: %w", db.driver, err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (db *DB) Name() string {
	return checkerName
}

// Check implements ports.HealthChecker by pinging the database.
func (db *DB) Check(ctx context.Context) error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
