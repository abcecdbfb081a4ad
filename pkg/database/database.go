// Package database provides PostgreSQL connection management with lifecycle coordination.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/palette/pkg/lifecycle"
)

var (
	// ErrNotReady indicates the database could not be reached at startup.
	ErrNotReady = errors.New("database not ready")
	// ErrSchemaMissing indicates required tables are absent; migrations have not run.
	ErrSchemaMissing = errors.New("database schema missing")
)

// MigrateHint tells the operator how to create a missing schema.
const MigrateHint = "run: migrate up"

// System manages the connection pool and its lifecycle hooks.
type System interface {
	// Connection returns the underlying database connection pool.
	Connection() *sql.DB
	// Start registers a ping and schema check on startup and pool close on shutdown.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	tables      []string
	logger      *slog.Logger
	connTimeout time.Duration
}

// New opens a pgx-backed pool. No connection is made until Start runs its
// checks. tables lists the schema-qualified tables the startup check requires.
func New(cfg *Config, logger *slog.Logger, tables ...string) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		tables:      tables,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup("database", func(ctx context.Context) error {
		checkCtx, cancel := context.WithTimeout(ctx, d.connTimeout)
		defer cancel()

		if err := d.conn.PingContext(checkCtx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return fmt.Errorf("%w: %w", ErrNotReady, err)
		}

		missing, err := d.missingTables(checkCtx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotReady, err)
		}
		if len(missing) > 0 {
			d.logger.Error("database schema incomplete", "missing", missing)
			return fmt.Errorf("%w: %s (%s)", ErrSchemaMissing, strings.Join(missing, ", "), MigrateHint)
		}

		d.logger.Debug("database connection established", "tables", len(d.tables))
		return nil
	})

	lc.OnShutdown(func() {
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
		}
	})

	return nil
}

func (d *database) missingTables(ctx context.Context) ([]string, error) {
	var missing []string
	for _, t := range d.tables {
		var exists bool
		if err := d.conn.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", t).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check table %s: %w", t, err)
		}
		if !exists {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
