package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/lottoworks/controller-config/config"
	"go.uber.org/zap"
)

// DB wraps the sqlx connection pool
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// Connect opens a database connection pool using the env-derived config and
// verifies it with a ping. Errors are returned unhandled; callers decide how
// to report them.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// NewDB wraps an existing sqlx handle. Used by tests to inject a mocked
// connection.
func NewDB(db *sqlx.DB, logger *zap.Logger) *DB {
	return &DB{DB: db, logger: logger}
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Check if we can query
	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// Stats returns database connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// EnsureSchema idempotently provisions the controller namespace, the audit
// table, the versioned-config table, and the latest-version lookup index.
// lib/pq runs the multi-statement exec in one implicit transaction, so a
// failure leaves prior state intact and a later run re-applies the DDL.
func (db *DB) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE SCHEMA IF NOT EXISTS controller;

		CREATE TABLE IF NOT EXISTS controller.log (
			id SERIAL PRIMARY KEY,
			action TEXT NOT NULL,
			status TEXT NOT NULL,
			message TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS controller.app_config (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			version INT NOT NULL,
			config JSONB NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now(),
			UNIQUE (name, version)
		);

		CREATE INDEX IF NOT EXISTS idx_app_config_name_version
			ON controller.app_config (name, version DESC);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to provision schema: %w", err)
	}

	db.logger.Info("database schema provisioned")
	return nil
}

// EnsureAuditSchema provisions just the namespace and audit table. The
// best-effort audit recorder runs this on its own short-lived connection so
// a dropped entry can still be written before the main provisioning step.
func (db *DB) EnsureAuditSchema(ctx context.Context) error {
	schema := `
		CREATE SCHEMA IF NOT EXISTS controller;

		CREATE TABLE IF NOT EXISTS controller.log (
			id SERIAL PRIMARY KEY,
			action TEXT NOT NULL,
			status TEXT NOT NULL,
			message TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to provision audit schema: %w", err)
	}
	return nil
}
