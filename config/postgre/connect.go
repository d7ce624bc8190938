package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"report-runtime/config"
	"report-runtime/config/conn"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	defaultConnectTimeout  = 5 * time.Second
	defaultMaxIdleConns    = 4
	defaultMaxOpenConns    = 16
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

var db conn.Singleton[*sql.DB]

// DSN builds the lib/pq connection string for cfg.
func DSN(cfg config.PostgresConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	searchPath := cfg.Schema
	if searchPath == "" {
		searchPath = "public"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode, searchPath)
}

// Connect opens the saved-state database once. A failed attempt may be retried.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	return db.Connect(func() (*sql.DB, error) {
		connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
		defer cancel()

		d, err := sql.Open("postgres", DSN(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
		}
		d.SetMaxIdleConns(defaultMaxIdleConns)
		d.SetMaxOpenConns(defaultMaxOpenConns)
		d.SetConnMaxLifetime(defaultConnMaxLifetime)
		d.SetConnMaxIdleTime(defaultConnMaxIdleTime)

		if err := d.PingContext(connectCtx); err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
		}
		return d, nil
	})
}

// Disconnect closes the connection and allows a later Connect.
func Disconnect() error {
	return db.Close(func(d *sql.DB) error { return d.Close() })
}
