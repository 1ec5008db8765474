package database

import (
	"context"
	"fmt"
	"time"

	"forex-gap-tracker/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the PostgreSQL connection pool
type DB struct {
	Pool *pgxpool.Pool
}

// NewDB creates a new database connection
func NewDB(cfg config.DatabaseConfig) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	// Single-shot process: a small pool is plenty
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the database connection
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// RunMigrations executes database migrations
func (db *DB) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS gap_events (
			id UUID PRIMARY KEY,
			detected_at TIMESTAMPTZ NOT NULL,
			pair VARCHAR(10) NOT NULL,
			timeframe VARCHAR(10) NOT NULL,
			gap_pips DECIMAL(12, 2) NOT NULL,
			rsi DECIMAL(6, 2),
			direction VARCHAR(10) NOT NULL,
			suggestion TEXT NOT NULL,
			outcome VARCHAR(12) NOT NULL DEFAULT 'PENDING',
			chart_url TEXT NOT NULL,
			resolved_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_gap_events_outcome ON gap_events(outcome)`,
		`CREATE INDEX IF NOT EXISTS idx_gap_events_pair ON gap_events(pair)`,
		`CREATE INDEX IF NOT EXISTS idx_gap_events_detected_at ON gap_events(detected_at)`,
	}

	for _, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
