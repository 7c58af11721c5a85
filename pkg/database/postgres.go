package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDB holds the two hosted-database clients: Pool uses the ordinary
// credentials and AdminPool the privileged ones.
type PostgresDB struct {
	Pool      *pgxpool.Pool
	AdminPool *pgxpool.Pool
}

// NewPostgresDB creates the connection pools. adminURL may be empty or equal to
// databaseURL, in which case a single pool serves both roles.
func NewPostgresDB(ctx context.Context, databaseURL, adminURL string) (*PostgresDB, error) {
	pool, err := newPool(ctx, databaseURL, 10, 2)
	if err != nil {
		return nil, err
	}

	db := &PostgresDB{Pool: pool}

	if adminURL != "" && adminURL != databaseURL {
		adminPool, err := newPool(ctx, adminURL, 4, 1)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create admin pool: %w", err)
		}
		db.AdminPool = adminPool
	}

	return db, nil
}

func newPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = maxConns
	config.MinConns = minConns
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.HealthCheckPeriod = time.Minute
	config.ConnConfig.ConnectTimeout = time.Second * 5

	// Hosted Postgres sits behind a transaction pooler that rejects prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// GetAdminPool returns the privileged pool, falling back to the ordinary one.
func (db *PostgresDB) GetAdminPool() *pgxpool.Pool {
	if db.AdminPool != nil {
		return db.AdminPool
	}
	return db.Pool
}

// Close closes the database connection pools
func (db *PostgresDB) Close() {
	if db.AdminPool != nil {
		db.AdminPool.Close()
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health checks the database connection
func (db *PostgresDB) Health(ctx context.Context) error {
	if err := db.Pool.Ping(ctx); err != nil {
		return err
	}
	if db.AdminPool != nil {
		return db.AdminPool.Ping(ctx)
	}
	return nil
}
