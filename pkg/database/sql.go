package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver
)

// IsPostgresURL reports whether url should be served by the pgx pools.
func IsPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// DriverForURL picks the database/sql driver for a non-Postgres URL.
func DriverForURL(url string) string {
	if strings.HasPrefix(url, "libsql://") || strings.HasPrefix(url, "wss://") || strings.HasPrefix(url, "https://") {
		return "libsql"
	}
	return "sqlite"
}

// OpenSQL opens an embedded or Turso-hosted database. The "sqlite:" scheme is
// accepted as an alias and stripped before handing the DSN to the driver.
func OpenSQL(ctx context.Context, url string) (*sql.DB, error) {
	driverName := DriverForURL(url)
	dsn := strings.TrimPrefix(url, "sqlite:")

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}

	if driverName == "sqlite" {
		// An in-memory database lives per connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	return db, nil
}
