package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio-api/internal/domain"
)

// visitedAtLayout sorts lexically in time order and keeps the RFC3339 date prefix.
const visitedAtLayout = "2006-01-02T15:04:05.000000Z"

// sqlVisitorRepository stores visit records in SQLite or Turso through database/sql
type sqlVisitorRepository struct {
	db      *sql.DB
	adminDB *sql.DB
}

// NewSQLVisitorRepository creates the visitors table on both handles if needed.
// adminDB may be nil, in which case db serves reads too.
func NewSQLVisitorRepository(ctx context.Context, db, adminDB *sql.DB) (VisitorRepository, error) {
	if adminDB == nil {
		adminDB = db
	}

	if err := bootstrap(ctx, db); err != nil {
		return nil, err
	}
	if adminDB != db {
		if err := bootstrap(ctx, adminDB); err != nil {
			return nil, fmt.Errorf("admin database: %w", err)
		}
	}

	return &sqlVisitorRepository{db: db, adminDB: adminDB}, nil
}

func bootstrap(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ip_address TEXT NOT NULL,
		user_agent TEXT NOT NULL DEFAULT '',
		country TEXT,
		city TEXT,
		region TEXT,
		latitude REAL,
		longitude REAL,
		page_url TEXT NOT NULL DEFAULT '/',
		visited_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_visitors_visited_at ON visitors(visited_at);
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create visitors table: %w", err)
	}
	return nil
}

func (r *sqlVisitorRepository) Create(ctx context.Context, record *domain.VisitRecord) error {
	query := `INSERT INTO visitors (ip_address, user_agent, country, city, region, latitude, longitude, page_url, visited_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		record.IPAddress,
		record.UserAgent,
		nullString(record.Country),
		nullString(record.City),
		nullString(record.Region),
		nullFloat(record.Latitude),
		nullFloat(record.Longitude),
		record.PageURL,
		record.VisitedAt.UTC().Format(visitedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert visit record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read visit record id: %w", err)
	}
	record.ID = id
	return nil
}

func (r *sqlVisitorRepository) ListRecent(ctx context.Context, limit int) ([]*domain.VisitRecord, error) {
	query := `SELECT id, ip_address, user_agent, country, city, region, latitude, longitude, page_url, visited_at
			  FROM visitors ORDER BY visited_at DESC, id DESC LIMIT ?`

	rows, err := r.adminDB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query visit records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.VisitRecord, 0)
	for rows.Next() {
		var (
			record                domain.VisitRecord
			country, city, region sql.NullString
			latitude, longitude   sql.NullFloat64
			visitedAt             string
		)

		if err := rows.Scan(
			&record.ID, &record.IPAddress, &record.UserAgent,
			&country, &city, &region, &latitude, &longitude,
			&record.PageURL, &visitedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan visit record row: %w", err)
		}

		record.VisitedAt, err = time.Parse(visitedAtLayout, visitedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse visited_at %q: %w", visitedAt, err)
		}
		if country.Valid {
			record.Country = &country.String
		}
		if city.Valid {
			record.City = &city.String
		}
		if region.Valid {
			record.Region = &region.String
		}
		if latitude.Valid {
			record.Latitude = &latitude.Float64
		}
		if longitude.Valid {
			record.Longitude = &longitude.Float64
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading visit record rows: %w", err)
	}

	return records, nil
}

func (r *sqlVisitorRepository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return err
	}
	if r.adminDB != r.db {
		return r.adminDB.PingContext(ctx)
	}
	return nil
}

func (r *sqlVisitorRepository) Close() error {
	if r.adminDB != r.db {
		r.adminDB.Close()
	}
	return r.db.Close()
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}
