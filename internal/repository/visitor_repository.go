package repository

import (
	"context"
	"fmt"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/database"
)

// postgresVisitorRepository stores visit records in the hosted Postgres database
type postgresVisitorRepository struct {
	db *database.PostgresDB
}

// NewVisitorRepository creates a visitor repository backed by the pgx pools
func NewVisitorRepository(db *database.PostgresDB) VisitorRepository {
	return &postgresVisitorRepository{
		db: db,
	}
}

// Create inserts a visit record using the ordinary client
func (r *postgresVisitorRepository) Create(ctx context.Context, record *domain.VisitRecord) error {
	query := `
		INSERT INTO visitors (ip_address, user_agent, country, city, region, latitude, longitude, page_url, visited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		record.IPAddress,
		record.UserAgent,
		record.Country,
		record.City,
		record.Region,
		record.Latitude,
		record.Longitude,
		record.PageURL,
		record.VisitedAt,
	).Scan(&record.ID)

	if err != nil {
		return fmt.Errorf("failed to insert visit record: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent visit records using the admin client
func (r *postgresVisitorRepository) ListRecent(ctx context.Context, limit int) ([]*domain.VisitRecord, error) {
	query := `
		SELECT id, ip_address, user_agent, country, city, region, latitude, longitude, page_url, visited_at
		FROM visitors
		ORDER BY visited_at DESC
		LIMIT $1
	`

	rows, err := r.db.GetAdminPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query visit records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.VisitRecord, 0)
	for rows.Next() {
		record := &domain.VisitRecord{}
		err := rows.Scan(
			&record.ID,
			&record.IPAddress,
			&record.UserAgent,
			&record.Country,
			&record.City,
			&record.Region,
			&record.Latitude,
			&record.Longitude,
			&record.PageURL,
			&record.VisitedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit record row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading visit record rows: %w", err)
	}

	return records, nil
}

func (r *postgresVisitorRepository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}

func (r *postgresVisitorRepository) Close() error {
	r.db.Close()
	return nil
}
