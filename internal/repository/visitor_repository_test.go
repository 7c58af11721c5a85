package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPostgresRepository needs a disposable database in TEST_DATABASE_URL.
func setupPostgresRepository(t *testing.T) VisitorRepository {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, url, "")
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS visitors (
			id BIGSERIAL PRIMARY KEY,
			ip_address TEXT NOT NULL,
			user_agent TEXT NOT NULL DEFAULT '',
			country TEXT,
			city TEXT,
			region TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			page_url TEXT NOT NULL DEFAULT '/',
			visited_at TIMESTAMPTZ NOT NULL
		)`)
	require.NoError(t, err)
	_, err = db.Pool.Exec(ctx, `TRUNCATE visitors`)
	require.NoError(t, err)

	repo := NewVisitorRepository(db)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestPostgresVisitorRepository_CreateAndListRecent(t *testing.T) {
	repo := setupPostgresRepository(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, ip := range []string{"203.0.113.7", "198.51.100.1"} {
		record := &domain.VisitRecord{
			IPAddress: ip,
			UserAgent: "test-agent",
			Country:   strPtr("TH"),
			Latitude:  floatPtr(13.75),
			PageURL:   "/",
			VisitedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, record))
		assert.NotZero(t, record.ID)
	}

	records, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "198.51.100.1", records[0].IPAddress)
	assert.Nil(t, records[0].City)
	assert.Equal(t, 13.75, *records[0].Latitude)
}
