package repository

import (
	"context"

	"portfolio-api/internal/domain"
)

// VisitorRepository defines the interface for visit record operations
type VisitorRepository interface {
	// Create inserts a visit record and fills in its ID
	Create(ctx context.Context, record *domain.VisitRecord) error

	// ListRecent returns at most limit records, most recent visit first.
	// Reads go through the privileged client.
	ListRecent(ctx context.Context, limit int) ([]*domain.VisitRecord, error)

	// Health checks the underlying store
	Health(ctx context.Context) error

	// Close releases the underlying connections
	Close() error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Visitor VisitorRepository
}
