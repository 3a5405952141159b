package repository

import (
	"context"

	"github.com/Dumorro/e-nvites/internal/domain"
)

// EventRepository defines the interface for event data access. Events are
// read-only at runtime.
type EventRepository interface {
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	// GetActiveBySlug retrieves an active event by slug
	GetActiveBySlug(ctx context.Context, slug string) (*domain.Event, error)
	// ListActive retrieves all active events ordered by event date
	ListActive(ctx context.Context) ([]*domain.Event, error)
}
