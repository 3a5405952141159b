package repository

import (
	"context"

	"github.com/Dumorro/e-nvites/internal/domain"
)

// ImportLogRepository defines the interface for import audit records
type ImportLogRepository interface {
	// Create persists one import attempt record
	Create(ctx context.Context, log *domain.ImportLog) error
	// List retrieves import logs newest-first, optionally scoped to an event
	List(ctx context.Context, eventID int64, limit int) ([]*domain.ImportLog, error)
}

// EmailLogRepository defines the interface for email delivery records
type EmailLogRepository interface {
	// Create persists one email attempt record
	Create(ctx context.Context, log *domain.EmailLog) error
	// ListByGuest retrieves email logs for a guest, newest-first
	ListByGuest(ctx context.Context, guestID int64, limit int) ([]*domain.EmailLog, error)
}
