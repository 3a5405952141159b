package repository

import (
	"context"

	"github.com/Dumorro/e-nvites/internal/domain"
)

// GuestFilter holds the optional filters for guest listing. A zero value
// means no filtering. Limit 0 means unlimited (export mode).
type GuestFilter struct {
	Status  domain.GuestStatus
	EventID int64
	Search  string
	Limit   int
}

// StatsFilter scopes the aggregate counts. Only the event filter applies;
// status and search are display filters and deliberately do not narrow the
// statistics.
type StatsFilter struct {
	EventID int64
}

// GuestRepository defines the interface for guest data access
type GuestRepository interface {
	// GetByGUID retrieves a guest by its invitation GUID
	GetByGUID(ctx context.Context, guid string) (*domain.Guest, error)
	// GetByID retrieves a guest by ID
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	// GetByEmailAndEvent retrieves a guest by lowercased email within an event
	GetByEmailAndEvent(ctx context.Context, email string, eventID int64) (*domain.Guest, error)
	// GetByQRCodeAndEvent retrieves a guest by invite code within an event
	GetByQRCodeAndEvent(ctx context.Context, qrCode string, eventID int64) (*domain.Guest, error)
	// List retrieves guests newest-first with optional filters
	List(ctx context.Context, filter GuestFilter) ([]*domain.Guest, error)
	// Stats computes aggregate RSVP counts independently of any page limit
	Stats(ctx context.Context, filter StatsFilter) (*domain.GuestStats, error)
	// UpdateStatus sets the RSVP status of the guest with the given GUID and
	// returns the updated guest, or (nil, nil) when the GUID is unknown
	UpdateStatus(ctx context.Context, guid string, status domain.GuestStatus) (*domain.Guest, error)
	// UpdateStatusByID sets the RSVP status of a guest by primary key
	UpdateStatusByID(ctx context.Context, id int64, status domain.GuestStatus) (*domain.Guest, error)
	// UpdateInviteImage stores the base64 invite image data URI on a guest
	UpdateInviteImage(ctx context.Context, id int64, dataURI string) error
	// GetInviteImage returns the stored invite image data URI, "" when absent
	GetInviteImage(ctx context.Context, qrCode string, eventID int64) (string, error)
	// BulkInsert inserts guests in one batch. Uniqueness violations are
	// returned as *domain.ConflictError; nothing is inserted in that case.
	BulkInsert(ctx context.Context, guests []*domain.Guest) (int, error)
}
