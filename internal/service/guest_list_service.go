package service

import (
	"context"

	"github.com/Dumorro/e-nvites/internal/domain"
	"github.com/Dumorro/e-nvites/internal/dto"
	"github.com/Dumorro/e-nvites/internal/repository"
)

// listLimit caps the guest page to keep the admin view responsive. Export
// mode lifts the cap for full CSV export.
const listLimit = 1000

// GuestListService serves the admin guest list with aggregate counts
type GuestListService interface {
	// List returns a guest page with stats and the active events. Stats are
	// scoped to the event filter only and computed by count queries, so they
	// stay accurate when the page is capped.
	List(ctx context.Context, query *dto.ListGuestsQuery) (*dto.ListGuestsResponse, error)
	// ImportLogs returns recent import audit records
	ImportLogs(ctx context.Context, query *dto.ImportLogsQuery) ([]*domain.ImportLog, error)
}

// guestListService implements GuestListService
type guestListService struct {
	guestRepo     repository.GuestRepository
	eventRepo     repository.EventRepository
	importLogRepo repository.ImportLogRepository
}

// NewGuestListService creates a new GuestListService
func NewGuestListService(
	guestRepo repository.GuestRepository,
	eventRepo repository.EventRepository,
	importLogRepo repository.ImportLogRepository,
) GuestListService {
	return &guestListService{
		guestRepo:     guestRepo,
		eventRepo:     eventRepo,
		importLogRepo: importLogRepo,
	}
}

// List returns a guest page with stats and the active events
func (s *guestListService) List(ctx context.Context, query *dto.ListGuestsQuery) (*dto.ListGuestsResponse, error) {
	eventID := query.EventIDValue()

	limit := listLimit
	if query.Export {
		limit = 0
	}

	guests, err := s.guestRepo.List(ctx, repository.GuestFilter{
		Status:  domain.GuestStatus(query.Status),
		EventID: eventID,
		Search:  query.Search,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	stats, err := s.guestRepo.Stats(ctx, repository.StatsFilter{EventID: eventID})
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	eventsByID := make(map[int64]*domain.Event, len(events))
	for _, event := range events {
		eventsByID[event.ID] = event
	}

	result := make([]*domain.GuestWithEvent, 0, len(guests))
	for _, guest := range guests {
		result = append(result, &domain.GuestWithEvent{
			Guest: *guest,
			Event: eventsByID[guest.EventID],
		})
	}

	return &dto.ListGuestsResponse{
		Guests: result,
		Stats:  stats,
		Events: events,
	}, nil
}

// ImportLogs returns recent import audit records
func (s *guestListService) ImportLogs(ctx context.Context, query *dto.ImportLogsQuery) ([]*domain.ImportLog, error) {
	query.SetDefaults()
	return s.importLogRepo.List(ctx, query.EventID, query.Limit)
}
