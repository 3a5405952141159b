package service

import (
	"context"
	"testing"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Dumorro/e-nvites/internal/domain"
	"github.com/Dumorro/e-nvites/internal/repository"
	"github.com/Dumorro/e-nvites/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{
		Level:       "error",
		ServiceName: "test",
		OutputPath:  "stderr",
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return log
}

func testEvent() *domain.Event {
	date := time.Date(2026, 10, 17, 18, 30, 0, 0, time.UTC)
	return &domain.Event{
		ID:        1,
		Name:      "Festa Equinor",
		Slug:      "festa-equinor",
		EventDate: &date,
		Location:  "Rio de Janeiro",
		IsActive:  true,
	}
}

// MockEventRepository is an in-memory EventRepository
type MockEventRepository struct {
	events map[int64]*domain.Event
	err    error
}

func NewMockEventRepository(events ...*domain.Event) *MockEventRepository {
	m := &MockEventRepository{events: map[int64]*domain.Event{}}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events[id], nil
}

func (m *MockEventRepository) GetActiveBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, e := range m.events {
		if e.Slug == slug && e.IsActive {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	events := []*domain.Event{}
	for _, e := range m.events {
		if e.IsActive {
			events = append(events, e)
		}
	}
	return events, nil
}

// MockGuestRepository is an in-memory GuestRepository
type MockGuestRepository struct {
	guests []*domain.Guest
	stats  *domain.GuestStats

	insertErr error
	inserted  []*domain.Guest

	lastFilter      repository.GuestFilter
	lastStatsFilter repository.StatsFilter
}

func NewMockGuestRepository(guests ...*domain.Guest) *MockGuestRepository {
	return &MockGuestRepository{guests: guests}
}

func (m *MockGuestRepository) GetByGUID(ctx context.Context, guid string) (*domain.Guest, error) {
	for _, g := range m.guests {
		if g.GUID == guid {
			return g, nil
		}
	}
	return nil, nil
}

func (m *MockGuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	for _, g := range m.guests {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (m *MockGuestRepository) GetByEmailAndEvent(ctx context.Context, email string, eventID int64) (*domain.Guest, error) {
	for _, g := range m.guests {
		if g.Email == email && g.EventID == eventID {
			return g, nil
		}
	}
	return nil, nil
}

func (m *MockGuestRepository) GetByQRCodeAndEvent(ctx context.Context, qrCode string, eventID int64) (*domain.Guest, error) {
	for _, g := range m.guests {
		if g.QRCode == qrCode && g.EventID == eventID {
			return g, nil
		}
	}
	return nil, nil
}

func (m *MockGuestRepository) List(ctx context.Context, filter repository.GuestFilter) ([]*domain.Guest, error) {
	m.lastFilter = filter
	result := []*domain.Guest{}
	for _, g := range m.guests {
		if filter.EventID > 0 && g.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && g.Status != filter.Status {
			continue
		}
		result = append(result, g)
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (m *MockGuestRepository) Stats(ctx context.Context, filter repository.StatsFilter) (*domain.GuestStats, error) {
	m.lastStatsFilter = filter
	if m.stats != nil {
		return m.stats, nil
	}
	stats := &domain.GuestStats{}
	for _, g := range m.guests {
		if filter.EventID > 0 && g.EventID != filter.EventID {
			continue
		}
		stats.Total++
		switch g.Status {
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusDeclined:
			stats.Declined++
		default:
			stats.Pending++
		}
	}
	return stats, nil
}

func (m *MockGuestRepository) UpdateStatus(ctx context.Context, guid string, status domain.GuestStatus) (*domain.Guest, error) {
	for _, g := range m.guests {
		if g.GUID == guid {
			g.Status = status
			return g, nil
		}
	}
	return nil, nil
}

func (m *MockGuestRepository) UpdateStatusByID(ctx context.Context, id int64, status domain.GuestStatus) (*domain.Guest, error) {
	for _, g := range m.guests {
		if g.ID == id {
			g.Status = status
			return g, nil
		}
	}
	return nil, nil
}

func (m *MockGuestRepository) UpdateInviteImage(ctx context.Context, id int64, dataURI string) error {
	for _, g := range m.guests {
		if g.ID == id {
			g.InviteImageBase64 = dataURI
			return nil
		}
	}
	return nil
}

func (m *MockGuestRepository) GetInviteImage(ctx context.Context, qrCode string, eventID int64) (string, error) {
	for _, g := range m.guests {
		if g.QRCode == qrCode && g.EventID == eventID {
			return g.InviteImageBase64, nil
		}
	}
	return "", nil
}

func (m *MockGuestRepository) BulkInsert(ctx context.Context, guests []*domain.Guest) (int, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.inserted = append(m.inserted, guests...)
	return len(guests), nil
}

// MockImportLogRepository records import logs in memory
type MockImportLogRepository struct {
	logs      []*domain.ImportLog
	createErr error
}

func NewMockImportLogRepository() *MockImportLogRepository {
	return &MockImportLogRepository{}
}

func (m *MockImportLogRepository) Create(ctx context.Context, log *domain.ImportLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockImportLogRepository) List(ctx context.Context, eventID int64, limit int) ([]*domain.ImportLog, error) {
	result := []*domain.ImportLog{}
	for _, l := range m.logs {
		if eventID > 0 && l.EventID != eventID {
			continue
		}
		result = append(result, l)
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// MockEmailLogRepository records email logs in memory
type MockEmailLogRepository struct {
	logs      []*domain.EmailLog
	createErr error
}

func NewMockEmailLogRepository() *MockEmailLogRepository {
	return &MockEmailLogRepository{}
}

func (m *MockEmailLogRepository) Create(ctx context.Context, log *domain.EmailLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockEmailLogRepository) ListByGuest(ctx context.Context, guestID int64, limit int) ([]*domain.EmailLog, error) {
	result := []*domain.EmailLog{}
	for _, l := range m.logs {
		if l.GuestID != nil && *l.GuestID == guestID {
			result = append(result, l)
		}
	}
	return result, nil
}

// MockTransport fails the first failures sends, then succeeds
type MockTransport struct {
	failures int
	calls    int
	messages []*gomail.Message
}

func NewMockTransport(failures int) *MockTransport {
	return &MockTransport{failures: failures}
}

func (m *MockTransport) Send(msg *gomail.Message) error {
	m.calls++
	if m.calls <= m.failures {
		return errSMTPUnavailable
	}
	m.messages = append(m.messages, msg)
	return nil
}

// MockMailer records SendConfirmation calls
type MockMailer struct {
	sendErr error
	calls   int
	lastTo  string
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendConfirmation(ctx context.Context, guest *domain.Guest, event *domain.Event) (int, error) {
	m.calls++
	m.lastTo = guest.Email
	if m.sendErr != nil {
		return 1, m.sendErr
	}
	return 1, nil
}
