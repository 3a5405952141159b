package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Dumorro/e-nvites/internal/domain"
	"github.com/Dumorro/e-nvites/internal/dto"
	"github.com/Dumorro/e-nvites/internal/repository"
	"github.com/Dumorro/e-nvites/pkg/logger"
)

var (
	ErrGuestNotFound     = errors.New("guest not found")
	ErrInvalidStatus     = errors.New("status must be confirmed or declined")
	ErrEmailNotOnList    = errors.New("email not on the guest list")
	ErrGuestNotConfirmed = errors.New("guest is not confirmed")
	ErrEventInactive     = errors.New("event is not active")
)

// RSVPService implements the guest-facing RSVP flows and the admin resend
type RSVPService interface {
	// GetGuest retrieves a guest with its event by invitation GUID
	GetGuest(ctx context.Context, guid string) (*domain.GuestWithEvent, error)
	// UpdateStatus confirms or declines attendance for the guest with the
	// given GUID. On confirmation a confirmation email is sent best-effort;
	// a delivery failure never fails the RSVP itself.
	UpdateStatus(ctx context.Context, guid string, status domain.GuestStatus) (*domain.GuestWithEvent, error)
	// ConfirmByEmail confirms attendance for the guest matching the
	// lowercased email within the active event with the given slug
	ConfirmByEmail(ctx context.Context, email, eventSlug string) (*domain.GuestWithEvent, error)
	// ResendConfirmation sends the confirmation email again, addressed by
	// guest ID or GUID. Unlike the RSVP flows, delivery failure is surfaced.
	ResendConfirmation(ctx context.Context, req *dto.SendConfirmationRequest) (*dto.SendConfirmationResponse, error)
}

// rsvpService implements RSVPService
type rsvpService struct {
	guestRepo repository.GuestRepository
	eventRepo repository.EventRepository
	mailer    MailerService
	log       *logger.Logger
}

// NewRSVPService creates a new RSVPService
func NewRSVPService(
	guestRepo repository.GuestRepository,
	eventRepo repository.EventRepository,
	mailer MailerService,
	log *logger.Logger,
) RSVPService {
	return &rsvpService{
		guestRepo: guestRepo,
		eventRepo: eventRepo,
		mailer:    mailer,
		log:       log,
	}
}

// GetGuest retrieves a guest with its event by invitation GUID
func (s *rsvpService) GetGuest(ctx context.Context, guid string) (*domain.GuestWithEvent, error) {
	guest, err := s.guestRepo.GetByGUID(ctx, guid)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}
	return s.withEvent(ctx, guest)
}

// UpdateStatus confirms or declines attendance for a guest
func (s *rsvpService) UpdateStatus(ctx context.Context, guid string, status domain.GuestStatus) (*domain.GuestWithEvent, error) {
	if !status.IsFinal() {
		return nil, ErrInvalidStatus
	}

	guest, err := s.guestRepo.UpdateStatus(ctx, guid, status)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}

	result, err := s.withEvent(ctx, guest)
	if err != nil {
		return nil, err
	}

	if status == domain.StatusConfirmed {
		s.sendBestEffort(ctx, guest, result.Event)
	}

	return result, nil
}

// ConfirmByEmail confirms attendance by (email, event slug)
func (s *rsvpService) ConfirmByEmail(ctx context.Context, email, eventSlug string) (*domain.GuestWithEvent, error) {
	event, err := s.eventRepo.GetActiveBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	email = strings.ToLower(strings.TrimSpace(email))
	guest, err := s.guestRepo.GetByEmailAndEvent(ctx, email, event.ID)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrEmailNotOnList
	}

	updated, err := s.guestRepo.UpdateStatusByID(ctx, guest.ID, domain.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	s.sendBestEffort(ctx, updated, event)

	return &domain.GuestWithEvent{Guest: *updated, Event: event}, nil
}

// ResendConfirmation sends the confirmation email again for a guest
func (s *rsvpService) ResendConfirmation(ctx context.Context, req *dto.SendConfirmationRequest) (*dto.SendConfirmationResponse, error) {
	var guest *domain.Guest
	var err error

	if req.GuestID > 0 {
		guest, err = s.guestRepo.GetByID(ctx, req.GuestID)
	} else {
		guest, err = s.guestRepo.GetByGUID(ctx, req.GUID)
	}
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}

	if guest.Email == "" {
		return nil, ErrGuestHasNoEmail
	}
	if guest.Status != domain.StatusConfirmed {
		return nil, ErrGuestNotConfirmed
	}

	event, err := s.eventRepo.GetByID(ctx, guest.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if !event.IsActive {
		return nil, ErrEventInactive
	}

	attempts, err := s.mailer.SendConfirmation(ctx, guest, event)
	if err != nil {
		return nil, err
	}

	return &dto.SendConfirmationResponse{
		Recipient: guest.Email,
		Attempts:  attempts,
	}, nil
}

// sendBestEffort delivers the confirmation email without letting a failure
// reach the guest-facing response
func (s *rsvpService) sendBestEffort(ctx context.Context, guest *domain.Guest, event *domain.Event) {
	if guest.Email == "" || event == nil {
		return
	}
	if _, err := s.mailer.SendConfirmation(ctx, guest, event); err != nil {
		s.log.Warn("best-effort confirmation email failed",
			zap.Int64("guest_id", guest.ID),
			zap.String("recipient", guest.Email),
			zap.Error(err),
		)
	}
}

func (s *rsvpService) withEvent(ctx context.Context, guest *domain.Guest) (*domain.GuestWithEvent, error) {
	result := &domain.GuestWithEvent{Guest: *guest}
	if guest.EventID > 0 {
		event, err := s.eventRepo.GetByID(ctx, guest.EventID)
		if err != nil {
			return nil, err
		}
		result.Event = event
	}
	return result, nil
}
