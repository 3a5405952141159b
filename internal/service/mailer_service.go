package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Dumorro/e-nvites/internal/domain"
	"github.com/Dumorro/e-nvites/internal/mail"
	"github.com/Dumorro/e-nvites/internal/repository"
	"github.com/Dumorro/e-nvites/pkg/logger"
)

var ErrGuestHasNoEmail = errors.New("guest has no email address")

var dataURIPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// MailerConfig holds the delivery settings for confirmation emails
type MailerConfig struct {
	Sender     string
	FromName   string
	SiteURL    string
	InvitesDir string
	MaxRetries int
	RetryDelay time.Duration
}

// MailerService sends confirmation emails with the invite image attached
type MailerService interface {
	// SendConfirmation renders and delivers the bilingual confirmation email
	// for a guest. Transport failures are retried up to MaxRetries times with
	// a fixed backoff; every attempt is recorded in the email log. The
	// returned attempt count includes the final one.
	SendConfirmation(ctx context.Context, guest *domain.Guest, event *domain.Event) (int, error)
}

// mailerService implements MailerService
type mailerService struct {
	transport    mail.Transport
	emailLogRepo repository.EmailLogRepository
	cfg          MailerConfig
	log          *logger.Logger
}

// NewMailerService creates a new MailerService
func NewMailerService(
	transport mail.Transport,
	emailLogRepo repository.EmailLogRepository,
	cfg MailerConfig,
	log *logger.Logger,
) MailerService {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &mailerService{
		transport:    transport,
		emailLogRepo: emailLogRepo,
		cfg:          cfg,
		log:          log,
	}
}

// SendConfirmation renders and delivers the confirmation email with retries
func (s *mailerService) SendConfirmation(ctx context.Context, guest *domain.Guest, event *domain.Event) (int, error) {
	if guest.Email == "" {
		return 0, ErrGuestHasNoEmail
	}

	subject := fmt.Sprintf("Sua presença está confirmada! - %s", event.Name)
	msg, err := s.composeMessage(guest, event, subject)
	if err != nil {
		return 0, err
	}

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxRetries+1; attempt++ {
		if attempt > 1 {
			s.log.Info("retrying email send",
				zap.String("recipient", guest.Email),
				zap.Int("attempt", attempt),
			)
			select {
			case <-ctx.Done():
				return attempt - 1, ctx.Err()
			case <-time.After(s.cfg.RetryDelay):
			}
		}

		lastErr = s.transport.Send(msg)
		if lastErr == nil {
			s.recordEmailLog(ctx, guest, subject, domain.EmailSent, "")
			s.log.Info("confirmation email sent",
				zap.String("recipient", guest.Email),
				zap.Int64("guest_id", guest.ID),
				zap.Int("attempt", attempt),
			)
			return attempt, nil
		}

		s.recordEmailLog(ctx, guest, subject, domain.EmailFailed, lastErr.Error())
		s.log.Warn("email send attempt failed",
			zap.String("recipient", guest.Email),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
	}

	return s.cfg.MaxRetries + 1, fmt.Errorf("email delivery failed after %d attempts: %w", s.cfg.MaxRetries+1, lastErr)
}

// composeMessage renders the template and resolves the invite attachment
func (s *mailerService) composeMessage(guest *domain.Guest, event *domain.Event, subject string) (*gomail.Message, error) {
	code := guest.QRCode
	if code == "" {
		code = guest.GUID
	}

	body, err := mail.RenderConfirmation(mail.ConfirmationData{
		GuestName:        guest.Name,
		EventName:        event.Name,
		EventDate:        formatDatePTBR(event.EventDate),
		EventTime:        extractTime(event.EventDate),
		EventLocation:    event.Location,
		ConfirmationCode: code,
		ConfirmationLink: fmt.Sprintf("%s/confirm/%s?guid=%s", s.cfg.SiteURL, event.Slug, guest.GUID),
		InviteImageURL:   fmt.Sprintf("%s/events/%s/%s-%s.png", s.cfg.SiteURL, event.Slug, code, event.Slug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render confirmation email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.cfg.Sender, s.cfg.FromName)
	msg.SetHeader("To", guest.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	s.attachInvite(msg, guest, event, code)

	return msg, nil
}

// attachInvite resolves the invite image, database copy first, filesystem
// fallback second. A missing image only skips the attachment.
func (s *mailerService) attachInvite(msg *gomail.Message, guest *domain.Guest, event *domain.Event, code string) {
	if match := dataURIPattern.FindStringSubmatch(guest.InviteImageBase64); match != nil {
		mimeType, encoded := match[1], match[2]
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			s.log.Warn("stored invite image is not valid base64",
				zap.Int64("guest_id", guest.ID), zap.Error(err))
		} else {
			ext := "jpg"
			if mimeType == "image/png" {
				ext = "png"
			}
			attachBytes(msg, fmt.Sprintf("convite-%s.%s", code, ext), mimeType, data)
			return
		}
	}

	for _, ext := range []string{"png", "jpg"} {
		imagePath := filepath.Join(s.cfg.InvitesDir, event.Slug,
			fmt.Sprintf("%s-%s.%s", code, event.Slug, ext))
		if _, err := os.Stat(imagePath); err == nil {
			msg.Attach(imagePath, gomail.Rename(fmt.Sprintf("convite-%s.%s", code, ext)))
			return
		}
	}

	s.log.Warn("no invite image found, sending without attachment",
		zap.Int64("guest_id", guest.ID), zap.String("code", code))
}

// recordEmailLog persists one delivery attempt, best-effort
func (s *mailerService) recordEmailLog(ctx context.Context, guest *domain.Guest, subject string, status domain.EmailStatus, errMsg string) {
	guestID := guest.ID
	log := &domain.EmailLog{
		GuestID:        &guestID,
		RecipientEmail: guest.Email,
		RecipientName:  guest.Name,
		Subject:        subject,
		Status:         status,
		ErrorMessage:   errMsg,
		SentAt:         time.Now(),
	}
	if err := s.emailLogRepo.Create(ctx, log); err != nil {
		s.log.Warn("failed to record email log",
			zap.Int64("guest_id", guest.ID), zap.Error(err))
	}
}

func attachBytes(msg *gomail.Message, name, mimeType string, data []byte) {
	msg.Attach(name,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {mimeType}}),
	)
}

// formatDatePTBR renders dd/mm/yyyy, empty when the event has no date
func formatDatePTBR(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// extractTime renders HH:MM, defaulting to the traditional 18:30 when the
// event has no date
func extractTime(t *time.Time) string {
	if t == nil {
		return "18:30"
	}
	return t.Format("15:04")
}
