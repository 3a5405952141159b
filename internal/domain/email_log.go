package domain

import (
	"time"
)

// EmailStatus is the outcome of one email delivery attempt
type EmailStatus string

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// EmailLog records one confirmation-email delivery attempt. A log row is
// written for every completed send cycle, success or exhausted failure.
type EmailLog struct {
	ID             int64       `json:"id"`
	GuestID        *int64      `json:"guest_id,omitempty"`
	RecipientEmail string      `json:"recipient_email"`
	RecipientName  string      `json:"recipient_name,omitempty"`
	Subject        string      `json:"subject,omitempty"`
	Status         EmailStatus `json:"status"`
	ErrorMessage   string      `json:"error_message,omitempty"`
	SentAt         time.Time   `json:"sent_at"`
}
