package domain

import (
	"time"
)

// GuestStatus is the RSVP state of a guest
type GuestStatus string

const (
	StatusPending   GuestStatus = "pending"
	StatusConfirmed GuestStatus = "confirmed"
	StatusDeclined  GuestStatus = "declined"
)

// IsValid reports whether s is a known RSVP status
func (s GuestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// IsFinal reports whether s is a status a guest can set through the RSVP
// flow. Guests can confirm or decline, never move back to pending.
func (s GuestStatus) IsFinal() bool {
	return s == StatusConfirmed || s == StatusDeclined
}

// Guest represents an invited person. The GUID is the opaque capability
// token used in personalized links; the QR code is the short human-readable
// invite code printed on the invite, unique per event.
type Guest struct {
	ID                int64       `json:"id"`
	GUID              string      `json:"guid"`
	QRCode            string      `json:"qr_code,omitempty"`
	Name              string      `json:"name"`
	Email             string      `json:"email,omitempty"`
	Phone             string      `json:"phone,omitempty"`
	EventID           int64       `json:"event_id"`
	Status            GuestStatus `json:"status"`
	InviteImageBase64 string      `json:"-"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// GuestWithEvent bundles a guest with its resolved event
type GuestWithEvent struct {
	Guest
	Event *Event `json:"event,omitempty"`
}

// GuestStats holds aggregate RSVP counts. Counts are computed by independent
// count queries, never derived from a capped result page.
type GuestStats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Declined  int `json:"declined"`
	Pending   int `json:"pending"`
}
