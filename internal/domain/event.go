package domain

import (
	"time"
)

// Event represents a hosted event guests are invited to. Events are created
// by seed and migration scripts and are read-only at runtime.
type Event struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description,omitempty"`
	EventDate        *time.Time `json:"event_date,omitempty"`
	Location         string     `json:"location,omitempty"`
	TemplateName     string     `json:"template_name"`
	WelcomeMessage   string     `json:"welcome_message,omitempty"`
	ShowQRCode       bool       `json:"show_qr_code"`
	ShowEventDetails bool       `json:"show_event_details"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
