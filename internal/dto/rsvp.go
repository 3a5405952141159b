package dto

import (
	"github.com/Dumorro/e-nvites/internal/domain"
)

// GetGuestQuery represents the guest-lookup query parameters
type GetGuestQuery struct {
	GUID string `form:"guid" binding:"required"`
}

// UpdateRSVPRequest represents a guest confirming or declining attendance
type UpdateRSVPRequest struct {
	GUID   string `json:"guid" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// Validate checks that the requested status is one a guest may set
func (r *UpdateRSVPRequest) Validate() (bool, string) {
	status := domain.GuestStatus(r.Status)
	if !status.IsFinal() {
		return false, `Status deve ser "confirmed" ou "declined"`
	}
	return true, ""
}

// ConfirmByEmailRequest represents the email-based confirmation flow
type ConfirmByEmailRequest struct {
	Email     string `json:"email" binding:"required"`
	EventSlug string `json:"eventSlug" binding:"required"`
}

// GuestResponse is the guest payload returned to RSVP callers
type GuestResponse struct {
	Guest *domain.GuestWithEvent `json:"guest"`
}

// GuestImageQuery represents the invite-image lookup parameters
type GuestImageQuery struct {
	QRCode  string `form:"qrCode" binding:"required"`
	EventID int64  `form:"eventId" binding:"required"`
}

// GuestImageResponse carries the invite image as a base64 data URI along
// with where it was found
type GuestImageResponse struct {
	Source    string `json:"source"` // database or filesystem
	ImageData string `json:"imageData"`
}
