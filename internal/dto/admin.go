package dto

import (
	"strconv"

	"github.com/Dumorro/e-nvites/internal/domain"
)

// ListGuestsQuery represents query parameters for the admin guest list.
// EventID is a string so the UI can send "all" for no event filter.
type ListGuestsQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=pending confirmed declined"`
	EventID string `form:"event_id" binding:"omitempty"`
	Search  string `form:"search" binding:"omitempty,max=255"`
	Export  bool   `form:"export" binding:"omitempty"`
}

// EventIDValue parses the event filter, returning 0 when unset or "all"
func (q *ListGuestsQuery) EventIDValue() int64 {
	if q.EventID == "" || q.EventID == "all" {
		return 0
	}
	id, err := strconv.ParseInt(q.EventID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ListGuestsResponse bundles the guest page with aggregate counts and the
// active events for the filter controls
type ListGuestsResponse struct {
	Guests []*domain.GuestWithEvent `json:"guests"`
	Stats  *domain.GuestStats       `json:"stats"`
	Events []*domain.Event          `json:"events"`
}

// ImportStats summarizes one CSV import attempt
type ImportStats struct {
	TotalRows    int                   `json:"totalRows"`
	Inserted     int                   `json:"inserted"`
	Errors       int                   `json:"errors"`
	ErrorDetails []domain.ImportError  `json:"errorDetails"`
	Status       domain.ImportStatus   `json:"status"`
	DurationMS   int64                 `json:"durationMs"`
}

// UploadStats summarizes one invite ZIP upload
type UploadStats struct {
	Total         int      `json:"total"`
	Updated       int      `json:"updated"`
	NotFound      int      `json:"notFound"`
	Files         []string `json:"files"`
	NotFoundFiles []string `json:"notFoundFiles"`
}

// ImportLogsQuery represents query parameters for import-log retrieval
type ImportLogsQuery struct {
	EventID int64 `form:"eventId" binding:"omitempty"`
	Limit   int   `form:"limit" binding:"omitempty,min=1,max=500"`
}

// SetDefaults sets default values for query parameters
func (q *ImportLogsQuery) SetDefaults() {
	if q.Limit == 0 {
		q.Limit = 50
	}
}

// SendConfirmationRequest asks for a confirmation email to be sent or
// resent to a guest, addressed by ID or by GUID
type SendConfirmationRequest struct {
	GuestID int64  `json:"guestId" binding:"omitempty"`
	GUID    string `json:"guid" binding:"omitempty"`
}

// Validate checks that exactly one addressing mode is provided
func (r *SendConfirmationRequest) Validate() (bool, string) {
	if r.GuestID == 0 && r.GUID == "" {
		return false, "Either guestId or guid must be provided"
	}
	return true, ""
}

// SendConfirmationResponse reports a completed email send
type SendConfirmationResponse struct {
	Recipient string `json:"recipient"`
	Attempts  int    `json:"attempts"`
}
