package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintUpdated       EventType = "complaint_updated"
	EventComplaintDeleted       EventType = "complaint_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Attachment *string `json:"attachment,omitempty"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
	Handler   string                 `json:"handler,omitempty"`
}

// ComplaintUpdatedPayload payload for admin edits that leave status alone.
type ComplaintUpdatedPayload struct {
	AdminComment *string `json:"admin_comment,omitempty"`
	HandlerName  *string `json:"handler_name,omitempty"`
}

// ComplaintDeletedPayload payload.
type ComplaintDeletedPayload struct {
	Title  string `json:"title"`
	UserID string `json:"user_id"`
}
