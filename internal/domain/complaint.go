package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in-progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
)

// Valid reports whether the status is a known value.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}

// DefaultCategory is applied when a submission carries no category.
const DefaultCategory = "general"

// Complaint is the aggregate for user-submitted complaints. UserID,
// CreatedAt and Attachment are immutable after creation; AdminComment
// and HandlerName are writable by administrators only.
type Complaint struct {
	ID           string
	Title        string
	Description  string
	UserID       string
	Status       ComplaintStatus
	Category     string
	AdminComment string
	HandlerName  string
	Attachment   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ComplaintStats aggregates complaint counts per status.
type ComplaintStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}
