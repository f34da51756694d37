package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload. Submitted as multipart form fields so
// an attachment can ride along.
type CreateComplaintRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
}

// AdminUpdateComplaintRequest payload. Pointer fields distinguish "not
// supplied" from an explicit empty string, so a comment can be cleared.
type AdminUpdateComplaintRequest struct {
	Status       *domain.ComplaintStatus `json:"status"`
	AdminComment *string                 `json:"adminComment"`
	HandlerName  *string                 `json:"handlerName"`
}

// ComplaintResponse is the full complaint representation.
type ComplaintResponse struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	UserID       string                 `json:"userId"`
	Status       domain.ComplaintStatus `json:"status"`
	Category     string                 `json:"category"`
	AdminComment string                 `json:"adminComment"`
	HandlerName  string                 `json:"handlerName"`
	Attachment   *string                `json:"attachment"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// NewComplaintResponse maps a domain complaint to its response form.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:           complaint.ID,
		Title:        complaint.Title,
		Description:  complaint.Description,
		UserID:       complaint.UserID,
		Status:       complaint.Status,
		Category:     complaint.Category,
		AdminComment: complaint.AdminComment,
		HandlerName:  complaint.HandlerName,
		Attachment:   complaint.Attachment,
		CreatedAt:    complaint.CreatedAt,
		UpdatedAt:    complaint.UpdatedAt,
	}
}

// NewComplaintResponses maps a slice of complaints.
func NewComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, NewComplaintResponse(&complaints[i]))
	}
	return items
}
