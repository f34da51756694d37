package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintService owns the complaint lifecycle: creation, ownership
// checks, admin updates and deletion, and live statistics.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(complaints repository.ComplaintRepository, dispatcher events.Dispatcher) *ComplaintService {
	return &ComplaintService{complaints: complaints, dispatcher: dispatcher}
}

// SubmitInput describes a complaint submission.
type SubmitInput struct {
	Title       string
	Description string
	Category    string
	Attachment  *string
}

// AdminUpdateInput carries an administrative partial update. Nil means
// the field was not supplied; a non-nil empty string clears it.
type AdminUpdateInput struct {
	Status       *domain.ComplaintStatus
	AdminComment *string
	HandlerName  *string
}

// Submit creates a complaint owned by ownerID, always in pending state.
func (s *ComplaintService) Submit(ctx context.Context, ownerID string, input SubmitInput) (*domain.Complaint, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	complaint := &domain.Complaint{
		Title:        title,
		Description:  description,
		UserID:       ownerID,
		Status:       domain.ComplaintStatusPending,
		Category:     category,
		AdminComment: "",
		HandlerName:  "",
		Attachment:   input.Attachment,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: ownerID, Role: domain.RoleUser},
		Payload: events.ComplaintCreatedPayload{
			Title:      complaint.Title,
			Category:   complaint.Category,
			Attachment: complaint.Attachment,
		},
	})
	return complaint, nil
}

// ListMine returns the owner's complaints, newest first.
func (s *ComplaintService) ListMine(ctx context.Context, ownerID string) ([]domain.Complaint, error) {
	return s.complaints.ListByUser(ctx, ownerID)
}

// ListAll returns every complaint, newest first. Admin access is
// enforced at the route.
func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.complaints.ListAll(ctx)
}

// Get fetches a single complaint, visible to its owner and to admins.
func (s *ComplaintService) Get(ctx context.Context, principal domain.Principal, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	if !principal.OwnsOrAdmin(complaint.UserID) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return complaint, nil
}

// ApplyAdminUpdate updates status, admin comment and/or handler name.
// Admins may move status to any valid value regardless of the current
// one; resolved complaints can be reopened.
func (s *ComplaintService) ApplyAdminUpdate(ctx context.Context, actorID, id string, input AdminUpdateInput) (*domain.Complaint, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status value", map[string]any{"status": *input.Status})
	}

	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}

	oldStatus := complaint.Status
	if input.Status != nil {
		complaint.Status = *input.Status
	}
	if input.AdminComment != nil {
		complaint.AdminComment = *input.AdminComment
	}
	if input.HandlerName != nil {
		complaint.HandlerName = *input.HandlerName
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}

	if input.Status != nil && *input.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintStatusChanged,
			ComplaintID: complaint.ID,
			Actor:       events.Actor{UserID: actorID, Role: domain.RoleAdmin},
			Payload: events.ComplaintStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: complaint.Status,
				Handler:   complaint.HandlerName,
			},
		})
	} else {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintUpdated,
			ComplaintID: complaint.ID,
			Actor:       events.Actor{UserID: actorID, Role: domain.RoleAdmin},
			Payload: events.ComplaintUpdatedPayload{
				AdminComment: input.AdminComment,
				HandlerName:  input.HandlerName,
			},
		})
	}
	return complaint, nil
}

// Delete removes a complaint permanently.
func (s *ComplaintService) Delete(ctx context.Context, actorID, id string) error {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", nil)
		}
		return err
	}
	if err := s.complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", nil)
		}
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintDeleted,
		ComplaintID: id,
		Actor:       events.Actor{UserID: actorID, Role: domain.RoleAdmin},
		Payload: events.ComplaintDeletedPayload{
			Title:  complaint.Title,
			UserID: complaint.UserID,
		},
	})
	return nil
}

// Stats counts complaints per status over live data.
func (s *ComplaintService) Stats(ctx context.Context) (*domain.ComplaintStats, error) {
	return s.complaints.Stats(ctx)
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
