package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/storage"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintsHandler exposes the complaint lifecycle endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
	store   *storage.LocalStore
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService, store *storage.LocalStore) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService, store: store}
}

// Create POST /complaints. Accepts multipart form data with an optional
// single "attachment" file.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var attachment *string
	if file, err := c.FormFile("attachment"); err == nil && file != nil {
		// Attachment is validated and stored before the record exists,
		// so an oversized upload never creates a complaint.
		name, err := h.store.Save(file)
		if err != nil {
			return err
		}
		attachment = &name
	}

	complaint, err := h.service.Submit(c.Context(), principal.ID, service.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Attachment:  attachment,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// ListMine GET /complaints/my.
func (h *ComplaintsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaints, err := h.service.ListMine(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// ListAll GET /complaints/all. Admin-gated at the route.
func (h *ComplaintsHandler) ListAll(c *fiber.Ctx) error {
	complaints, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// Get GET /complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaint, err := h.service.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// AdminUpdate PATCH /complaints/:id. Admin-gated at the route.
func (h *ComplaintsHandler) AdminUpdate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AdminUpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	complaint, err := h.service.ApplyAdminUpdate(c.Context(), principal.ID, c.Params("id"), service.AdminUpdateInput{
		Status:       req.Status,
		AdminComment: req.AdminComment,
		HandlerName:  req.HandlerName,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Delete DELETE /complaints/:id. Admin-gated at the route.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Stats GET /complaints/stats/overview. Admin-gated at the route.
func (h *ComplaintsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// GetAttachment GET /attachments/:name serves a stored blob by name.
func (h *ComplaintsHandler) GetAttachment(c *fiber.Ctx) error {
	path, err := h.store.Path(c.Params("name"))
	if err != nil {
		return err
	}
	return c.SendFile(path)
}
