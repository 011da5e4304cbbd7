package handlers

import (
	"net/http"

	"cricket-registration-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles the contact form and its admin triage
type ContactHandler struct {
	contactService service.ContactServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact
// @Summary Submit contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param message body service.ContactRequest true "Contact message"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Router /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	message, err := h.contactService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": message.ID})
}

// ListMessages handles GET /api/admin/contact-messages
// @Summary List contact messages
// @Tags admin
// @Produce json
// @Param status query string false "Status filter" Enums(unread, read, replied)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.ContactListResponse
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /admin/contact-messages [get]
func (h *ContactHandler) ListMessages(c *gin.Context) {
	page, pageSize := pageParams(c)

	messages, err := h.contactService.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// UpdateStatus handles PATCH /api/admin/contact-messages/:id
// @Summary Update contact message status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Message ID (UUID)"
// @Param status body service.UpdateContactStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 404 {object} ErrorResponse "Message not found"
// @Security BearerAuth
// @Router /admin/contact-messages/{id} [patch]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "message")
	if !ok {
		return
	}

	var req service.UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if err := h.contactService.UpdateStatus(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}
