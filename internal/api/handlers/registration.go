package handlers

import (
	"net/http"

	"cricket-registration-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegistrationHandler handles HTTP requests for tournament registrations
type RegistrationHandler struct {
	registrationService service.RegistrationServiceInterface
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService service.RegistrationServiceInterface) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// CreateRegistration handles POST /api/registrations
// @Summary Register a team
// @Description Registers a team with a complete roster for a tournament category. The fee is derived from the category and the registration starts with a pending payment.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration body service.CreateRegistrationRequest true "Registration data"
// @Success 201 {object} service.RegistrationResponse
// @Failure 400 {object} ErrorResponse "Invalid input or incomplete roster"
// @Failure 403 {object} ErrorResponse "Not the team captain"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 409 {object} ErrorResponse "Team already has an active registration"
// @Security BearerAuth
// @Router /registrations [post]
func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	registration, err := h.registrationService.CreateRegistration(c.Request.Context(), accountID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"registration": registration})
}

// ListRegistrations handles GET /api/registrations
// @Summary List registrations
// @Description Lists registrations with team names, newest first, optionally for one team
// @Tags registrations
// @Produce json
// @Param teamId query string false "Team ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.RegistrationListResponse
// @Failure 400 {object} ErrorResponse "Invalid team ID"
// @Router /registrations [get]
func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
	var teamID *uuid.UUID
	if raw := c.Query("teamId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "invalid team ID")
			return
		}
		teamID = &id
	}
	page, pageSize := pageParams(c)

	registrations, err := h.registrationService.ListRegistrations(c.Request.Context(), teamID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrations)
}
