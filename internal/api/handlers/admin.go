package handlers

import (
	"net/http"

	"cricket-registration-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	adminService   service.AdminServiceInterface
	paymentService service.PaymentServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService service.AdminServiceInterface, paymentService service.PaymentServiceInterface) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		paymentService: paymentService,
	}
}

// Stats handles GET /api/admin/stats
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Success 200 {object} service.StatsResponse
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Refund handles POST /api/admin/registrations/:id/refund
// @Summary Refund a registration
// @Description Marks a completed payment as refunded
// @Tags admin
// @Produce json
// @Param id path string true "Registration ID (UUID)"
// @Success 200 {object} service.RegistrationResponse
// @Failure 404 {object} ErrorResponse "Registration not found"
// @Failure 409 {object} ErrorResponse "Payment is not completed"
// @Security BearerAuth
// @Router /admin/registrations/{id}/refund [post]
func (h *AdminHandler) Refund(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "registration")
	if !ok {
		return
	}

	registration, err := h.paymentService.Refund(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": registration})
}
