package handlers

import (
	"net/http"

	"cricket-registration-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the checkout endpoints
type PaymentHandler struct {
	paymentService service.PaymentServiceInterface
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService service.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrder handles POST /api/payment/create-order
// @Summary Create payment order
// @Description Opens a provider order for a registration awaiting payment. The amount must equal the registration fee in minor units.
// @Tags payment
// @Accept json
// @Produce json
// @Param order body service.CreateOrderRequest true "Order data"
// @Success 200 {object} service.OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid input or amount mismatch"
// @Failure 403 {object} ErrorResponse "Not the team captain"
// @Failure 404 {object} ErrorResponse "Registration not found"
// @Failure 409 {object} ErrorResponse "Payment already completed"
// @Failure 502 {object} ErrorResponse "Payment provider unavailable"
// @Security BearerAuth
// @Router /payment/create-order [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context(), accountID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// VerifyPayment handles POST /api/payment/verify
// @Summary Verify payment
// @Description Verifies the checkout signature and marks the registration paid. Repeating a verified callback returns the same result.
// @Tags payment
// @Accept json
// @Produce json
// @Param payment body service.VerifyPaymentRequest true "Checkout callback"
// @Success 200 {object} service.VerificationResponse
// @Failure 400 {object} ErrorResponse "Invalid signature or input"
// @Failure 404 {object} ErrorResponse "Registration not found"
// @Failure 409 {object} ErrorResponse "Payment already completed"
// @Router /payment/verify [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req service.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.VerifyPayment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ReportFailure handles POST /api/payment/failure
// @Summary Report payment failure
// @Description Records a failed or abandoned checkout. The team may retry with a new order.
// @Tags payment
// @Accept json
// @Produce json
// @Param failure body service.ReportFailureRequest true "Failure data"
// @Success 200 {object} service.RegistrationResponse
// @Failure 403 {object} ErrorResponse "Not the team captain"
// @Failure 404 {object} ErrorResponse "Registration not found"
// @Failure 409 {object} ErrorResponse "Payment is not pending"
// @Security BearerAuth
// @Router /payment/failure [post]
func (h *PaymentHandler) ReportFailure(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.ReportFailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	registration, err := h.paymentService.ReportFailure(c.Request.Context(), accountID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": registration})
}
