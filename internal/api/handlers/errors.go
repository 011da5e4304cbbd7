package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cricket-registration-backend/internal/auth"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Stable error codes returned alongside the message
const (
	CodeUnauthenticated  = "unauthenticated"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeValidation       = "validation_error"
	CodeDuplicateEmail   = "duplicate_email"
	CodeAlreadyExists    = "already_exists"
	CodeInvalidSignature = "invalid_signature"
	CodeInvalidState     = "invalid_state"
	CodeProviderError    = "payment_provider_error"
	CodeUnavailable      = "unavailable"
	CodeInternal         = "internal"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"team not found"`
	Code  string `json:"code" example:"not_found"`
	Field string `json:"field,omitempty" example:"players"`
}

// respondError maps a service error onto its HTTP status. Unexpected errors
// are logged and answered with a generic message.
func respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Error(), Code: CodeValidation, Field: validationErr.Field})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Code: CodeUnauthenticated})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error(), Code: CodeForbidden})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeNotFound})
	case errors.Is(err, apperrors.ErrEmailExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeDuplicateEmail})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeAlreadyExists})
	case apperrors.IsSignature(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidSignature})
	case errors.Is(err, apperrors.ErrInvalidPaymentState):
		c.JSON(http.StatusConflict, ErrorResponse{Error: apperrors.ErrInvalidPaymentState.Error(), Code: CodeInvalidState})
	case errors.Is(err, apperrors.ErrPaymentProviderFailure):
		logger.FromGinContext(c).WithError(err).Error("payment provider request failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Payment provider unavailable, please retry", Code: CodeProviderError})
	case apperrors.IsUnavailable(err):
		logger.FromGinContext(c).WithError(err).Warn("request rejected, backend unavailable")
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Service temporarily unavailable", Code: CodeUnavailable})
	default:
		logger.FromGinContext(c).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: CodeInternal})
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeValidation})
}

// parseUUIDParam reads a UUID path parameter, answering 400 when it is malformed
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and page_size, leaving bounds to the services
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// callerID returns the authenticated account or answers 401
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := auth.GetUserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthenticated)
		return uuid.Nil, false
	}
	return id, true
}
