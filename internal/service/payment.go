package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cricket-registration-backend/internal/auth"
	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/logger"
	"cricket-registration-backend/internal/payment"
	"cricket-registration-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderExpiredReason is recorded on registrations failed by the reconciler
const OrderExpiredReason = "order expired"

// PaymentConfig holds the payment settings the service needs
type PaymentConfig struct {
	KeySecret       string
	Currency        string
	PendingOrderTTL time.Duration
}

// PaymentService drives the payment state of registrations
type PaymentService struct {
	registrations repository.RegistrationRepositoryInterface
	provider      payment.Provider
	config        PaymentConfig
	validator     *validator.Validate
	now           func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(registrations repository.RegistrationRepositoryInterface, provider payment.Provider, config PaymentConfig, validator *validator.Validate) *PaymentService {
	if config.Currency == "" {
		config.Currency = "INR"
	}
	return &PaymentService{
		registrations: registrations,
		provider:      provider,
		config:        config,
		validator:     validator,
		now:           time.Now,
	}
}

// CreateOrderRequest represents the request to open a payment order
type CreateOrderRequest struct {
	Amount         int64     `json:"amount" validate:"required,gt=0" example:"500000"`
	RegistrationID uuid.UUID `json:"registrationId" validate:"required"`
	TeamName       string    `json:"teamName" validate:"required" example:"Warriors"`
	Category       string    `json:"category" validate:"required" example:"Open"`
}

// OrderResponse is the handle the client checkout needs
type OrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"keyId"`
}

// VerifyPaymentRequest represents a checkout callback. Field names follow the
// provider's checkout response.
type VerifyPaymentRequest struct {
	OrderID        string    `json:"razorpay_order_id" validate:"required"`
	PaymentID      string    `json:"razorpay_payment_id" validate:"required"`
	Signature      string    `json:"razorpay_signature" validate:"required"`
	RegistrationID uuid.UUID `json:"registrationId" validate:"required"`
}

// VerificationResponse is returned for a verified payment
type VerificationResponse struct {
	Success        bool                 `json:"success"`
	Message        string               `json:"message"`
	RegistrationID uuid.UUID            `json:"registrationId"`
	PaymentID      string               `json:"paymentId"`
	PaymentStatus  models.PaymentStatus `json:"paymentStatus"`
	PaidAt         *time.Time           `json:"paidAt,omitempty"`
}

// ReportFailureRequest represents a failed or abandoned checkout
type ReportFailureRequest struct {
	RegistrationID uuid.UUID `json:"registrationId" validate:"required"`
	OrderID        string    `json:"orderId" validate:"required"`
	Reason         string    `json:"reason" validate:"omitempty,max=255"`
}

// CreateOrder opens a provider order for a registration awaiting payment
func (s *PaymentService) CreateOrder(ctx context.Context, callerID uuid.UUID, req *CreateOrderRequest) (*OrderResponse, error) {
	req.TeamName = strings.TrimSpace(req.TeamName)
	req.Category = strings.TrimSpace(req.Category)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	registration, err := s.registrations.GetWithTeam(ctx, req.RegistrationID)
	if err != nil {
		return nil, registrationLookupError(err)
	}
	if registration.Team == nil {
		return nil, apperrors.ErrTeamNotFound
	}
	if err := auth.RequireOwnership(callerID, registration.Team.CaptainID); err != nil {
		return nil, err
	}
	if err := payableState(registration.PaymentStatus); err != nil {
		return nil, err
	}
	if req.Amount != registration.AmountInMinorUnits() {
		return nil, apperrors.NewValidationError("amount",
			fmt.Sprintf("amount must be %d", registration.AmountInMinorUnits()))
	}

	order, err := s.provider.CreateOrder(ctx, payment.OrderRequest{
		Amount:   registration.AmountInMinorUnits(),
		Currency: s.config.Currency,
		Receipt:  registration.ID.String(),
		Notes: map[string]string{
			"team_name": registration.Team.Name,
			"category":  string(registration.TournamentCategory),
		},
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentProviderFailure) || apperrors.IsConfiguration(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPaymentProviderFailure, err)
	}

	attached, err := s.registrations.AttachOrder(ctx, registration.ID, order.ID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to attach order: %w", err)
	}
	if !attached {
		// lost a race with a verification or refund
		current, err := s.registrations.GetByID(ctx, registration.ID)
		if err != nil {
			return nil, registrationLookupError(err)
		}
		if err := payableState(current.PaymentStatus); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrInvalidPaymentState
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"registration_id": registration.ID,
		"order_id":        order.ID,
		"amount":          order.Amount,
	}).Info("payment order created")

	return &OrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		KeyID:    s.provider.KeyID(),
	}, nil
}

// VerifyPayment checks a checkout signature and completes the registration.
// A failed registration still completes when the callback carries its order.
// Repeating a successful verification with the same payment id returns the
// same result without writing.
func (s *PaymentService) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*VerificationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := payment.Verify(s.config.KeySecret, req.OrderID, req.PaymentID, req.Signature); err != nil {
		if apperrors.IsSignature(err) {
			logger.WithContext(ctx).WithField("registration_id", req.RegistrationID).Warn("payment signature mismatch")
		}
		return nil, err
	}

	registration, err := s.registrations.GetByID(ctx, req.RegistrationID)
	if err != nil {
		return nil, registrationLookupError(err)
	}
	if registration.OrderID != nil && *registration.OrderID != req.OrderID {
		return nil, apperrors.NewValidationError("orderId", "order does not belong to this registration")
	}

	switch registration.PaymentStatus {
	case models.PaymentStatusCompleted:
		return s.completedResult(registration, req.PaymentID)
	case models.PaymentStatusPending:
	case models.PaymentStatusFailed:
		// the provider lets a customer retry on the same order after a failed attempt
		if registration.OrderID == nil {
			return nil, apperrors.ErrInvalidPaymentState
		}
	default:
		return nil, apperrors.ErrInvalidPaymentState
	}

	paidAt := s.now().UTC().Truncate(time.Microsecond)
	completed, err := s.registrations.MarkCompleted(ctx, registration.ID, req.OrderID, req.PaymentID, paidAt)
	if err != nil {
		if apperrors.IsAlreadyExists(err) {
			logger.WithContext(ctx).WithFields(map[string]interface{}{
				"registration_id": registration.ID,
				"order_id":        req.OrderID,
				"payment_id":      req.PaymentID,
			}).Warn("captured payment for a team that already has another active registration")
			return nil, apperrors.ErrActiveRegistrationExists
		}
		return nil, fmt.Errorf("failed to complete payment: %w", err)
	}
	if !completed {
		// a concurrent verification may have won; report what it stored
		current, err := s.registrations.GetByID(ctx, registration.ID)
		if err != nil {
			return nil, registrationLookupError(err)
		}
		if current.PaymentStatus == models.PaymentStatusCompleted {
			return s.completedResult(current, req.PaymentID)
		}
		return nil, apperrors.ErrInvalidPaymentState
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"registration_id": registration.ID,
		"order_id":        req.OrderID,
		"payment_id":      req.PaymentID,
	}).Info("payment verified")

	return &VerificationResponse{
		Success:        true,
		Message:        "Payment verified successfully",
		RegistrationID: registration.ID,
		PaymentID:      req.PaymentID,
		PaymentStatus:  models.PaymentStatusCompleted,
		PaidAt:         &paidAt,
	}, nil
}

// ReportFailure marks a pending registration's order as failed so the
// captain can retry
func (s *PaymentService) ReportFailure(ctx context.Context, callerID uuid.UUID, req *ReportFailureRequest) (*RegistrationResponse, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	registration, err := s.registrations.GetWithTeam(ctx, req.RegistrationID)
	if err != nil {
		return nil, registrationLookupError(err)
	}
	if registration.Team == nil {
		return nil, apperrors.ErrTeamNotFound
	}
	if err := auth.RequireOwnership(callerID, registration.Team.CaptainID); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "payment failed"
	}
	failed, err := s.registrations.MarkFailed(ctx, registration.ID, req.OrderID, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment failure: %w", err)
	}
	if !failed {
		return nil, apperrors.ErrInvalidPaymentState
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"registration_id": registration.ID,
		"order_id":        req.OrderID,
		"reason":          reason,
	}).Warn("payment failed")

	registration.PaymentStatus = models.PaymentStatusFailed
	registration.FailureReason = reason
	return toRegistrationResponse(registration), nil
}

// Refund marks a completed registration as refunded
func (s *PaymentService) Refund(ctx context.Context, registrationID uuid.UUID) (*RegistrationResponse, error) {
	refunded, err := s.registrations.MarkRefunded(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("failed to refund registration: %w", err)
	}

	registration, err := s.registrations.GetWithTeam(ctx, registrationID)
	if err != nil {
		return nil, registrationLookupError(err)
	}
	if !refunded {
		return nil, apperrors.ErrInvalidPaymentState
	}

	logger.WithContext(ctx).WithField("registration_id", registrationID).Info("registration refunded")
	return toRegistrationResponse(registration), nil
}

// ExpireStaleOrders fails pending orders older than the configured TTL and
// returns how many registrations were affected
func (s *PaymentService) ExpireStaleOrders(ctx context.Context) (int64, error) {
	if s.config.PendingOrderTTL <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-s.config.PendingOrderTTL)
	expired, err := s.registrations.ExpireStaleOrders(ctx, cutoff, OrderExpiredReason)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale orders: %w", err)
	}
	if expired > 0 {
		logger.WithContext(ctx).WithField("expired", expired).Info("expired stale payment orders")
	}
	return expired, nil
}

func (s *PaymentService) completedResult(registration *models.Registration, paymentID string) (*VerificationResponse, error) {
	if registration.PaymentID == nil || *registration.PaymentID != paymentID {
		return nil, apperrors.ErrPaymentAlreadyCompleted
	}
	return &VerificationResponse{
		Success:        true,
		Message:        "Payment verified successfully",
		RegistrationID: registration.ID,
		PaymentID:      paymentID,
		PaymentStatus:  models.PaymentStatusCompleted,
		PaidAt:         registration.PaidAt,
	}, nil
}

func payableState(status models.PaymentStatus) error {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusFailed:
		return nil
	case models.PaymentStatusCompleted:
		return apperrors.ErrPaymentAlreadyCompleted
	default:
		return apperrors.ErrInvalidPaymentState
	}
}

func registrationLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrRegistrationNotFound
	}
	return fmt.Errorf("failed to get registration: %w", err)
}
