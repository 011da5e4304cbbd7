package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/logger"
	"cricket-registration-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactService handles messages left through the contact form
type ContactService struct {
	messages  repository.ContactMessageRepositoryInterface
	validator *validator.Validate
}

// NewContactService creates a new contact service
func NewContactService(messages repository.ContactMessageRepositoryInterface, validator *validator.Validate) *ContactService {
	return &ContactService{messages: messages, validator: validator}
}

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200" example:"Anil"`
	Email   string `json:"email" validate:"required,email,max=255" example:"anil@x.com"`
	Subject string `json:"subject" validate:"omitempty,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// UpdateContactStatusRequest represents a triage update
type UpdateContactStatusRequest struct {
	Status models.ContactMessageStatus `json:"status" validate:"required,oneof=unread read replied" example:"read"`
}

// ContactListResponse represents a paginated list of contact messages
type ContactListResponse struct {
	Messages []models.ContactMessage `json:"messages"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

// Submit stores a contact message
func (s *ContactService) Submit(ctx context.Context, req *ContactRequest) (*models.ContactMessage, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactStatusUnread,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	logger.WithContext(ctx).WithField("message_id", message.ID).Info("contact message received")
	return message, nil
}

// List returns contact messages, newest first, optionally filtered by status
func (s *ContactService) List(ctx context.Context, status string, page, pageSize int) (*ContactListResponse, error) {
	var filter *models.ContactMessageStatus
	if status != "" {
		st := models.ContactMessageStatus(status)
		if !st.IsValid() {
			return nil, apperrors.NewValidationError("status", "must be one of: unread read replied")
		}
		filter = &st
	}

	page, pageSize, limit, offset := normalizePage(page, pageSize)
	messages, total, err := s.messages.GetAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}
	return &ContactListResponse{Messages: messages, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateStatus sets the triage status of a message
func (s *ContactService) UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateContactStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err)
	}
	if err := s.messages.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactMessageNotFound
		}
		return fmt.Errorf("failed to update contact message: %w", err)
	}
	return nil
}
