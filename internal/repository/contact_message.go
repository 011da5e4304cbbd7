package repository

import (
	"context"

	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessageRepository handles database operations for contact messages
type ContactMessageRepository struct {
	gw *database.Gateway
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(gw *database.Gateway) *ContactMessageRepository {
	return &ContactMessageRepository{gw: gw}
}

// Create stores a new message
func (r *ContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	db, cancel := r.gw.Session(ctx)
	defer cancel()
	return database.TranslateError(db.Create(message).Error)
}

// GetAll retrieves messages newest first, optionally filtered by status
func (r *ContactMessageRepository) GetAll(ctx context.Context, status *models.ContactMessageStatus, limit, offset int) ([]models.ContactMessage, int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	query := db.Model(&models.ContactMessage{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err)
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error; err != nil {
		return nil, 0, database.TranslateError(err)
	}
	return messages, total, nil
}

// UpdateStatus sets the triage status. Returns gorm.ErrRecordNotFound when no message matched.
func (r *ContactMessageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContactMessageStatus) error {
	affected, err := r.gw.Exec(ctx, `UPDATE contact_messages SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of messages, optionally in one status
func (r *ContactMessageRepository) Count(ctx context.Context, status *models.ContactMessageStatus) (int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	query := db.Model(&models.ContactMessage{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, database.TranslateError(err)
	}
	return count, nil
}
