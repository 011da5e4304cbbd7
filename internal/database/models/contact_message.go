package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a message left by a site visitor
type ContactMessage struct {
	ID        uuid.UUID            `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string               `json:"name" gorm:"not null;size:200"`
	Email     string               `json:"email" gorm:"not null;size:255"`
	Subject   string               `json:"subject" gorm:"not null;size:255;default:''"`
	Message   string               `json:"message" gorm:"type:text;not null"`
	Status    ContactMessageStatus `json:"status" gorm:"type:varchar(20);not null;default:'unread';index"`
	CreatedAt time.Time            `json:"created_at"`
}

// TableName returns the table name for ContactMessage
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// BeforeCreate sets the UUID and default status if not already set
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = ContactStatusUnread
	}
	return nil
}
