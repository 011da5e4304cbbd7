package models

import (
	"github.com/google/uuid"
)

// Team is created by a user who becomes its captain
type Team struct {
	BaseModel
	Name         string    `json:"name" gorm:"not null;size:200"`
	CaptainID    uuid.UUID `json:"captain_id" gorm:"type:uuid;not null;index"`
	ContactEmail string    `json:"contact_email" gorm:"not null;size:255"`
	ContactPhone string    `json:"contact_phone" gorm:"not null;size:20"`
	City         string    `json:"city" gorm:"not null;size:100"`
	State        string    `json:"state" gorm:"not null;size:100"`

	Captain *User    `json:"captain,omitempty" gorm:"foreignKey:CaptainID;constraint:OnDelete:RESTRICT"`
	Players []Player `json:"players,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}
