package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player is a roster entry of exactly one team
type Player struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TeamID          uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`
	Name            string    `json:"name" gorm:"not null;size:200"`
	Age             int       `json:"age" gorm:"not null"`
	Position        string    `json:"position" gorm:"size:50"`
	ExperienceYears int       `json:"experience_years" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the table name for Player
func (Player) TableName() string {
	return "players"
}

// BeforeCreate sets the UUID if not already set
func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
