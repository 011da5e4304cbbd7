package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrIncompletePhoto is returned when only one of photo bytes and MIME type is set
var ErrIncompletePhoto = errors.New("photo data and mime type must be set together")

// Profile holds personal attributes of a user. Its primary key is the user id.
type Profile struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	FullName      string     `json:"full_name" gorm:"not null;size:200"`
	Phone         string     `json:"phone" gorm:"size:20"`
	Address       string     `json:"address" gorm:"type:text"`
	Age           *int       `json:"age,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty" gorm:"type:date"`
	Gender        string     `json:"gender" gorm:"size:20;default:'Male'"`
	Nationality   string     `json:"nationality" gorm:"size:50;default:'Indian'"`
	TeamName      string     `json:"team_name" gorm:"size:200"`
	AadharID      *string    `json:"aadhar_id,omitempty" gorm:"uniqueIndex:idx_profiles_aadhar_id;size:12"`
	PlayerType    string     `json:"player_type" gorm:"size:50"`
	PhotoURL      string     `json:"photo_url" gorm:"size:500"`
	PhotoData     []byte     `json:"-" gorm:"type:bytea"`
	PhotoMimeType *string    `json:"photo_mime_type,omitempty" gorm:"size:50"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName returns the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// HasPhoto reports whether a stored photo is present
func (p *Profile) HasPhoto() bool {
	return len(p.PhotoData) > 0 && p.PhotoMimeType != nil && *p.PhotoMimeType != ""
}

// BeforeSave keeps photo bytes and MIME type paired
func (p *Profile) BeforeSave(tx *gorm.DB) error {
	hasData := len(p.PhotoData) > 0
	hasType := p.PhotoMimeType != nil && *p.PhotoMimeType != ""
	if hasData != hasType {
		return ErrIncompletePhoto
	}
	return nil
}
