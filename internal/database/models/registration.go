package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration ties a team to a tournament category, its fee and payment state
type Registration struct {
	BaseModel
	TeamID             uuid.UUID          `json:"team_id" gorm:"type:uuid;not null;index"`
	TournamentCategory TournamentCategory `json:"tournament_category" gorm:"type:varchar(50);not null"`
	RegistrationFee    int                `json:"registration_fee" gorm:"not null"`
	PaymentStatus      PaymentStatus      `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	OrderID            *string            `json:"order_id,omitempty" gorm:"size:100;index"`
	OrderCreatedAt     *time.Time         `json:"order_created_at,omitempty"`
	PaymentID          *string            `json:"payment_id,omitempty" gorm:"size:100"`
	FailureReason      string             `json:"failure_reason,omitempty" gorm:"size:255"`
	PaidAt             *time.Time         `json:"paid_at,omitempty"`

	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Registration
func (Registration) TableName() string {
	return "registrations"
}

// AmountInMinorUnits is the fee expressed in the smallest currency unit (paise for INR)
func (r *Registration) AmountInMinorUnits() int64 {
	return int64(r.RegistrationFee) * 100
}
