package models

// User is an account: the identity anchor for sessions, profiles and team captaincy
type User struct {
	BaseModel
	Email         string `json:"email" gorm:"uniqueIndex:idx_users_email;not null;size:255"`
	PasswordHash  string `json:"-" gorm:"not null;size:100"`
	EmailVerified bool   `json:"email_verified" gorm:"not null;default:false"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
