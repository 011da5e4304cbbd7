package testutils

import (
	"fmt"
	"time"

	"cricket-registration-backend/internal/database/models"

	"github.com/google/uuid"
)

// UserFactory provides methods to create test account data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test account with a unique email and a placeholder password hash
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email:        fmt.Sprintf("player-%s@test.com", id.String()[:8]),
		PasswordHash: "$2a$12$C6UzMDM.H6dfI/f/IKcEeO5D0H1d8S0yJ1s8m2kQ1x4rX0nN6m0aO",
	}
}

// WithEmail sets a custom email for the account
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// ProfileFactory provides methods to create test Profile data
type ProfileFactory struct{}

// NewProfileFactory creates a new ProfileFactory
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// Create creates a test Profile; the ID is assigned when stored with its account
func (f *ProfileFactory) Create() *models.Profile {
	age := 25
	return &models.Profile{
		FullName:    "Rohit Test",
		Phone:       "9876543210",
		Age:         &age,
		Gender:      "Male",
		Nationality: "Indian",
	}
}

// WithAadhar sets a custom Aadhar ID
func (f *ProfileFactory) WithAadhar(aadhar string) *models.Profile {
	profile := f.Create()
	profile.AadharID = &aadhar
	return profile
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team without a captain
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		Name:         "Warriors",
		ContactEmail: "warriors@test.com",
		ContactPhone: "9876543210",
		City:         "Mumbai",
		State:        "Maharashtra",
	}
}

// WithCaptain creates a test Team captained by captainID
func (f *TeamFactory) WithCaptain(captainID uuid.UUID) *models.Team {
	team := f.Create()
	team.CaptainID = captainID
	return team
}

// PlayerFactory provides methods to create test Player data
type PlayerFactory struct{}

// NewPlayerFactory creates a new PlayerFactory
func NewPlayerFactory() *PlayerFactory {
	return &PlayerFactory{}
}

// Create creates a single test Player aged 20
func (f *PlayerFactory) Create() models.Player {
	return models.Player{Name: "Player", Age: 20, Position: "Batsman"}
}

// Roster creates n players aged between 20 and 30
func (f *PlayerFactory) Roster(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{
			Name:            fmt.Sprintf("Player %d", i+1),
			Age:             20 + i%11,
			Position:        "All-rounder",
			ExperienceYears: i % 5,
		}
	}
	return players
}

// RegistrationFactory provides methods to create test Registration data
type RegistrationFactory struct{}

// NewRegistrationFactory creates a new RegistrationFactory
func NewRegistrationFactory() *RegistrationFactory {
	return &RegistrationFactory{}
}

// Create creates a pending Open registration for teamID
func (f *RegistrationFactory) Create(teamID uuid.UUID) *models.Registration {
	return &models.Registration{
		TeamID:             teamID,
		TournamentCategory: models.CategoryOpen,
		RegistrationFee:    5000,
		PaymentStatus:      models.PaymentStatusPending,
	}
}

// WithStatus creates a registration for teamID in status
func (f *RegistrationFactory) WithStatus(teamID uuid.UUID, status models.PaymentStatus) *models.Registration {
	registration := f.Create(teamID)
	registration.PaymentStatus = status
	return registration
}

// ContactMessageFactory provides methods to create test ContactMessage data
type ContactMessageFactory struct{}

// NewContactMessageFactory creates a new ContactMessageFactory
func NewContactMessageFactory() *ContactMessageFactory {
	return &ContactMessageFactory{}
}

// Create creates an unread test message
func (f *ContactMessageFactory) Create() *models.ContactMessage {
	return &models.ContactMessage{
		Name:    "Visitor",
		Email:   "visitor@test.com",
		Subject: "Schedule",
		Message: "When does the tournament start?",
		Status:  models.ContactStatusUnread,
	}
}

// FactorySet provides access to all factories
type FactorySet struct {
	User           *UserFactory
	Profile        *ProfileFactory
	Team           *TeamFactory
	Player         *PlayerFactory
	Registration   *RegistrationFactory
	ContactMessage *ContactMessageFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:           NewUserFactory(),
		Profile:        NewProfileFactory(),
		Team:           NewTeamFactory(),
		Player:         NewPlayerFactory(),
		Registration:   NewRegistrationFactory(),
		ContactMessage: NewContactMessageFactory(),
	}
}
