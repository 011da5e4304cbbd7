package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"cricket-registration-backend/internal/auth"
	"cricket-registration-backend/internal/config"
	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/database/models"
	"cricket-registration-backend/internal/tournament"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type AccountData struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	FullName    string `yaml:"full_name"`
	Phone       string `yaml:"phone,omitempty"`
	City        string `yaml:"city,omitempty"`
	PlayerType  string `yaml:"player_type,omitempty"`
	Nationality string `yaml:"nationality,omitempty"`
}

type PlayerData struct {
	Name            string `yaml:"name"`
	Age             int    `yaml:"age"`
	Position        string `yaml:"position,omitempty"`
	ExperienceYears int    `yaml:"experience_years,omitempty"`
}

type RegistrationData struct {
	Category      string `yaml:"category"`
	PaymentStatus string `yaml:"payment_status"`
}

type TeamData struct {
	Name         string            `yaml:"name"`
	CaptainEmail string            `yaml:"captain_email"`
	ContactPhone string            `yaml:"contact_phone"`
	City         string            `yaml:"city"`
	State        string            `yaml:"state"`
	Players      []PlayerData      `yaml:"players,omitempty"`
	Registration *RegistrationData `yaml:"registration,omitempty"`
}

type ContactMessageData struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Subject string `yaml:"subject,omitempty"`
	Message string `yaml:"message"`
	Status  string `yaml:"status,omitempty"`
}

type DemoData struct {
	Accounts        []AccountData        `yaml:"accounts"`
	Teams           []TeamData           `yaml:"teams"`
	ContactMessages []ContactMessageData `yaml:"contact_messages"`
}

func main() {
	log.Println("🚀 Loading demo data from YAML...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	path := "scripts/data/demo.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	data, err := loadDemoData(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	if err := seed(db, data, tournament.FeesFromConfig(cfg)); err != nil {
		log.Fatalf("Failed to load demo data: %v", err)
	}

	log.Println("✅ Demo data loaded successfully!")
}

func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress SQL logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDemoData(path string) (*DemoData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data DemoData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &data, nil
}

func seed(db *gorm.DB, data *DemoData, fees tournament.FeeSchedule) error {
	accounts := make(map[string]*models.User)
	created := 0
	for _, accountData := range data.Accounts {
		user, isNew, err := createAccount(db, accountData)
		if err != nil {
			return fmt.Errorf("failed to create account %s: %w", accountData.Email, err)
		}
		accounts[accountData.Email] = user
		if isNew {
			created++
		}
	}
	log.Printf("👤 Accounts: %d created, %d total", created, len(data.Accounts))

	created = 0
	for _, teamData := range data.Teams {
		captain := accounts[teamData.CaptainEmail]
		if captain == nil {
			return fmt.Errorf("captain %s not found for team %s", teamData.CaptainEmail, teamData.Name)
		}
		isNew, err := createTeam(db, teamData, captain, fees)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", teamData.Name, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("🏏 Teams: %d created, %d total", created, len(data.Teams))

	created = 0
	for _, messageData := range data.ContactMessages {
		isNew, err := createContactMessage(db, messageData)
		if err != nil {
			return fmt.Errorf("failed to create contact message from %s: %w", messageData.Email, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("✉️  Contact messages: %d created, %d total", created, len(data.ContactMessages))

	return nil
}

func createAccount(db *gorm.DB, accountData AccountData) (*models.User, bool, error) {
	var user models.User
	err := db.Where("email = ?", accountData.Email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query account: %w", err)
	}

	hash, err := auth.HashPassword(accountData.Password)
	if err != nil {
		return nil, false, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user = models.User{Email: accountData.Email, PasswordHash: hash}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{
			ID:          user.ID,
			FullName:    accountData.FullName,
			Phone:       accountData.Phone,
			Address:     accountData.City,
			PlayerType:  accountData.PlayerType,
			Nationality: accountData.Nationality,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func createTeam(db *gorm.DB, teamData TeamData, captain *models.User, fees tournament.FeeSchedule) (bool, error) {
	var existing models.Team
	err := db.Where("name = ? AND captain_id = ?", teamData.Name, captain.ID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to query team: %w", err)
	}

	return true, db.Transaction(func(tx *gorm.DB) error {
		team := models.Team{
			Name:         teamData.Name,
			CaptainID:    captain.ID,
			ContactEmail: captain.Email,
			ContactPhone: teamData.ContactPhone,
			City:         teamData.City,
			State:        teamData.State,
		}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		if len(teamData.Players) > 0 {
			players := make([]models.Player, 0, len(teamData.Players))
			for _, p := range teamData.Players {
				players = append(players, models.Player{
					TeamID:          team.ID,
					Name:            p.Name,
					Age:             p.Age,
					Position:        p.Position,
					ExperienceYears: p.ExperienceYears,
				})
			}
			if err := tx.Create(&players).Error; err != nil {
				return err
			}
		}

		if teamData.Registration == nil {
			return nil
		}
		return tx.Create(newRegistration(team.ID, teamData.Registration, fees)).Error
	})
}

func newRegistration(teamID uuid.UUID, data *RegistrationData, fees tournament.FeeSchedule) *models.Registration {
	category := models.TournamentCategory(data.Category)
	status := models.PaymentStatus(data.PaymentStatus)
	if !status.IsValid() {
		status = models.PaymentStatusPending
	}

	registration := &models.Registration{
		TeamID:             teamID,
		TournamentCategory: category,
		RegistrationFee:    fees.FeeFor(category),
		PaymentStatus:      status,
	}
	if status == models.PaymentStatusCompleted || status == models.PaymentStatusRefunded {
		now := time.Now().UTC()
		orderID := fmt.Sprintf("order_demo_%x", teamID[:6])
		paymentID := fmt.Sprintf("pay_demo_%x", teamID[:6])
		registration.OrderID = &orderID
		registration.OrderCreatedAt = &now
		registration.PaymentID = &paymentID
		registration.PaidAt = &now
	}
	return registration
}

func createContactMessage(db *gorm.DB, messageData ContactMessageData) (bool, error) {
	var count int64
	if err := db.Model(&models.ContactMessage{}).
		Where("email = ? AND message = ?", messageData.Email, messageData.Message).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to query contact message: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	status := models.ContactMessageStatus(messageData.Status)
	if !status.IsValid() {
		status = models.ContactStatusUnread
	}
	message := models.ContactMessage{
		Name:    messageData.Name,
		Email:   messageData.Email,
		Subject: messageData.Subject,
		Message: messageData.Message,
		Status:  status,
	}
	return true, db.Create(&message).Error
}
