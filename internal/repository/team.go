package repository

import (
	"context"
	"time"

	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/database/models"

	"github.com/google/uuid"
)

// TeamSummary is a team row joined with its captain and roster size
type TeamSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CaptainID    uuid.UUID `json:"captain_id"`
	CaptainName  string    `json:"captain_name"`
	CaptainEmail string    `json:"captain_email"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PlayerCount  int64     `json:"player_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamRepository handles database operations for teams
type TeamRepository struct {
	gw *database.Gateway
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(gw *database.Gateway) *TeamRepository {
	return &TeamRepository{gw: gw}
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	db, cancel := r.gw.Session(ctx)
	defer cancel()
	return database.TranslateError(db.Create(team).Error)
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var team models.Team
	if err := db.First(&team, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &team, nil
}

// GetAll retrieves teams with captain details, newest first
func (r *TeamRepository) GetAll(ctx context.Context, limit, offset int) ([]TeamSummary, int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var total int64
	if err := db.Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err)
	}

	var teams []TeamSummary
	err := db.Table("teams").
		Select(`teams.id, teams.name, teams.captain_id, teams.contact_email, teams.contact_phone,
			teams.city, teams.state, teams.created_at,
			COALESCE(profiles.full_name, '') AS captain_name, users.email AS captain_email,
			(SELECT COUNT(*) FROM players WHERE players.team_id = teams.id) AS player_count`).
		Joins("JOIN users ON users.id = teams.captain_id").
		Joins("LEFT JOIN profiles ON profiles.id = teams.captain_id").
		Order("teams.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&teams).Error
	if err != nil {
		return nil, 0, database.TranslateError(err)
	}

	return teams, total, nil
}

// GetByCaptainID retrieves the teams captained by an account
func (r *TeamRepository) GetByCaptainID(ctx context.Context, captainID uuid.UUID) ([]models.Team, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var teams []models.Team
	if err := db.Where("captain_id = ?", captainID).Order("created_at DESC").Find(&teams).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return teams, nil
}

// Count returns the number of teams
func (r *TeamRepository) Count(ctx context.Context) (int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.Team{}).Count(&count).Error; err != nil {
		return 0, database.TranslateError(err)
	}
	return count, nil
}
