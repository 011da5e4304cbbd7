package repository

import (
	"context"
	"fmt"

	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerRepository handles database operations for team rosters
type PlayerRepository struct {
	gw *database.Gateway
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(gw *database.Gateway) *PlayerRepository {
	return &PlayerRepository{gw: gw}
}

// AddBatch inserts players for teamID in one statement. The team row is locked
// and the roster re-counted first, so concurrent batches cannot push the roster
// past maxRoster. Either all players are persisted or none.
func (r *PlayerRepository) AddBatch(ctx context.Context, teamID uuid.UUID, players []models.Player, maxRoster int) error {
	return r.gw.Transaction(ctx, func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&team, "id = ?", teamID).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Player{}).Where("team_id = ?", teamID).Count(&existing).Error; err != nil {
			return err
		}
		if maxRoster > 0 && int(existing)+len(players) > maxRoster {
			return apperrors.NewValidationError("players",
				fmt.Sprintf("roster cannot exceed %d players (currently %d)", maxRoster, existing))
		}

		for i := range players {
			players[i].TeamID = teamID
		}
		return tx.Create(&players).Error
	})
}

// GetByTeamID lists the roster in insertion order
func (r *PlayerRepository) GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var players []models.Player
	if err := db.Where("team_id = ?", teamID).Order("created_at ASC, id ASC").Find(&players).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return players, nil
}

// CountByTeamID returns the roster size of a team
func (r *PlayerRepository) CountByTeamID(ctx context.Context, teamID uuid.UUID) (int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.Player{}).Where("team_id = ?", teamID).Count(&count).Error; err != nil {
		return 0, database.TranslateError(err)
	}
	return count, nil
}

// Count returns the number of players across all teams
func (r *PlayerRepository) Count(ctx context.Context) (int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.Player{}).Count(&count).Error; err != nil {
		return 0, database.TranslateError(err)
	}
	return count, nil
}
