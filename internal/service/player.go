package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cricket-registration-backend/internal/auth"
	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/logger"
	"cricket-registration-backend/internal/repository"
	"cricket-registration-backend/internal/tournament"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerService handles roster assembly
type PlayerService struct {
	teams   repository.TeamRepositoryInterface
	players repository.PlayerRepositoryInterface
	rules   tournament.Rules
}

// NewPlayerService creates a new player service enforcing rules
func NewPlayerService(teams repository.TeamRepositoryInterface, players repository.PlayerRepositoryInterface, rules tournament.Rules) *PlayerService {
	return &PlayerService{
		teams:   teams,
		players: players,
		rules:   rules,
	}
}

// PlayerInput is one roster entry in an add-players request
type PlayerInput struct {
	Name            string `json:"name" example:"Virat"`
	Age             int    `json:"age" example:"24"`
	Position        string `json:"position" example:"Batsman"`
	ExperienceYears int    `json:"experienceYears" example:"3"`
}

// Validate checks a player against the configured age bounds
func (p PlayerInput) Validate(rules tournament.Rules) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Age, validation.Required, validation.Min(rules.MinAge), validation.Max(rules.MaxAge)),
		validation.Field(&p.Position, validation.Length(0, 50)),
		validation.Field(&p.ExperienceYears, validation.Min(0), validation.Max(60)),
	)
}

// AddPlayersRequest represents a batch of players for one team
type AddPlayersRequest struct {
	Players []PlayerInput `json:"players"`
}

// PlayerResponse represents a roster entry
type PlayerResponse struct {
	ID              uuid.UUID `json:"id"`
	TeamID          uuid.UUID `json:"teamId"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Position        string    `json:"position"`
	ExperienceYears int       `json:"experienceYears"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AddPlayers appends a batch to the team roster. Only the captain may add
// players. Every player is validated first and the batch is written in a
// single transaction, so either all players are stored or none.
func (s *PlayerService) AddPlayers(ctx context.Context, callerID, teamID uuid.UUID, req *AddPlayersRequest) ([]PlayerResponse, error) {
	team, err := loadTeam(ctx, s.teams, teamID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnership(callerID, team.CaptainID); err != nil {
		return nil, err
	}

	if len(req.Players) == 0 {
		return nil, apperrors.NewValidationError("players", "at least one player is required")
	}
	if len(req.Players) > s.rules.MaxPlayers {
		return nil, apperrors.NewValidationError("players",
			fmt.Sprintf("roster cannot exceed %d players", s.rules.MaxPlayers))
	}

	players := make([]models.Player, 0, len(req.Players))
	for i, input := range req.Players {
		input.Name = strings.TrimSpace(input.Name)
		input.Position = strings.TrimSpace(input.Position)
		if err := input.Validate(s.rules); err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("players[%d]", i), err.Error())
		}
		players = append(players, models.Player{
			Name:            input.Name,
			Age:             input.Age,
			Position:        input.Position,
			ExperienceYears: input.ExperienceYears,
		})
	}

	if err := s.players.AddBatch(ctx, teamID, players, s.rules.MaxPlayers); err != nil {
		if apperrors.IsValidation(err) {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to add players: %w", err)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"team_id": teamID,
		"added":   len(players),
	}).Info("players added")

	responses := make([]PlayerResponse, 0, len(players))
	for i := range players {
		responses = append(responses, toPlayerResponse(&players[i]))
	}
	return responses, nil
}

// ListPlayers returns the roster of a team
func (s *PlayerService) ListPlayers(ctx context.Context, teamID uuid.UUID) ([]PlayerResponse, error) {
	if _, err := loadTeam(ctx, s.teams, teamID); err != nil {
		return nil, err
	}
	players, err := s.players.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	responses := make([]PlayerResponse, 0, len(players))
	for i := range players {
		responses = append(responses, toPlayerResponse(&players[i]))
	}
	return responses, nil
}

func toPlayerResponse(p *models.Player) PlayerResponse {
	return PlayerResponse{
		ID:              p.ID,
		TeamID:          p.TeamID,
		Name:            p.Name,
		Age:             p.Age,
		Position:        p.Position,
		ExperienceYears: p.ExperienceYears,
		CreatedAt:       p.CreatedAt,
	}
}
