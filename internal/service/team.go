package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/logger"
	"cricket-registration-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamService handles business logic for teams
type TeamService struct {
	teams     repository.TeamRepositoryInterface
	players   repository.PlayerRepositoryInterface
	validator *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(teams repository.TeamRepositoryInterface, players repository.PlayerRepositoryInterface, validator *validator.Validate) *TeamService {
	return &TeamService{
		teams:     teams,
		players:   players,
		validator: validator,
	}
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name         string `json:"name" validate:"required,max=200" example:"Warriors"`
	ContactEmail string `json:"contactEmail" validate:"required,email,max=255" example:"cap@x.com"`
	ContactPhone string `json:"contactPhone" validate:"required,max=20" example:"9876543210"`
	City         string `json:"city" validate:"required,max=100" example:"Mumbai"`
	State        string `json:"state" validate:"required,max=100" example:"Maharashtra"`
}

// TeamResponse represents the response for team operations
type TeamResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CaptainID    uuid.UUID `json:"captainId"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PlayerCount  int64     `json:"playerCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TeamListResponse represents a paginated list of teams
type TeamListResponse struct {
	Teams    []repository.TeamSummary `json:"teams"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

// CreateTeam creates a team captained by the caller
func (s *TeamService) CreateTeam(ctx context.Context, captainID uuid.UUID, req *CreateTeamRequest) (*TeamResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	team := &models.Team{
		Name:         req.Name,
		CaptainID:    captainID,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
	}
	if err := s.teams.Create(ctx, team); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	logger.WithContext(ctx).WithField("team_id", team.ID).Info("team created")
	return toTeamResponse(team, 0), nil
}

// GetTeam retrieves a team with its roster size
func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (*TeamResponse, error) {
	team, err := s.loadTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.players.CountByTeamID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}
	return toTeamResponse(team, count), nil
}

// ListTeams lists teams with captain details
func (s *TeamService) ListTeams(ctx context.Context, page, pageSize int) (*TeamListResponse, error) {
	page, pageSize, limit, offset := normalizePage(page, pageSize)
	teams, total, err := s.teams.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		teams = []repository.TeamSummary{}
	}
	return &TeamListResponse{Teams: teams, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListMyTeams lists the teams captained by the caller
func (s *TeamService) ListMyTeams(ctx context.Context, captainID uuid.UUID) ([]TeamResponse, error) {
	teams, err := s.teams.GetByCaptainID(ctx, captainID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	responses := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		count, err := s.players.CountByTeamID(ctx, teams[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count players: %w", err)
		}
		responses = append(responses, *toTeamResponse(&teams[i], count))
	}
	return responses, nil
}

func (s *TeamService) loadTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return loadTeam(ctx, s.teams, id)
}

func loadTeam(ctx context.Context, teams repository.TeamRepositoryInterface, id uuid.UUID) (*models.Team, error) {
	team, err := teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func toTeamResponse(team *models.Team, playerCount int64) *TeamResponse {
	return &TeamResponse{
		ID:           team.ID,
		Name:         team.Name,
		CaptainID:    team.CaptainID,
		ContactEmail: team.ContactEmail,
		ContactPhone: team.ContactPhone,
		City:         team.City,
		State:        team.State,
		PlayerCount:  playerCount,
		CreatedAt:    team.CreatedAt,
	}
}
