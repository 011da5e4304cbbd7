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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamStage is the position of a team in the registration workflow
type TeamStage string

const (
	StageTeamCreated              TeamStage = "TEAM_CREATED"
	StageRosterIncomplete         TeamStage = "ROSTER_INCOMPLETE"
	StageRosterComplete           TeamStage = "ROSTER_COMPLETE"
	StageRegisteredPendingPayment TeamStage = "REGISTERED_PENDING_PAYMENT"
	StagePaymentCompleted         TeamStage = "PAYMENT_COMPLETED"
	StagePaymentFailed            TeamStage = "PAYMENT_FAILED"
	StagePaymentRefunded          TeamStage = "PAYMENT_REFUNDED"
)

// RegistrationService handles tournament registrations
type RegistrationService struct {
	teams         repository.TeamRepositoryInterface
	players       repository.PlayerRepositoryInterface
	registrations repository.RegistrationRepositoryInterface
	fees          tournament.FeeSchedule
	rules         tournament.Rules
	validator     *validator.Validate
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	teams repository.TeamRepositoryInterface,
	players repository.PlayerRepositoryInterface,
	registrations repository.RegistrationRepositoryInterface,
	fees tournament.FeeSchedule,
	rules tournament.Rules,
	validator *validator.Validate,
) *RegistrationService {
	return &RegistrationService{
		teams:         teams,
		players:       players,
		registrations: registrations,
		fees:          fees,
		rules:         rules,
		validator:     validator,
	}
}

// CreateRegistrationRequest represents the request to register a team.
// RegistrationFee is accepted for compatibility and ignored.
type CreateRegistrationRequest struct {
	TeamID             uuid.UUID `json:"teamId" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	TournamentCategory string    `json:"tournamentCategory" validate:"required,max=50" example:"Open"`
	RegistrationFee    *int      `json:"registrationFee,omitempty" swaggerignore:"true"`
}

// RegistrationResponse represents a registration
type RegistrationResponse struct {
	ID                 uuid.UUID            `json:"id"`
	TeamID             uuid.UUID            `json:"teamId"`
	TeamName           string               `json:"teamName,omitempty"`
	TournamentCategory string               `json:"tournamentCategory"`
	RegistrationFee    int                  `json:"registrationFee"`
	PaymentStatus      models.PaymentStatus `json:"paymentStatus"`
	OrderID            *string              `json:"orderId,omitempty"`
	PaymentID          *string              `json:"paymentId,omitempty"`
	FailureReason      string               `json:"failureReason,omitempty"`
	PaidAt             *time.Time           `json:"paidAt,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
}

// RegistrationListResponse represents a paginated list of registrations
type RegistrationListResponse struct {
	Registrations []repository.RegistrationSummary `json:"registrations"`
	Total         int64                            `json:"total"`
	Page          int                              `json:"page"`
	PageSize      int                              `json:"page_size"`
}

// TeamStatusResponse reports where a team stands in the workflow
type TeamStatusResponse struct {
	TeamID       uuid.UUID             `json:"teamId"`
	Stage        TeamStage             `json:"stage"`
	PlayerCount  int64                 `json:"playerCount"`
	MinPlayers   int                   `json:"minPlayers"`
	MaxPlayers   int                   `json:"maxPlayers"`
	Registration *RegistrationResponse `json:"registration,omitempty"`
}

// CreateRegistration registers a team with a complete roster. The fee is
// derived from the category.
func (s *RegistrationService) CreateRegistration(ctx context.Context, callerID uuid.UUID, req *CreateRegistrationRequest) (*RegistrationResponse, error) {
	req.TournamentCategory = strings.TrimSpace(req.TournamentCategory)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	team, err := loadTeam(ctx, s.teams, req.TeamID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnership(callerID, team.CaptainID); err != nil {
		return nil, err
	}

	size, err := s.players.CountByTeamID(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}
	if !s.rules.RosterComplete(int(size)) {
		return nil, apperrors.NewValidationError("players",
			fmt.Sprintf("team must have between %d and %d players, has %d", s.rules.MinPlayers, s.rules.MaxPlayers, size))
	}

	active, err := s.registrations.HasActive(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check registrations: %w", err)
	}
	if active {
		return nil, apperrors.ErrActiveRegistrationExists
	}

	category := models.TournamentCategory(req.TournamentCategory)
	registration := &models.Registration{
		TeamID:             team.ID,
		TournamentCategory: category,
		RegistrationFee:    s.fees.FeeFor(category),
		PaymentStatus:      models.PaymentStatusPending,
	}
	if err := s.registrations.Create(ctx, registration); err != nil {
		if apperrors.IsAlreadyExists(err) {
			return nil, apperrors.ErrActiveRegistrationExists
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	entry := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"registration_id": registration.ID,
		"team_id":         team.ID,
		"fee":             registration.RegistrationFee,
	})
	if req.RegistrationFee != nil && *req.RegistrationFee != registration.RegistrationFee {
		entry.WithField("client_fee", *req.RegistrationFee).Warn("ignoring client supplied registration fee")
	}
	entry.Info("registration created")

	resp := toRegistrationResponse(registration)
	resp.TeamName = team.Name
	return resp, nil
}

// ListRegistrations lists registrations, optionally for one team
func (s *RegistrationService) ListRegistrations(ctx context.Context, teamID *uuid.UUID, page, pageSize int) (*RegistrationListResponse, error) {
	page, pageSize, limit, offset := normalizePage(page, pageSize)
	registrations, total, err := s.registrations.List(ctx, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	if registrations == nil {
		registrations = []repository.RegistrationSummary{}
	}
	return &RegistrationListResponse{
		Registrations: registrations,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetTeamStatus reports the workflow stage of a team to its captain
func (s *RegistrationService) GetTeamStatus(ctx context.Context, callerID, teamID uuid.UUID) (*TeamStatusResponse, error) {
	team, err := loadTeam(ctx, s.teams, teamID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnership(callerID, team.CaptainID); err != nil {
		return nil, err
	}

	size, err := s.players.CountByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}

	status := &TeamStatusResponse{
		TeamID:      teamID,
		PlayerCount: size,
		MinPlayers:  s.rules.MinPlayers,
		MaxPlayers:  s.rules.MaxPlayers,
	}

	latest, err := s.registrations.GetLatestByTeamID(ctx, teamID)
	switch {
	case err == nil:
		status.Registration = toRegistrationResponse(latest)
		status.Registration.TeamName = team.Name
		status.Stage = stageForPayment(latest.PaymentStatus)
		return status, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	switch {
	case size == 0:
		status.Stage = StageTeamCreated
	case s.rules.RosterComplete(int(size)):
		status.Stage = StageRosterComplete
	default:
		status.Stage = StageRosterIncomplete
	}
	return status, nil
}

func stageForPayment(status models.PaymentStatus) TeamStage {
	switch status {
	case models.PaymentStatusCompleted:
		return StagePaymentCompleted
	case models.PaymentStatusFailed:
		return StagePaymentFailed
	case models.PaymentStatusRefunded:
		return StagePaymentRefunded
	default:
		return StageRegisteredPendingPayment
	}
}

func toRegistrationResponse(r *models.Registration) *RegistrationResponse {
	resp := &RegistrationResponse{
		ID:                 r.ID,
		TeamID:             r.TeamID,
		TournamentCategory: string(r.TournamentCategory),
		RegistrationFee:    r.RegistrationFee,
		PaymentStatus:      r.PaymentStatus,
		OrderID:            r.OrderID,
		PaymentID:          r.PaymentID,
		FailureReason:      r.FailureReason,
		PaidAt:             r.PaidAt,
		CreatedAt:          r.CreatedAt,
	}
	if r.Team != nil {
		resp.TeamName = r.Team.Name
	}
	return resp
}
