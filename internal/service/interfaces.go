package service

import (
	"context"

	"cricket-registration-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// AccountServiceInterface defines the interface for account service
type AccountServiceInterface interface {
	Signup(ctx context.Context, req *SignupRequest) (*SessionResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*SessionResponse, error)
	Me(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error)
	CheckEmail(ctx context.Context, email string) (*EmailCheckResponse, error)
}

// ProfileServiceInterface defines the interface for profile service
type ProfileServiceInterface interface {
	UpdateProfile(ctx context.Context, accountID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error)
	UploadPhoto(ctx context.Context, accountID uuid.UUID, data []byte, mimeType string) (*PhotoUploadResponse, error)
	GetPhoto(ctx context.Context, accountID uuid.UUID) ([]byte, string, error)
	ListPlayers(ctx context.Context, page, pageSize int) (*PlayerDirectoryResponse, error)
}

// TeamServiceInterface defines the interface for team service
type TeamServiceInterface interface {
	CreateTeam(ctx context.Context, captainID uuid.UUID, req *CreateTeamRequest) (*TeamResponse, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*TeamResponse, error)
	ListTeams(ctx context.Context, page, pageSize int) (*TeamListResponse, error)
	ListMyTeams(ctx context.Context, captainID uuid.UUID) ([]TeamResponse, error)
}

// PlayerServiceInterface defines the interface for player service
type PlayerServiceInterface interface {
	AddPlayers(ctx context.Context, callerID, teamID uuid.UUID, req *AddPlayersRequest) ([]PlayerResponse, error)
	ListPlayers(ctx context.Context, teamID uuid.UUID) ([]PlayerResponse, error)
}

// RegistrationServiceInterface defines the interface for registration service
type RegistrationServiceInterface interface {
	CreateRegistration(ctx context.Context, callerID uuid.UUID, req *CreateRegistrationRequest) (*RegistrationResponse, error)
	ListRegistrations(ctx context.Context, teamID *uuid.UUID, page, pageSize int) (*RegistrationListResponse, error)
	GetTeamStatus(ctx context.Context, callerID, teamID uuid.UUID) (*TeamStatusResponse, error)
}

// PaymentServiceInterface defines the interface for payment service
type PaymentServiceInterface interface {
	CreateOrder(ctx context.Context, callerID uuid.UUID, req *CreateOrderRequest) (*OrderResponse, error)
	VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*VerificationResponse, error)
	ReportFailure(ctx context.Context, callerID uuid.UUID, req *ReportFailureRequest) (*RegistrationResponse, error)
	Refund(ctx context.Context, registrationID uuid.UUID) (*RegistrationResponse, error)
	ExpireStaleOrders(ctx context.Context) (int64, error)
}

// ContactServiceInterface defines the interface for contact service
type ContactServiceInterface interface {
	Submit(ctx context.Context, req *ContactRequest) (*models.ContactMessage, error)
	List(ctx context.Context, status string, page, pageSize int) (*ContactListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *UpdateContactStatusRequest) error
}

// AdminServiceInterface defines the interface for admin service
type AdminServiceInterface interface {
	Stats(ctx context.Context) (*StatsResponse, error)
}

var (
	_ AccountServiceInterface      = (*AccountService)(nil)
	_ ProfileServiceInterface      = (*ProfileService)(nil)
	_ TeamServiceInterface         = (*TeamService)(nil)
	_ PlayerServiceInterface       = (*PlayerService)(nil)
	_ RegistrationServiceInterface = (*RegistrationService)(nil)
	_ PaymentServiceInterface      = (*PaymentService)(nil)
	_ ContactServiceInterface      = (*ContactService)(nil)
	_ AdminServiceInterface        = (*AdminService)(nil)
)
