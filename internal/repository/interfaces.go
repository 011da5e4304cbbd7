package repository

import (
	"context"
	"time"

	"cricket-registration-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for account repository operations
type UserRepositoryInterface interface {
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetWithProfile(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetEmailByID(ctx context.Context, id uuid.UUID) (string, error)
	Count(ctx context.Context) (int64, error)
}

// ProfileRepositoryInterface defines the interface for profile repository operations
type ProfileRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, data []byte, mimeType, photoURL string) error
	GetPhoto(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	List(ctx context.Context, limit, offset int) ([]ProfileSummary, int64, error)
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetAll(ctx context.Context, limit, offset int) ([]TeamSummary, int64, error)
	GetByCaptainID(ctx context.Context, captainID uuid.UUID) ([]models.Team, error)
	Count(ctx context.Context) (int64, error)
}

// PlayerRepositoryInterface defines the interface for roster repository operations
type PlayerRepositoryInterface interface {
	AddBatch(ctx context.Context, teamID uuid.UUID, players []models.Player, maxRoster int) error
	GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	CountByTeamID(ctx context.Context, teamID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// RegistrationRepositoryInterface defines the interface for registration repository operations.
// Every Mark*/Attach* method is a compare-and-set: it reports false when the
// row was not in the expected state and nothing was written.
type RegistrationRepositoryInterface interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	GetWithTeam(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	GetLatestByTeamID(ctx context.Context, teamID uuid.UUID) (*models.Registration, error)
	HasActive(ctx context.Context, teamID uuid.UUID) (bool, error)
	List(ctx context.Context, teamID *uuid.UUID, limit, offset int) ([]RegistrationSummary, int64, error)
	AttachOrder(ctx context.Context, id uuid.UUID, orderID string, at time.Time) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, orderID, paymentID string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, orderID, reason string) (bool, error)
	MarkRefunded(ctx context.Context, id uuid.UUID) (bool, error)
	ExpireStaleOrders(ctx context.Context, createdBefore time.Time, reason string) (int64, error)
	CountByStatus(ctx context.Context, status models.PaymentStatus) (int64, error)
	SumFeesByStatus(ctx context.Context, status models.PaymentStatus) (int64, error)
}

// ContactMessageRepositoryInterface defines the interface for contact message repository operations
type ContactMessageRepositoryInterface interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	GetAll(ctx context.Context, status *models.ContactMessageStatus, limit, offset int) ([]models.ContactMessage, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContactMessageStatus) error
	Count(ctx context.Context, status *models.ContactMessageStatus) (int64, error)
}
