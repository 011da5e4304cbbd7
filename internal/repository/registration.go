package repository

import (
	"context"
	"time"

	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationSummary is a registration row joined with its team name
type RegistrationSummary struct {
	ID                 uuid.UUID                 `json:"id"`
	TeamID             uuid.UUID                 `json:"team_id"`
	TeamName           string                    `json:"team_name"`
	TournamentCategory models.TournamentCategory `json:"tournament_category"`
	RegistrationFee    int                       `json:"registration_fee"`
	PaymentStatus      models.PaymentStatus      `json:"payment_status"`
	OrderID            *string                   `json:"order_id,omitempty"`
	PaymentID          *string                   `json:"payment_id,omitempty"`
	PaidAt             *time.Time                `json:"paid_at,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

// RegistrationRepository handles database operations for registrations
type RegistrationRepository struct {
	gw *database.Gateway
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(gw *database.Gateway) *RegistrationRepository {
	return &RegistrationRepository{gw: gw}
}

// Create inserts a registration. A second active registration for the same
// team fails with an AlreadyExists error from the partial unique index.
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	db, cancel := r.gw.Session(ctx)
	defer cancel()
	return database.TranslateError(db.Create(registration).Error)
}

// GetByID retrieves a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var registration models.Registration
	if err := db.First(&registration, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &registration, nil
}

// GetWithTeam retrieves a registration with its team preloaded
func (r *RegistrationRepository) GetWithTeam(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var registration models.Registration
	if err := db.Preload("Team").First(&registration, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &registration, nil
}

// GetLatestByTeamID retrieves the most recent registration of a team
func (r *RegistrationRepository) GetLatestByTeamID(ctx context.Context, teamID uuid.UUID) (*models.Registration, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var registration models.Registration
	err := db.Where("team_id = ?", teamID).Order("created_at DESC").First(&registration).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &registration, nil
}

// HasActive reports whether the team holds a pending or completed registration
func (r *RegistrationRepository) HasActive(ctx context.Context, teamID uuid.UUID) (bool, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.Registration{}).
		Where("team_id = ? AND payment_status IN ?", teamID,
			[]models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusCompleted}).
		Count(&count).Error
	if err != nil {
		return false, database.TranslateError(err)
	}
	return count > 0, nil
}

// List retrieves registrations with team names, optionally for one team
func (r *RegistrationRepository) List(ctx context.Context, teamID *uuid.UUID, limit, offset int) ([]RegistrationSummary, int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	query := db.Table("registrations").Joins("JOIN teams ON teams.id = registrations.team_id")
	if teamID != nil {
		query = query.Where("registrations.team_id = ?", *teamID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err)
	}

	var registrations []RegistrationSummary
	err := query.
		Select(`registrations.id, registrations.team_id, teams.name AS team_name,
			registrations.tournament_category, registrations.registration_fee,
			registrations.payment_status, registrations.order_id, registrations.payment_id,
			registrations.paid_at, registrations.created_at`).
		Order("registrations.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&registrations).Error
	if err != nil {
		return nil, 0, database.TranslateError(err)
	}
	return registrations, total, nil
}

// AttachOrder records a fresh provider order on a pending or failed registration
// and moves it to pending.
func (r *RegistrationRepository) AttachOrder(ctx context.Context, id uuid.UUID, orderID string, at time.Time) (bool, error) {
	affected, err := r.gw.Exec(ctx,
		`UPDATE registrations
		    SET order_id = ?, order_created_at = ?, payment_status = ?, failure_reason = '', updated_at = ?
		  WHERE id = ? AND payment_status IN (?, ?)`,
		orderID, at, models.PaymentStatusPending, at,
		id, models.PaymentStatusPending, models.PaymentStatusFailed)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// MarkCompleted moves a registration for orderID to completed. Pending rows
// match with or without a recorded order; failed rows only when orderID is the
// order they failed on. Completing a failed row while the team has another
// active registration fails with an AlreadyExists error.
func (r *RegistrationRepository) MarkCompleted(ctx context.Context, id uuid.UUID, orderID, paymentID string, paidAt time.Time) (bool, error) {
	affected, err := r.gw.Exec(ctx,
		`UPDATE registrations
		    SET payment_status = ?, payment_id = ?, paid_at = ?, order_id = COALESCE(order_id, ?),
		        failure_reason = '', updated_at = ?
		  WHERE id = ?
		    AND ((payment_status = ? AND (order_id IS NULL OR order_id = ?))
		     OR (payment_status = ? AND order_id = ?))`,
		models.PaymentStatusCompleted, paymentID, paidAt, orderID, paidAt,
		id, models.PaymentStatusPending, orderID, models.PaymentStatusFailed, orderID)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// MarkFailed moves a pending registration for orderID to failed
func (r *RegistrationRepository) MarkFailed(ctx context.Context, id uuid.UUID, orderID, reason string) (bool, error) {
	affected, err := r.gw.Exec(ctx,
		`UPDATE registrations
		    SET payment_status = ?, failure_reason = ?, updated_at = NOW()
		  WHERE id = ? AND payment_status = ? AND (order_id IS NULL OR order_id = ?)`,
		models.PaymentStatusFailed, reason,
		id, models.PaymentStatusPending, orderID)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// MarkRefunded moves a completed registration to refunded
func (r *RegistrationRepository) MarkRefunded(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := r.gw.Exec(ctx,
		`UPDATE registrations SET payment_status = ?, updated_at = NOW()
		  WHERE id = ? AND payment_status = ?`,
		models.PaymentStatusRefunded, id, models.PaymentStatusCompleted)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ExpireStaleOrders fails pending registrations whose order was opened before createdBefore
func (r *RegistrationRepository) ExpireStaleOrders(ctx context.Context, createdBefore time.Time, reason string) (int64, error) {
	return r.gw.Exec(ctx,
		`UPDATE registrations SET payment_status = ?, failure_reason = ?, updated_at = NOW()
		  WHERE payment_status = ? AND order_id IS NOT NULL AND order_created_at < ?`,
		models.PaymentStatusFailed, reason, models.PaymentStatusPending, createdBefore)
}

// CountByStatus returns the number of registrations in status
func (r *RegistrationRepository) CountByStatus(ctx context.Context, status models.PaymentStatus) (int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.Registration{}).Where("payment_status = ?", status).Count(&count).Error; err != nil {
		return 0, database.TranslateError(err)
	}
	return count, nil
}

// SumFeesByStatus returns the total fee in rupees of registrations in status
func (r *RegistrationRepository) SumFeesByStatus(ctx context.Context, status models.PaymentStatus) (int64, error) {
	var row struct{ Total int64 }
	err := r.gw.Query(ctx, &row,
		`SELECT COALESCE(SUM(registration_fee), 0) AS total FROM registrations WHERE payment_status = ?`, status)
	if err != nil {
		return 0, err
	}
	return row.Total, nil
}
