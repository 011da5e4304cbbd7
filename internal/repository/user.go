package repository

import (
	"context"
	"errors"

	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	constraintUsersEmail     = "idx_users_email"
	constraintProfilesAadhar = "idx_profiles_aadhar_id"
)

// UserRepository handles database operations for accounts
type UserRepository struct {
	gw *database.Gateway
}

// NewUserRepository creates a new account repository
func NewUserRepository(gw *database.Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

// CreateWithProfile inserts the account and its profile in one transaction.
// The profile id is set to the new account id.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	err := r.gw.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.ID = user.ID
		return tx.Create(profile).Error
	})
	return translateSignupError(err)
}

// translateSignupError names the unique constraint that was hit
func translateSignupError(err error) error {
	if err == nil || !apperrors.IsAlreadyExists(err) {
		return err
	}
	switch database.ConstraintName(err) {
	case constraintUsersEmail:
		return apperrors.ErrEmailExists
	case constraintProfilesAadhar:
		return apperrors.NewValidationError("aadharId", "Aadhar ID is already registered")
	}
	return err
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// GetByEmail retrieves an account by exact email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// GetWithProfile retrieves an account with its profile, photo bytes excluded
func (r *UserRepository) GetWithProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var user models.User
	err := db.Preload("Profile", func(tx *gorm.DB) *gorm.DB {
		return tx.Omit("photo_data")
	}).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &user, nil
}

// ExistsByEmail reports whether an account uses email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, database.TranslateError(err)
	}
	return count > 0, nil
}

// GetEmailByID returns the email of an account. Satisfies auth.AccountLookup.
func (r *UserRepository) GetEmailByID(ctx context.Context, id uuid.UUID) (string, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var user models.User
	err := db.Select("id", "email").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.ErrUserNotFound
	}
	if err != nil {
		return "", database.TranslateError(err)
	}
	return user.Email, nil
}

// Count returns the number of accounts
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, database.TranslateError(err)
	}
	return count, nil
}
