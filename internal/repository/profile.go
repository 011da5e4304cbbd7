package repository

import (
	"context"
	"time"

	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileSummary is the public directory view of a profile. Contact details
// and photo bytes are never selected.
type ProfileSummary struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Age         *int      `json:"age,omitempty"`
	PlayerType  string    `json:"player_type"`
	TeamName    string    `json:"team_name"`
	Gender      string    `json:"gender"`
	Nationality string    `json:"nationality"`
	PhotoURL    string    `json:"photo_url"`
	HasPhoto    bool      `json:"has_photo"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	gw *database.Gateway
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(gw *database.Gateway) *ProfileRepository {
	return &ProfileRepository{gw: gw}
}

// GetByID retrieves a profile without its photo bytes
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var profile models.Profile
	if err := db.Omit("photo_data").First(&profile, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &profile, nil
}

// Update writes the given columns. Returns gorm.ErrRecordNotFound when no profile matched.
func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	result := db.Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateSignupError(database.TranslateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePhoto stores photo bytes and MIME type in a single statement
func (r *ProfileRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, data []byte, mimeType, photoURL string) error {
	if len(data) == 0 || mimeType == "" {
		return models.ErrIncompletePhoto
	}
	return r.Update(ctx, id, map[string]interface{}{
		"photo_data":      data,
		"photo_mime_type": mimeType,
		"photo_url":       photoURL,
	})
}

// GetPhoto returns the stored photo bytes and MIME type
func (r *ProfileRepository) GetPhoto(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var profile models.Profile
	err := db.Select("id", "photo_data", "photo_mime_type").First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, "", database.TranslateError(err)
	}
	if !profile.HasPhoto() {
		return nil, "", apperrors.ErrPhotoNotFound
	}
	return profile.PhotoData, *profile.PhotoMimeType, nil
}

// List returns a page of profiles, newest first, with the total count
func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]ProfileSummary, int64, error) {
	db, cancel := r.gw.Session(ctx)
	defer cancel()

	var total int64
	if err := db.Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err)
	}

	var profiles []ProfileSummary
	err := db.Table("profiles").
		Select(`id, full_name, age, player_type, team_name, gender, nationality, photo_url, created_at,
			COALESCE(octet_length(photo_data), 0) > 0 AS has_photo`).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&profiles).Error
	if err != nil {
		return nil, 0, database.TranslateError(err)
	}
	return profiles, total, nil
}
