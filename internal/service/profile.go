package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/logger"
	"cricket-registration-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultPhotoMaxBytes caps uploaded photos at 5MB
const DefaultPhotoMaxBytes int64 = 5 * 1024 * 1024

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// PhotoMirror copies photos to external object storage and returns their public URL
type PhotoMirror interface {
	UploadPhoto(ctx context.Context, accountID uuid.UUID, ownerName string, data []byte, contentType string) (string, error)
}

// ProfileService handles profile updates and profile photos
type ProfileService struct {
	profiles  repository.ProfileRepositoryInterface
	mirror    PhotoMirror
	validator *validator.Validate
	maxBytes  int64
}

// NewProfileService creates a new profile service. mirror may be nil.
func NewProfileService(profiles repository.ProfileRepositoryInterface, mirror PhotoMirror, validator *validator.Validate, maxBytes int64) *ProfileService {
	if maxBytes <= 0 {
		maxBytes = DefaultPhotoMaxBytes
	}
	return &ProfileService{
		profiles:  profiles,
		mirror:    mirror,
		validator: validator,
		maxBytes:  maxBytes,
	}
}

// UpdateProfileRequest lists the only profile fields a caller may change.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName" validate:"omitempty,min=1,max=200"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	Age         *int    `json:"age" validate:"omitempty,min=1,max=120"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" validate:"omitempty,max=20"`
	Nationality *string `json:"nationality" validate:"omitempty,max=50"`
	TeamName    *string `json:"teamName" validate:"omitempty,max=200"`
	AadharID    *string `json:"aadharId" validate:"omitempty,len=12,numeric"`
	PlayerType  *string `json:"playerType" validate:"omitempty,max=50"`
}

// PhotoUploadResponse is returned after a photo upload
type PhotoUploadResponse struct {
	PhotoURL string `json:"photoUrl"`
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
}

func (r *UpdateProfileRequest) columns() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	set := func(column string, value *string) {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}
	set("full_name", r.FullName)
	set("phone", r.Phone)
	set("address", r.Address)
	set("gender", r.Gender)
	set("nationality", r.Nationality)
	set("team_name", r.TeamName)
	if r.AadharID != nil {
		// a cleared aadhar id is stored as NULL so it stays out of the unique index
		if aadhar := strings.TrimSpace(*r.AadharID); aadhar != "" {
			updates["aadhar_id"] = aadhar
		} else {
			updates["aadhar_id"] = nil
		}
	}
	set("player_type", r.PlayerType)
	if r.Age != nil {
		updates["age"] = *r.Age
	}
	if r.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *r.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("dateOfBirth", "must be a date in YYYY-MM-DD format")
		}
		updates["date_of_birth"] = dob
	}
	return updates, nil
}

// UpdateProfile writes the provided fields of the caller's profile
func (s *ProfileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		return nil, apperrors.NewValidationError("fullName", "fullName cannot be empty")
	}

	updates, err := req.columns()
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, apperrors.NewValidationError("", "no profile fields to update")
	}

	if err := s.profiles.Update(ctx, accountID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		if apperrors.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	profile, err := s.profiles.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	return toProfileResponse(profile), nil
}

// UploadPhoto stores a profile photo. Bytes and MIME type are written together.
func (s *ProfileService) UploadPhoto(ctx context.Context, accountID uuid.UUID, data []byte, mimeType string) (*PhotoUploadResponse, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if err := checkPhoto(data, mimeType, s.maxBytes); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	photoURL := "/api/photos/" + accountID.String()
	if s.mirror != nil {
		mirrored, err := s.mirror.UploadPhoto(ctx, accountID, profile.FullName, data, mimeType)
		if err != nil {
			// The database copy stays authoritative; the mirror is best effort
			logger.WithContext(ctx).WithError(err).Warn("photo mirror upload failed")
		} else {
			photoURL = mirrored
		}
	}

	if err := s.profiles.UpdatePhoto(ctx, accountID, data, mimeType, photoURL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	return &PhotoUploadResponse{PhotoURL: photoURL, MimeType: mimeType, Size: len(data)}, nil
}

// GetPhoto returns the stored photo of an account
func (s *ProfileService) GetPhoto(ctx context.Context, accountID uuid.UUID) ([]byte, string, error) {
	data, mimeType, err := s.profiles.GetPhoto(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperrors.ErrPhotoNotFound) {
			return nil, "", apperrors.ErrPhotoNotFound
		}
		return nil, "", fmt.Errorf("failed to load photo: %w", err)
	}
	return data, mimeType, nil
}

// PlayerDirectoryEntry is one registered player in the public directory
type PlayerDirectoryEntry struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"fullName"`
	Age         *int      `json:"age,omitempty"`
	PlayerType  string    `json:"playerType"`
	TeamName    string    `json:"teamName"`
	Gender      string    `json:"gender"`
	Nationality string    `json:"nationality"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlayerDirectoryResponse is a page of the player directory
type PlayerDirectoryResponse struct {
	Players  []PlayerDirectoryEntry `json:"players"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// ListPlayers lists registered player profiles, newest first
func (s *ProfileService) ListPlayers(ctx context.Context, page, pageSize int) (*PlayerDirectoryResponse, error) {
	page, pageSize, limit, offset := normalizePage(page, pageSize)
	profiles, total, err := s.profiles.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	players := make([]PlayerDirectoryEntry, 0, len(profiles))
	for _, p := range profiles {
		players = append(players, PlayerDirectoryEntry{
			ID:          p.ID,
			FullName:    p.FullName,
			Age:         p.Age,
			PlayerType:  p.PlayerType,
			TeamName:    p.TeamName,
			Gender:      p.Gender,
			Nationality: p.Nationality,
			PhotoURL:    directoryPhotoURL(p),
			CreatedAt:   p.CreatedAt,
		})
	}
	return &PlayerDirectoryResponse{Players: players, Total: total, Page: page, PageSize: pageSize}, nil
}

// directoryPhotoURL prefers the mirrored URL and falls back to the photo endpoint
func directoryPhotoURL(p repository.ProfileSummary) string {
	switch {
	case p.PhotoURL != "":
		return p.PhotoURL
	case p.HasPhoto:
		return "/api/photos/" + p.ID.String()
	default:
		return ""
	}
}

func checkPhoto(data []byte, mimeType string, maxBytes int64) error {
	if len(data) == 0 {
		return apperrors.NewValidationError("photo", "photo is required")
	}
	if !allowedPhotoTypes[mimeType] {
		return apperrors.NewValidationError("photo", "only JPEG, PNG and WebP images are allowed")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return apperrors.NewValidationError("photo", fmt.Sprintf("photo must be smaller than %dMB", maxBytes/(1024*1024)))
	}
	return nil
}

// decodePhoto accepts raw base64 or a data URL such as "data:image/png;base64,...."
func decodePhoto(encoded string) ([]byte, string, error) {
	mimeType := ""
	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", apperrors.NewValidationError("photo", "malformed data URL")
		}
		mimeType = strings.TrimSuffix(header, ";base64")
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, "", apperrors.NewValidationError("photo", "photo must be base64 encoded")
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return data, strings.ToLower(mimeType), nil
}
