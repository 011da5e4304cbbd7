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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenIssuer signs session tokens for an account
type TokenIssuer interface {
	GenerateJWT(userID uuid.UUID) (string, time.Time, error)
}

// AccountService handles signup, login and the current-account view
type AccountService struct {
	users         repository.UserRepositoryInterface
	tokens        TokenIssuer
	validator     *validator.Validate
	photoMaxBytes int64
}

// NewAccountService creates a new account service
func NewAccountService(users repository.UserRepositoryInterface, tokens TokenIssuer, validator *validator.Validate, photoMaxBytes int64) *AccountService {
	return &AccountService{
		users:         users,
		tokens:        tokens,
		validator:     validator,
		photoMaxBytes: photoMaxBytes,
	}
}

// SignupRequest represents the request to create an account with its profile
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email,max=255" example:"cap@x.com"`
	Password    string `json:"password" validate:"required,min=6,max=72" example:"secret123"`
	FullName    string `json:"fullName" validate:"required,max=200" example:"Rohit Sharma"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=500"`
	Age         *int   `json:"age" validate:"omitempty,min=1,max=120"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02" example:"1995-04-30"`
	Gender      string `json:"gender" validate:"omitempty,max=20"`
	Nationality string `json:"nationality" validate:"omitempty,max=50"`
	TeamName    string `json:"teamName" validate:"omitempty,max=200"`
	AadharID    string `json:"aadharId" validate:"omitempty,len=12,numeric"`
	PlayerType  string `json:"playerType" validate:"omitempty,max=50"`
	Photo       string `json:"photo,omitempty"` // base64, optionally a data URL
}

// LoginRequest represents the login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"cap@x.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

// ProfileResponse represents a profile without the photo bytes
type ProfileResponse struct {
	FullName    string     `json:"fullName"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	Age         *int       `json:"age,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `json:"gender"`
	Nationality string     `json:"nationality"`
	TeamName    string     `json:"teamName"`
	AadharID    *string    `json:"aadharId,omitempty"`
	PlayerType  string     `json:"playerType"`
	PhotoURL    string     `json:"photoUrl,omitempty"`
	HasPhoto    bool       `json:"hasPhoto"`
}

// AccountResponse represents the account and its profile
type AccountResponse struct {
	ID            uuid.UUID        `json:"id"`
	Email         string           `json:"email"`
	EmailVerified bool             `json:"emailVerified"`
	CreatedAt     time.Time        `json:"createdAt"`
	Profile       *ProfileResponse `json:"profile,omitempty"`
}

// SessionResponse is returned by signup and login. The token is also set as a cookie.
type SessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      *AccountResponse `json:"user"`
}

// EmailCheckResponse reports whether an email is registered
type EmailCheckResponse struct {
	Exists bool `json:"exists"`
}

// Signup creates an account and its profile in one transaction and opens a session
func (s *AccountService) Signup(ctx context.Context, req *SignupRequest) (*SessionResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailExists
	}

	profile, err := s.buildProfile(req)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: req.Email, PasswordHash: hash}

	// A concurrent signup with the same email surfaces here as ErrEmailExists
	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		if apperrors.IsAlreadyExists(err) || apperrors.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	user.Profile = profile

	logger.WithContext(ctx).WithField("account_id", user.ID).Info("account created")
	return s.openSession(user)
}

func (s *AccountService) buildProfile(req *SignupRequest) (*models.Profile, error) {
	profile := &models.Profile{
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       req.Phone,
		Address:     req.Address,
		Age:         req.Age,
		Gender:      req.Gender,
		Nationality: req.Nationality,
		TeamName:    req.TeamName,
		PlayerType:  req.PlayerType,
	}
	if req.AadharID != "" {
		aadhar := req.AadharID
		profile.AadharID = &aadhar
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("dateOfBirth", "must be a date in YYYY-MM-DD format")
		}
		profile.DateOfBirth = &dob
	}
	if req.Photo != "" {
		data, mimeType, err := decodePhoto(req.Photo)
		if err != nil {
			return nil, err
		}
		if err := checkPhoto(data, mimeType, s.photoMaxBytes); err != nil {
			return nil, err
		}
		profile.PhotoData = data
		profile.PhotoMimeType = &mimeType
	}
	return profile, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password produce the same error.
func (s *AccountService) Login(ctx context.Context, req *LoginRequest) (*SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(ctx).Debug("login for unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			logger.WithContext(ctx).WithField("account_id", user.ID).Debug("login with wrong password")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	return s.openSession(user)
}

func (s *AccountService) openSession(user *models.User) (*SessionResponse, error) {
	token, expiresAt, err := s.tokens.GenerateJWT(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return &SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toAccountResponse(user),
	}, nil
}

// Me returns the account and profile of the caller
func (s *AccountService) Me(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	user, err := s.users.GetWithProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return toAccountResponse(user), nil
}

// CheckEmail reports whether an email is already registered
func (s *AccountService) CheckEmail(ctx context.Context, email string) (*EmailCheckResponse, error) {
	email = strings.TrimSpace(email)
	if err := s.validator.Var(email, "required,email"); err != nil {
		return nil, apperrors.NewValidationError("email", "must be a valid email address")
	}
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	return &EmailCheckResponse{Exists: exists}, nil
}

func toAccountResponse(user *models.User) *AccountResponse {
	resp := &AccountResponse{
		ID:            user.ID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
	if user.Profile != nil {
		resp.Profile = toProfileResponse(user.Profile)
	}
	return resp
}

func toProfileResponse(p *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		FullName:    p.FullName,
		Phone:       p.Phone,
		Address:     p.Address,
		Age:         p.Age,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Nationality: p.Nationality,
		TeamName:    p.TeamName,
		AadharID:    p.AadharID,
		PlayerType:  p.PlayerType,
		PhotoURL:    p.PhotoURL,
		HasPhoto:    p.PhotoMimeType != nil && *p.PhotoMimeType != "",
	}
}
