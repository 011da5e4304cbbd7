package auth

import (
	"fmt"
	"net/http"
	"time"

	apperrors "cricket-registration-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID               string `json:"userId" example:"5f0c6a43-7a38-4b7c-9d55-1c5b0f3c2a11"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// AccountID parses the user id claim
func (c *AuthClaims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// AuthValidateResponse represents the response from the token validation endpoint
type AuthValidateResponse struct {
	Valid     bool      `json:"valid" example:"true"`
	UserID    string    `json:"userId,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// AuthService issues and verifies stateless session tokens
type AuthService struct {
	config *AuthConfig
	now    func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	return &AuthService{config: config, now: time.Now}, nil
}

// GenerateJWT signs a session token for userID that expires after the session TTL
func (s *AuthService) GenerateJWT(userID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.SessionTTL)
	claims := &AuthClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateJWT checks signature, algorithm and expiry. It does not consult the
// account store.
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if _, err := claims.AccountID(); err != nil {
		return nil, fmt.Errorf("%w: malformed user id", apperrors.ErrInvalidToken)
	}

	return claims, nil
}

// SetSessionCookie writes the session token as an HttpOnly cookie
func (s *AuthService) SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(s.config.SessionTTL.Seconds()), "/", s.config.CookieDomain, s.config.CookieSecure, true)
}

// ClearSessionCookie expires the session cookie
func (s *AuthService) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", s.config.CookieDomain, s.config.CookieSecure, true)
}
