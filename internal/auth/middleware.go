package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextUserID = "user_id"
	contextEmail  = "email"
	contextClaims = "auth_claims"
)

// AccountLookup resolves an account id to its email. It returns an error
// matching apperrors.ErrUserNotFound when the account no longer exists.
type AccountLookup interface {
	GetEmailByID(ctx context.Context, id uuid.UUID) (string, error)
}

// AuthMiddleware provides session authentication middleware
type AuthMiddleware struct {
	service  *AuthService
	accounts AccountLookup
}

// NewAuthMiddleware creates a new authentication middleware. When accounts is
// nil the guard trusts any token with a valid signature and expiry.
func NewAuthMiddleware(service *AuthService, accounts AccountLookup) *AuthMiddleware {
	return &AuthMiddleware{service: service, accounts: accounts}
}

// TokenFromRequest extracts the session token from the auth cookie or a Bearer header
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAuth resolves the session to an account id or aborts with 401
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.authenticate(c); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the session when present but never rejects the request
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.authenticate(c); err != nil && !apperrors.IsAuthentication(err) {
			logger.FromGinContext(c).WithError(err).Warn("optional session lookup failed")
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. It rejects accounts whose email is
// not listed in the admin configuration.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := GetUserEmail(c)
		if !ok {
			if _, authed := GetUserID(c); !authed {
				abortWithError(c, apperrors.ErrUnauthenticated)
				return
			}
			if err := m.loadEmail(c); err != nil {
				abortWithError(c, err)
				return
			}
			email, _ = GetUserEmail(c)
		}
		if !m.service.config.IsAdmin(email) {
			abortWithError(c, apperrors.ErrAdminRequired)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) error {
	tokenString := TokenFromRequest(c)
	if tokenString == "" {
		return apperrors.ErrUnauthenticated
	}

	claims, err := m.service.ValidateJWT(tokenString)
	if err != nil {
		return err
	}
	userID, err := claims.AccountID()
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if m.accounts != nil {
		email, err := m.lookupEmail(c.Request.Context(), userID)
		if err != nil {
			return err
		}
		c.Set(contextEmail, email)
	}

	c.Set(contextUserID, userID)
	c.Set(contextClaims, claims)
	c.Request = c.Request.WithContext(logger.ContextWithUserID(c.Request.Context(), userID.String()))
	return nil
}

func (m *AuthMiddleware) loadEmail(c *gin.Context) error {
	userID, _ := GetUserID(c)
	email, err := m.lookupEmail(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	c.Set(contextEmail, email)
	return nil
}

func (m *AuthMiddleware) lookupEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.accounts == nil {
		return "", apperrors.ErrAdminRequired
	}
	email, err := m.accounts.GetEmailByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.ErrInvalidToken
		}
		return "", err
	}
	return email, nil
}

func abortWithError(c *gin.Context, err error) {
	switch {
	case apperrors.IsAuthentication(err):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authMessage(err), "code": "unauthenticated"})
	case apperrors.IsAuthorization(err):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "forbidden"})
	case apperrors.IsUnavailable(err):
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable", "code": "unavailable"})
	default:
		logger.FromGinContext(c).WithError(err).Error("session lookup failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
	}
}

// authMessage hides token parser details from the client
func authMessage(err error) string {
	var authErr *apperrors.AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return apperrors.ErrUnauthenticated.Message
}

// RequireOwnership fails with a Forbidden error unless accountID owns the resource
func RequireOwnership(accountID, ownerID uuid.UUID) error {
	if accountID == uuid.Nil || accountID != ownerID {
		return apperrors.ErrNotTeamCaptain
	}
	return nil
}

// GetUserID is a helper function to extract the account id from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(contextUserID)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmail is a helper function to extract the account email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(contextEmail)
	if !exists {
		return "", false
	}

	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetAuthClaims is a helper function to extract full auth claims from context
func GetAuthClaims(c *gin.Context) (*AuthClaims, bool) {
	claims, exists := c.Get(contextClaims)
	if !exists {
		return nil, false
	}

	authClaims, ok := claims.(*AuthClaims)
	return authClaims, ok
}
