package auth

import (
	"fmt"
	"strings"
	"time"

	"cricket-registration-backend/internal/config"
)

// SessionCookieName is the cookie that carries the session token
const SessionCookieName = "auth-token"

// AuthConfig holds all authentication configuration for the application
type AuthConfig struct {
	JWTSecret    string        `json:"-"`
	Issuer       string        `json:"issuer"`
	SessionTTL   time.Duration `json:"session_ttl"`
	CookieSecure bool          `json:"cookie_secure"`
	CookieDomain string        `json:"cookie_domain"`
	AdminEmails  []string      `json:"admin_emails"`
}

// NewAuthConfig builds the auth configuration from the application config
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret:    cfg.JWTSecret,
		Issuer:       cfg.JWTIssuer,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure || cfg.IsProduction(),
		CookieDomain: cfg.CookieDomain,
		AdminEmails:  cfg.AdminEmails,
	}
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}
	return nil
}

// IsAdmin reports whether email is listed as an administrator
func (c *AuthConfig) IsAdmin(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}
