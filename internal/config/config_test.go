package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Environment:      "development",
		DatabaseName:     "cricket_registration",
		JWTSecret:        defaultJWTSecret,
		SessionTTL:       7 * 24 * time.Hour,
		PaymentProvider:  "local",
		RosterMinPlayers: 11,
		RosterMaxPlayers: 15,
		PlayerMinAge:     16,
		PlayerMaxAge:     50,
	}
}

func TestValidate(t *testing.T) {
	t.Run("development defaults are accepted", func(t *testing.T) {
		assert.NoError(t, validate(validConfig()))
	})

	t.Run("production rejects default jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = "production"
		cfg.PaymentKeySecret = "secret"
		err := validate(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("production requires payment secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = "production"
		cfg.JWTSecret = "real-secret"
		err := validate(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "PAYMENT_KEY_SECRET")
	})

	t.Run("unknown payment provider", func(t *testing.T) {
		cfg := validConfig()
		cfg.PaymentProvider = "paypal"
		assert.Error(t, validate(cfg))
	})

	t.Run("inverted roster bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.RosterMinPlayers = 16
		assert.Error(t, validate(cfg))
	})

	t.Run("inverted age bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.PlayerMaxAge = 10
		assert.Error(t, validate(cfg))
	})
}

func TestBuildDatabaseURL(t *testing.T) {
	cfg := &Config{
		DatabaseUser:     "u",
		DatabasePassword: "p",
		DatabaseHost:     "db",
		DatabasePort:     "5432",
		DatabaseName:     "cricket",
		DatabaseSSLMode:  "disable",
		DBConnectTimeout: 2 * time.Second,
	}
	assert.Equal(t, "postgres://u:p@db:5432/cricket?sslmode=disable&connect_timeout=2", buildDatabaseURL(cfg))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, splitList([]string{"a@x.com, b@x.com"}))
	assert.Equal(t, []string{"a", "b"}, splitList([]string{"a", " ", "b"}))
	assert.Nil(t, splitList(nil))
}

func TestStorageEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.StorageEnabled())

	cfg.StorageBucket = "photos"
	cfg.StorageAccessKeyID = "key"
	cfg.StorageSecretAccessKey = "secret"
	assert.True(t, cfg.StorageEnabled())
}

func TestEnvironment(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Environment = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())

	cfg.Environment = "test"
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}
