package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	DatabaseHost       string        `mapstructure:"DB_HOST"`
	DatabasePort       string        `mapstructure:"DB_PORT"`
	DatabaseUser       string        `mapstructure:"DB_USER"`
	DatabasePassword   string        `mapstructure:"DB_PASSWORD"`
	DatabaseName       string        `mapstructure:"DB_NAME"`
	DatabaseSSLMode    string        `mapstructure:"DB_SSL_MODE"`
	DBMaxOpenConns     int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns     int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxIdleTime  time.Duration `mapstructure:"DB_CONN_MAX_IDLE_TIME"`
	DBConnMaxLifetime  time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DBConnectTimeout   time.Duration `mapstructure:"DB_CONNECT_TIMEOUT"`
	DBStatementTimeout time.Duration `mapstructure:"DB_STATEMENT_TIMEOUT"`

	// Session configuration
	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	JWTIssuer    string        `mapstructure:"JWT_ISSUER"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure bool          `mapstructure:"COOKIE_SECURE"`
	CookieDomain string        `mapstructure:"COOKIE_DOMAIN"`
	AdminEmails  []string      `mapstructure:"ADMIN_EMAILS"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Payment configuration
	PaymentProvider  string        `mapstructure:"PAYMENT_PROVIDER"`
	PaymentBaseURL   string        `mapstructure:"PAYMENT_BASE_URL"`
	PaymentKeyID     string        `mapstructure:"PAYMENT_KEY_ID"`
	PaymentKeySecret string        `mapstructure:"PAYMENT_KEY_SECRET"`
	PaymentCurrency  string        `mapstructure:"PAYMENT_CURRENCY"`
	PaymentTimeout   time.Duration `mapstructure:"PAYMENT_TIMEOUT"`

	// Payment reconciliation
	ReconcileInterval time.Duration `mapstructure:"RECONCILE_INTERVAL"`
	PendingOrderTTL   time.Duration `mapstructure:"PENDING_ORDER_TTL"`

	// Fee schedule (rupees)
	FeeOpen      int `mapstructure:"FEE_OPEN"`
	FeeCorporate int `mapstructure:"FEE_CORPORATE"`
	FeeDefault   int `mapstructure:"FEE_DEFAULT"`

	// Tournament facts
	TournamentName     string `mapstructure:"TOURNAMENT_NAME"`
	TournamentMaxTeams int    `mapstructure:"TOURNAMENT_MAX_TEAMS"`
	RosterMinPlayers   int    `mapstructure:"ROSTER_MIN_PLAYERS"`
	RosterMaxPlayers   int    `mapstructure:"ROSTER_MAX_PLAYERS"`
	PlayerMinAge       int    `mapstructure:"PLAYER_MIN_AGE"`
	PlayerMaxAge       int    `mapstructure:"PLAYER_MAX_AGE"`

	// Photo uploads
	PhotoMaxBytes int64 `mapstructure:"PHOTO_MAX_BYTES"`

	// Optional S3-compatible photo mirror (Cloudflare R2, MinIO, AWS S3)
	StorageEndpoint        string `mapstructure:"STORAGE_ENDPOINT"`
	StorageRegion          string `mapstructure:"STORAGE_REGION"`
	StorageBucket          string `mapstructure:"STORAGE_BUCKET"`
	StorageAccessKeyID     string `mapstructure:"STORAGE_ACCESS_KEY_ID"`
	StorageSecretAccessKey string `mapstructure:"STORAGE_SECRET_ACCESS_KEY"`
	StoragePublicBaseURL   string `mapstructure:"STORAGE_PUBLIC_BASE_URL"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.AdminEmails = splitList(config.AdminEmails)
	config.AllowedOrigins = splitList(config.AllowedOrigins)

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7008")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "cricket_registration")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "30s")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONNECT_TIMEOUT", "2s")
	viper.SetDefault("DB_STATEMENT_TIMEOUT", "5s")

	// Session defaults
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "cricket-registration-backend")
	viper.SetDefault("SESSION_TTL", "168h")
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("ADMIN_EMAILS", []string{})

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	// Payment defaults
	viper.SetDefault("PAYMENT_PROVIDER", "local")
	viper.SetDefault("PAYMENT_BASE_URL", "https://api.razorpay.com")
	viper.SetDefault("PAYMENT_KEY_ID", "rzp_test_local")
	viper.SetDefault("PAYMENT_KEY_SECRET", "")
	viper.SetDefault("PAYMENT_CURRENCY", "INR")
	viper.SetDefault("PAYMENT_TIMEOUT", "15s")
	viper.SetDefault("RECONCILE_INTERVAL", "10m")
	viper.SetDefault("PENDING_ORDER_TTL", "24h")

	// Fee schedule
	viper.SetDefault("FEE_OPEN", 5000)
	viper.SetDefault("FEE_CORPORATE", 4000)
	viper.SetDefault("FEE_DEFAULT", 3000)

	// Tournament defaults
	viper.SetDefault("TOURNAMENT_NAME", "All-Star Cricket")
	viper.SetDefault("TOURNAMENT_MAX_TEAMS", 16)
	viper.SetDefault("ROSTER_MIN_PLAYERS", 11)
	viper.SetDefault("ROSTER_MAX_PLAYERS", 15)
	viper.SetDefault("PLAYER_MIN_AGE", 16)
	viper.SetDefault("PLAYER_MAX_AGE", 50)

	viper.SetDefault("PHOTO_MAX_BYTES", 5*1024*1024)

	// Storage mirror is disabled unless a bucket is configured
	viper.SetDefault("STORAGE_ENDPOINT", "")
	viper.SetDefault("STORAGE_REGION", "auto")
	viper.SetDefault("STORAGE_BUCKET", "")
	viper.SetDefault("STORAGE_ACCESS_KEY_ID", "")
	viper.SetDefault("STORAGE_SECRET_ACCESS_KEY", "")
	viper.SetDefault("STORAGE_PUBLIC_BASE_URL", "")
}

func buildDatabaseURL(config *Config) string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
	if secs := int(config.DBConnectTimeout.Seconds()); secs > 0 {
		dsn += fmt.Sprintf("&connect_timeout=%d", secs)
	}
	return dsn
}

// splitList accepts both YAML lists and comma separated env values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func validate(config *Config) error {
	if config.IsProduction() {
		if config.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if config.PaymentKeySecret == "" {
			return fmt.Errorf("PAYMENT_KEY_SECRET must be set in production")
		}
	}

	if config.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}

	switch config.PaymentProvider {
	case "local", "razorpay":
	default:
		return fmt.Errorf("unsupported PAYMENT_PROVIDER %q", config.PaymentProvider)
	}

	if config.RosterMinPlayers <= 0 || config.RosterMinPlayers > config.RosterMaxPlayers {
		return fmt.Errorf("invalid roster bounds %d..%d", config.RosterMinPlayers, config.RosterMaxPlayers)
	}
	if config.PlayerMinAge <= 0 || config.PlayerMinAge > config.PlayerMaxAge {
		return fmt.Errorf("invalid player age bounds %d..%d", config.PlayerMinAge, config.PlayerMaxAge)
	}
	if config.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// StorageEnabled reports whether the S3-compatible photo mirror is configured
func (c *Config) StorageEnabled() bool {
	return c.StorageBucket != "" && c.StorageAccessKeyID != "" && c.StorageSecretAccessKey != ""
}
