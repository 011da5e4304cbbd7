package database

import (
	"fmt"
	"time"

	"cricket-registration-backend/internal/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	SkipMigrations  bool
}

// Initialize opens a Postgres connection pool and creates the schema from GORM models.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	// Defaults
	if opts == nil {
		opts = &Options{}
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 20
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	if opts.ConnMaxIdleTime == 0 {
		opts.ConnMaxIdleTime = 30 * time.Second
	}

	// Open DB
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	if opts.SkipMigrations {
		return db, nil
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	// Required for gen_random_uuid() defaults
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("create pgcrypto extension: %w", err)
	}

	all := []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Team{},
		&models.Player{},
		&models.Registration{},
		&models.ContactMessage{},
	}
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Constraints GORM tags cannot express
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_active_team
			ON registrations (team_id) WHERE payment_status IN ('pending', 'completed')`,
		`DO $$ BEGIN
			ALTER TABLE players ADD CONSTRAINT chk_players_age CHECK (age > 0);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		`DO $$ BEGIN
			ALTER TABLE registrations ADD CONSTRAINT chk_registrations_payment_status
				CHECK (payment_status IN ('pending', 'completed', 'failed', 'refunded'));
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		`DO $$ BEGIN
			ALTER TABLE profiles ADD CONSTRAINT chk_profiles_photo_pair
				CHECK ((photo_data IS NULL) = (photo_mime_type IS NULL));
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply schema constraint: %w", err)
		}
	}

	return nil
}
