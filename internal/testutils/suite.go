package testutils

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"cricket-registration-backend/internal/config"
	"cricket-registration-backend/internal/database"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for readiness ping
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const (
	pgUser     = "cricket"
	pgPassword = "cricket-test"
	pgDatabase = "cricket_registration_test"

	// TestPaymentSecret signs checkout callbacks in integration tests
	TestPaymentSecret = "test-payment-secret"
)

// cleanTables lists tables children first so truncation order never matters
var cleanTables = []string{
	"contact_messages",
	"registrations",
	"players",
	"teams",
	"profiles",
	"users",
}

// One Postgres container is shared by every suite in the test binary
var (
	sharedOnce     sync.Once
	sharedInitErr  error
	sharedPool     *dockertest.Pool
	sharedResource *dockertest.Resource
	sharedDB       *gorm.DB
	sharedGateway  *database.Gateway
	sharedDSN      string
)

// BaseTestSuite gives integration suites a migrated database and a matching config
type BaseTestSuite struct {
	suite.Suite
	DB      *gorm.DB
	Gateway *database.Gateway
	Config  *config.Config
}

// SetupTestSuite starts the shared container on first use. Every call returns
// a fresh Config so suites can override fields without affecting each other.
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	sharedOnce.Do(func() { sharedInitErr = startPostgres() })
	if sharedInitErr != nil {
		t.Fatalf("failed to initialize shared test container: %v", sharedInitErr)
	}
	return &BaseTestSuite{
		DB:      sharedDB,
		Gateway: sharedGateway,
		Config:  TestConfig(sharedDSN),
	}
}

// TestConfig returns the application settings used by integration tests
func TestConfig(dsn string) *config.Config {
	return &config.Config{
		Environment:        "test",
		Port:               "8080",
		LogLevel:           "debug",
		DatabaseURL:        dsn,
		DBStatementTimeout: 5 * time.Second,
		JWTSecret:          "test-jwt-secret",
		JWTIssuer:          "cricket-registration-backend",
		SessionTTL:         time.Hour,
		PaymentProvider:    "local",
		PaymentKeyID:       "rzp_test_local",
		PaymentKeySecret:   TestPaymentSecret,
		PaymentCurrency:    "INR",
		PendingOrderTTL:    24 * time.Hour,
		ReconcileInterval:  10 * time.Minute,
		FeeOpen:            5000,
		FeeCorporate:       4000,
		FeeDefault:         3000,
		TournamentName:     "All-Star Cricket",
		TournamentMaxTeams: 16,
		RosterMinPlayers:   11,
		RosterMaxPlayers:   15,
		PlayerMinAge:       16,
		PlayerMaxAge:       50,
		PhotoMaxBytes:      1024 * 1024,
	}
}

// CleanupSharedContainer purges the container. TestMain of each integration
// package calls it once the run is over or interrupted.
func CleanupSharedContainer() {
	if sharedDB != nil {
		if sqlDB, err := sharedDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if sharedPool == nil || sharedResource == nil {
		return
	}
	log.Printf("Purging Docker container: %s", sharedResource.Container.Name)
	if err := sharedPool.Purge(sharedResource); err != nil {
		log.Printf("WARN: could not purge shared resource: %v", err)
	}
	sharedResource = nil
	sharedPool = nil
	sharedDB = nil
	sharedGateway = nil
}

func (s *BaseTestSuite) SetupTest()    { s.CleanTestDB() }
func (s *BaseTestSuite) TearDownTest() { s.CleanTestDB() }

// TeardownTestSuite empties the tables; the container outlives the suite
func (s *BaseTestSuite) TeardownTestSuite() { s.CleanTestDB() }

// CleanTestDB truncates every application table that exists
func (s *BaseTestSuite) CleanTestDB() {
	if s.DB == nil {
		return
	}
	m := s.DB.Migrator()
	for _, table := range cleanTables {
		if m.HasTable(table) {
			s.DB.Exec(`TRUNCATE TABLE "` + table + `" RESTART IDENTITY CASCADE`)
		}
	}
}

func startPostgres() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("could not connect to docker: %w", err)
	}
	sharedPool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_DB=" + pgDatabase,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("could not start postgres: %w", err)
	}
	sharedResource = resource

	hostPort := resource.GetPort("5432/tcp")
	sharedDSN = fmt.Sprintf("postgres://%s:%s@127.0.0.1:%s/%s?sslmode=disable", pgUser, pgPassword, hostPort, pgDatabase)

	pool.MaxWait = 2 * time.Minute
	err = pool.Retry(func() error {
		std, err := sql.Open("pgx", sharedDSN)
		if err != nil {
			return err
		}
		defer std.Close()
		if err := std.Ping(); err != nil {
			return err
		}

		// Initialize runs the migrations and partial indexes
		gdb, err := database.Initialize(sharedDSN, nil)
		if err != nil {
			return err
		}
		sharedDB = gdb
		sharedGateway = database.NewGateway(gdb, 5*time.Second)
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not connect to docker database: %w", err)
	}

	log.Printf("Shared Postgres ready on %s", hostPort)
	return nil
}
