package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cricket-registration-backend/internal/api/routes"
	"cricket-registration-backend/internal/config"
	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/jobs"
	"cricket-registration-backend/internal/service"
	"cricket-registration-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"

	_ "cricket-registration-backend/docs" // This is needed for swag
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "1.0.0"

//	@title			Cricket Tournament Registration API
//	@version		1.0
//	@description	Backend for the cricket tournament site: accounts and profiles, teams and rosters, registrations and their payments.

//	@contact.name	Tournament Support
//	@contact.email	support@allstarcricket.example

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:7008
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token. Browsers send the auth-token cookie instead.

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	setupLogging(cfg.LogLevel)

	// Initialize database
	dbLogLevel := gormlogger.Error
	if cfg.LogLevel == "debug" {
		dbLogLevel = gormlogger.Info
	}
	db, err := database.Initialize(cfg.DatabaseURL, &database.Options{
		LogLevel:        dbLogLevel,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}
	gateway := database.NewGateway(db, cfg.DBStatementTimeout)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := routes.NewDependencies(gateway, cfg, photoMirror(cfg))
	if err != nil {
		logrus.Fatal("Failed to initialize services:", err)
	}

	// Initialize router
	router := routes.SetupRoutes(deps, cfg, Version)

	reconciler, err := jobs.NewReconciler(deps.PaymentService, cfg.ReconcileInterval)
	if err != nil {
		logrus.Fatal("Failed to create payment reconciler:", err)
	}
	if err := reconciler.Start(); err != nil {
		logrus.Fatal("Failed to start payment reconciler:", err)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "7008"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shut down")
	}
	if err := reconciler.Stop(); err != nil {
		logrus.WithError(err).Error("Failed to stop payment reconciler")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logrus.Info("Server stopped")
}

// photoMirror returns the S3 mirror when storage is configured, otherwise nil
func photoMirror(cfg *config.Config) service.PhotoMirror {
	if !cfg.StorageEnabled() {
		return nil
	}
	mirror, err := storage.NewS3PhotoMirror(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Warn("Photo storage disabled")
		return nil
	}
	logrus.WithField("bucket", cfg.StorageBucket).Info("Mirroring profile photos to object storage")
	return mirror
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}
