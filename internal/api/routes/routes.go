package routes

import (
	"fmt"
	"net/http"

	"cricket-registration-backend/internal/api/handlers"
	"cricket-registration-backend/internal/api/middleware"
	"cricket-registration-backend/internal/auth"
	"cricket-registration-backend/internal/config"
	"cricket-registration-backend/internal/database"
	"cricket-registration-backend/internal/logger"
	"cricket-registration-backend/internal/payment"
	"cricket-registration-backend/internal/repository"
	"cricket-registration-backend/internal/service"
	"cricket-registration-backend/internal/tournament"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// devPaymentSecret signs local-provider checkouts when no secret is configured
const devPaymentSecret = "local-dev-payment-secret"

// Dependencies holds the services behind the router. The payment service is
// also driven by the reconciler job.
type Dependencies struct {
	Gateway  *database.Gateway
	Sessions *auth.AuthService
	Accounts repository.UserRepositoryInterface

	AccountService      *service.AccountService
	ProfileService      *service.ProfileService
	TeamService         *service.TeamService
	PlayerService       *service.PlayerService
	RegistrationService *service.RegistrationService
	PaymentService      *service.PaymentService
	ContactService      *service.ContactService
	AdminService        *service.AdminService

	Tournament tournament.Info
}

// NewDependencies wires repositories and services on top of the gateway.
// mirror may be nil when no photo storage is configured.
func NewDependencies(gw *database.Gateway, cfg *config.Config, mirror service.PhotoMirror) (*Dependencies, error) {
	validator := service.NewValidator()
	rules := tournament.RulesFromConfig(cfg)
	fees := tournament.FeesFromConfig(cfg)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gw)
	profileRepo := repository.NewProfileRepository(gw)
	teamRepo := repository.NewTeamRepository(gw)
	playerRepo := repository.NewPlayerRepository(gw)
	registrationRepo := repository.NewRegistrationRepository(gw)
	contactRepo := repository.NewContactMessageRepository(gw)

	// Initialize session handling
	sessions, err := auth.NewAuthService(auth.NewAuthConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	provider, err := payment.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %w", err)
	}

	paymentSecret := cfg.PaymentKeySecret
	if paymentSecret == "" && cfg.PaymentProvider == "local" && !cfg.IsProduction() {
		logger.New().Warn("PAYMENT_KEY_SECRET is not set, using the local development secret")
		paymentSecret = devPaymentSecret
	}

	// Initialize services
	paymentService := service.NewPaymentService(registrationRepo, provider, service.PaymentConfig{
		KeySecret:       paymentSecret,
		Currency:        cfg.PaymentCurrency,
		PendingOrderTTL: cfg.PendingOrderTTL,
	}, validator)

	return &Dependencies{
		Gateway:             gw,
		Sessions:            sessions,
		Accounts:            userRepo,
		AccountService:      service.NewAccountService(userRepo, sessions, validator, cfg.PhotoMaxBytes),
		ProfileService:      service.NewProfileService(profileRepo, mirror, validator, cfg.PhotoMaxBytes),
		TeamService:         service.NewTeamService(teamRepo, playerRepo, validator),
		PlayerService:       service.NewPlayerService(teamRepo, playerRepo, rules),
		RegistrationService: service.NewRegistrationService(teamRepo, playerRepo, registrationRepo, fees, rules, validator),
		PaymentService:      paymentService,
		ContactService:      service.NewContactService(contactRepo, validator),
		AdminService:        service.NewAdminService(teamRepo, playerRepo, registrationRepo, contactRepo),
		Tournament:          tournament.InfoFromConfig(cfg),
	}, nil
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(deps *Dependencies, cfg *config.Config, version string) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	authMiddleware := auth.NewAuthMiddleware(deps.Sessions, deps.Accounts)
	requireAuth := authMiddleware.RequireAuth()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Gateway, version)
	authHandler := auth.NewAuthHandler(deps.Sessions)
	accountHandler := handlers.NewAccountHandler(deps.AccountService, deps.Sessions)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService, cfg.PhotoMaxBytes)
	teamHandler := handlers.NewTeamHandler(deps.TeamService, deps.PlayerService, deps.RegistrationService)
	registrationHandler := handlers.NewRegistrationHandler(deps.RegistrationService)
	paymentHandler := handlers.NewPaymentHandler(deps.PaymentService)
	contactHandler := handlers.NewContactHandler(deps.ContactService)
	adminHandler := handlers.NewAdminHandler(deps.AdminService, deps.PaymentService)
	tournamentHandler := handlers.NewTournamentHandler(deps.Tournament)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", accountHandler.Signup)
			authRoutes.POST("/login", accountHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.POST("/validate", authHandler.ValidateToken)
			authRoutes.GET("/check-email", accountHandler.CheckEmail)
			authRoutes.GET("/me", requireAuth, accountHandler.Me)
		}

		// Profile routes
		api.PUT("/profile", requireAuth, profileHandler.UpdateProfile)
		api.POST("/upload/photo", requireAuth, profileHandler.UploadPhoto)
		api.GET("/photos/:userId", profileHandler.GetPhoto)
		api.GET("/players/all", profileHandler.ListPlayers)

		// Team routes
		teams := api.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", requireAuth, teamHandler.CreateTeam)
			teams.GET("/mine", requireAuth, teamHandler.ListMyTeams)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.GET("/:id/status", requireAuth, teamHandler.GetTeamStatus)
			teams.GET("/:id/players", teamHandler.ListPlayers)
			teams.POST("/:id/players", requireAuth, teamHandler.AddPlayers)
		}

		// Registration routes
		api.GET("/registrations", registrationHandler.ListRegistrations)
		api.POST("/registrations", requireAuth, registrationHandler.CreateRegistration)

		// Payment routes; verify is authenticated by the provider signature
		payments := api.Group("/payment")
		{
			payments.POST("/create-order", requireAuth, paymentHandler.CreateOrder)
			payments.POST("/verify", paymentHandler.VerifyPayment)
			payments.POST("/failure", requireAuth, paymentHandler.ReportFailure)
		}

		api.POST("/contact", authMiddleware.OptionalAuth(), contactHandler.Submit)
		api.GET("/tournament-config", tournamentHandler.GetConfig)

		// Admin routes
		admin := api.Group("/admin", requireAuth, authMiddleware.RequireAdmin())
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/contact-messages", contactHandler.ListMessages)
			admin.PATCH("/contact-messages/:id", contactHandler.UpdateStatus)
			admin.POST("/registrations/:id/refund", adminHandler.Refund)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Error: "route not found", Code: handlers.CodeNotFound})
	})

	return router
}
