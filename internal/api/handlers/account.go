package handlers

import (
	"net/http"

	"cricket-registration-backend/internal/auth"
	"cricket-registration-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles signup, login and the current account
type AccountHandler struct {
	accountService service.AccountServiceInterface
	sessions       *auth.AuthService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService service.AccountServiceInterface, sessions *auth.AuthService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		sessions:       sessions,
	}
}

// Signup handles POST /api/auth/signup
// @Summary Create an account
// @Description Creates an account with its profile and opens a session. The photo may be sent base64 encoded.
// @Tags auth
// @Accept json
// @Produce json
// @Param account body service.SignupRequest true "Account and profile data"
// @Success 201 {object} service.SessionResponse "Account created"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (h *AccountHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	session, err := h.accountService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.sessions.SetSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, session)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verifies credentials and opens a session
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "Credentials"
// @Success 200 {object} service.SessionResponse "Logged in"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	session, err := h.accountService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.sessions.SetSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, session)
}

// Me handles GET /api/auth/me
// @Summary Current account
// @Description Returns the authenticated account and its profile
// @Tags auth
// @Produce json
// @Success 200 {object} service.AccountResponse
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	account, err := h.accountService.Me(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}

// CheckEmail handles GET /api/auth/check-email
// @Summary Check email availability
// @Tags auth
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} service.EmailCheckResponse
// @Failure 400 {object} ErrorResponse "Invalid email"
// @Router /auth/check-email [get]
func (h *AccountHandler) CheckEmail(c *gin.Context) {
	resp, err := h.accountService.CheckEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
