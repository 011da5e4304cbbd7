package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the session endpoints that need no account store
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// ValidateTokenRequest carries a token to introspect
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Clears the session cookie. Tokens are stateless and stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Logged out successfully"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ValidateToken handles POST /api/auth/validate
// @Summary Validate session token
// @Description Validates a token from the body, the session cookie or the Authorization header
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ValidateTokenRequest false "Token to validate"
// @Success 200 {object} AuthValidateResponse
// @Failure 401 {object} AuthValidateResponse
// @Router /auth/validate [post]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req ValidateTokenRequest
	_ = c.ShouldBindJSON(&req)

	token := req.Token
	if token == "" {
		token = TokenFromRequest(c)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, AuthValidateResponse{Valid: false})
		return
	}

	claims, err := h.service.ValidateJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, AuthValidateResponse{Valid: false})
		return
	}

	c.JSON(http.StatusOK, AuthValidateResponse{
		Valid:     true,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}
