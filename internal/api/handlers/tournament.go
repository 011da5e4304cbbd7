package handlers

import (
	"net/http"

	"cricket-registration-backend/internal/tournament"

	"github.com/gin-gonic/gin"
)

// TournamentHandler serves the public tournament configuration
type TournamentHandler struct {
	info tournament.Info
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(info tournament.Info) *TournamentHandler {
	return &TournamentHandler{info: info}
}

// GetConfig handles GET /api/tournament-config
// @Summary Tournament configuration
// @Description Returns dates, fees, prizes, venue, contact details and team requirements
// @Tags tournament
// @Produce json
// @Success 200 {object} tournament.Info
// @Router /tournament-config [get]
func (h *TournamentHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.info)
}
