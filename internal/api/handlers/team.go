package handlers

import (
	"net/http"

	"cricket-registration-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for team operations
type TeamHandler struct {
	teamService         service.TeamServiceInterface
	playerService       service.PlayerServiceInterface
	registrationService service.RegistrationServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface, playerService service.PlayerServiceInterface, registrationService service.RegistrationServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService:         teamService,
		playerService:       playerService,
		registrationService: registrationService,
	}
}

// CreateTeam handles POST /api/teams
// @Summary Create a new team
// @Description Creates a team captained by the caller
// @Tags teams
// @Accept json
// @Produce json
// @Param team body service.CreateTeamRequest true "Team data"
// @Success 201 {object} service.TeamResponse "Successfully created team"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	captainID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), captainID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"team": team})
}

// GetTeam handles GET /api/teams/:id
// @Summary Get team by ID
// @Tags teams
// @Produce json
// @Param id path string true "Team ID (UUID)"
// @Success 200 {object} service.TeamResponse "Successfully retrieved team"
// @Failure 400 {object} ErrorResponse "Invalid team ID"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "team")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": team})
}

// ListTeams handles GET /api/teams
// @Summary List all teams
// @Description Lists teams with captain name and email, newest first
// @Tags teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.TeamListResponse "Successfully retrieved teams"
// @Router /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	page, pageSize := pageParams(c)

	teams, err := h.teamService.ListTeams(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// ListMyTeams handles GET /api/teams/mine
// @Summary List my teams
// @Description Lists the teams captained by the caller
// @Tags teams
// @Produce json
// @Success 200 {array} service.TeamResponse
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /teams/mine [get]
func (h *TeamHandler) ListMyTeams(c *gin.Context) {
	captainID, ok := callerID(c)
	if !ok {
		return
	}

	teams, err := h.teamService.ListMyTeams(c.Request.Context(), captainID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// GetTeamStatus handles GET /api/teams/:id/status
// @Summary Team workflow status
// @Description Reports the registration stage of the team to its captain
// @Tags teams
// @Produce json
// @Param id path string true "Team ID (UUID)"
// @Success 200 {object} service.TeamStatusResponse
// @Failure 403 {object} ErrorResponse "Not the team captain"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Security BearerAuth
// @Router /teams/{id}/status [get]
func (h *TeamHandler) GetTeamStatus(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "id", "team")
	if !ok {
		return
	}

	status, err := h.registrationService.GetTeamStatus(c.Request.Context(), accountID, teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// AddPlayers handles POST /api/teams/:id/players
// @Summary Add players
// @Description Adds a batch of players to the roster. Only the captain may add players and the batch is stored completely or not at all.
// @Tags players
// @Accept json
// @Produce json
// @Param id path string true "Team ID (UUID)"
// @Param players body service.AddPlayersRequest true "Players"
// @Success 201 {array} service.PlayerResponse
// @Failure 400 {object} ErrorResponse "Invalid players or roster limit exceeded"
// @Failure 403 {object} ErrorResponse "Not the team captain"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Security BearerAuth
// @Router /teams/{id}/players [post]
func (h *TeamHandler) AddPlayers(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := parseUUIDParam(c, "id", "team")
	if !ok {
		return
	}

	var req service.AddPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	players, err := h.playerService.AddPlayers(c.Request.Context(), accountID, teamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"players": players})
}

// ListPlayers handles GET /api/teams/:id/players
// @Summary List players
// @Tags players
// @Produce json
// @Param id path string true "Team ID (UUID)"
// @Success 200 {array} service.PlayerResponse
// @Failure 404 {object} ErrorResponse "Team not found"
// @Router /teams/{id}/players [get]
func (h *TeamHandler) ListPlayers(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "id", "team")
	if !ok {
		return
	}

	players, err := h.playerService.ListPlayers(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}
