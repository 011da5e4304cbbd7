package handlers

import (
	"io"
	"net/http"

	"cricket-registration-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles profile updates and profile photos
type ProfileHandler struct {
	profileService service.ProfileServiceInterface
	maxPhotoBytes  int64
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService service.ProfileServiceInterface, maxPhotoBytes int64) *ProfileHandler {
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = service.DefaultPhotoMaxBytes
	}
	return &ProfileHandler{
		profileService: profileService,
		maxPhotoBytes:  maxPhotoBytes,
	}
}

// UpdateProfile handles PUT /api/profile
// @Summary Update profile
// @Description Updates the listed profile fields of the caller. Omitted fields are unchanged.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body service.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} service.ProfileResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), accountID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UploadPhoto handles POST /api/upload/photo
// @Summary Upload profile photo
// @Description Stores a JPEG, PNG or WebP photo of at most 5MB from the multipart field "photo"
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Photo"
// @Success 200 {object} service.PhotoUploadResponse
// @Failure 400 {object} ErrorResponse "Missing, oversized or unsupported photo"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /upload/photo [post]
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		respondBadRequest(c, "photo file is required")
		return
	}
	if file.Size > h.maxPhotoBytes {
		respondBadRequest(c, "photo is too large")
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxPhotoBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	resp, err := h.profileService.UploadPhoto(c.Request.Context(), accountID, data, mimeType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPhoto handles GET /api/photos/:userId
// @Summary Get profile photo
// @Description Returns the raw stored photo with its MIME type
// @Tags profile
// @Produce image/jpeg,image/png,image/webp
// @Param userId path string true "Account ID (UUID)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Invalid account ID"
// @Failure 404 {object} ErrorResponse "Photo not found"
// @Router /photos/{userId} [get]
func (h *ProfileHandler) GetPhoto(c *gin.Context) {
	accountID, ok := parseUUIDParam(c, "userId", "user")
	if !ok {
		return
	}

	data, mimeType, err := h.profileService.GetPhoto(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	c.Data(http.StatusOK, mimeType, data)
}

// ListPlayers handles GET /api/players/all
// @Summary List registered players
// @Description Lists player profiles newest first with name, age, player type, team name and photo URL. Contact details are not included.
// @Tags players
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.PlayerDirectoryResponse "Successfully retrieved players"
// @Router /players/all [get]
func (h *ProfileHandler) ListPlayers(c *gin.Context) {
	page, pageSize := pageParams(c)

	players, err := h.profileService.ListPlayers(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}
