package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cricket-registration-backend/internal/api/handlers"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/mocks"
	"cricket-registration-backend/internal/service"
	"cricket-registration-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// ProfileHandlerTestSuite defines the test suite for ProfileHandler
type ProfileHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockProfileServiceInterface
	handler     *handlers.ProfileHandler
	httpSuite   *testutils.HTTPTestSuite
	accountID   uuid.UUID
}

func (suite *ProfileHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockProfileServiceInterface(suite.ctrl)
	suite.accountID = uuid.New()
	suite.handler = handlers.NewProfileHandler(suite.mockService, 1024)

	suite.httpSuite = testutils.SetupHTTPTest()
	suite.httpSuite.Router.PUT("/api/profile", asUser(suite.accountID), suite.handler.UpdateProfile)
	suite.httpSuite.Router.POST("/api/upload/photo", asUser(suite.accountID), suite.handler.UploadPhoto)
	suite.httpSuite.Router.GET("/api/photos/:userId", suite.handler.GetPhoto)
	suite.httpSuite.Router.GET("/api/players/all", suite.handler.ListPlayers)
}

func (suite *ProfileHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ProfileHandlerTestSuite) upload(data []byte, contentType string) *httptest.ResponseRecorder {
	return suite.httpSuite.UploadFile(suite.T(), "/api/upload/photo", "", "photo", "me.png", contentType, data)
}

func (suite *ProfileHandlerTestSuite) TestUpdateProfile() {
	suite.T().Run("Only listed fields are passed on", func(t *testing.T) {
		suite.mockService.EXPECT().UpdateProfile(gomock.Any(), suite.accountID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req *service.UpdateProfileRequest) (*service.ProfileResponse, error) {
				require.NotNil(t, req.Phone)
				assert.Equal(t, "9876543210", *req.Phone)
				assert.Nil(t, req.FullName)
				return &service.ProfileResponse{FullName: "Rohit", Phone: "9876543210"}, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/profile", map[string]interface{}{
			"phone":  "9876543210",
			"userId": uuid.New().String(),
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response struct {
			Profile service.ProfileResponse `json:"profile"`
		}
		testutils.ParseJSONResponse(t, recorder, &response)
		assert.Equal(t, "Rohit", response.Profile.FullName)
	})

	suite.T().Run("Invalid JSON", func(t *testing.T) {
		recorder := invalidJSONRequest(suite.httpSuite.Router, http.MethodPut, "/api/profile")
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "Invalid request body")
	})
}

func (suite *ProfileHandlerTestSuite) TestUploadPhoto() {
	suite.T().Run("Declared type is used", func(t *testing.T) {
		suite.mockService.EXPECT().UploadPhoto(gomock.Any(), suite.accountID, pngHeader, "image/png").
			Return(&service.PhotoUploadResponse{PhotoURL: "/api/photos/" + suite.accountID.String(), MimeType: "image/png", Size: len(pngHeader)}, nil)

		recorder := suite.upload(pngHeader, "image/png")

		var response service.PhotoUploadResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
		assert.Equal(t, "image/png", response.MimeType)
	})

	suite.T().Run("Missing type is sniffed", func(t *testing.T) {
		suite.mockService.EXPECT().UploadPhoto(gomock.Any(), suite.accountID, pngHeader, "image/png").
			Return(&service.PhotoUploadResponse{MimeType: "image/png"}, nil)

		recorder := suite.upload(pngHeader, "application/octet-stream")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	suite.T().Run("Too large", func(t *testing.T) {
		recorder := suite.upload(bytes.Repeat([]byte{1}, 2048), "image/png")
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "too large")
	})

	suite.T().Run("Unsupported type", func(t *testing.T) {
		suite.mockService.EXPECT().UploadPhoto(gomock.Any(), suite.accountID, gomock.Any(), "image/gif").
			Return(nil, apperrors.NewValidationError("photo", "only JPEG, PNG and WebP images are allowed"))

		recorder := suite.upload([]byte("GIF89a"), "image/gif")

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "JPEG")
	})

	suite.T().Run("Missing file", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/upload/photo", map[string]interface{}{})
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "photo file is required")
	})
}

func (suite *ProfileHandlerTestSuite) TestGetPhoto() {
	suite.T().Run("Raw bytes with long cache", func(t *testing.T) {
		suite.mockService.EXPECT().GetPhoto(gomock.Any(), suite.accountID).Return(pngHeader, "image/png", nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/photos/"+suite.accountID.String(), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=31536000", recorder.Header().Get("Cache-Control"))
		assert.Equal(t, pngHeader, recorder.Body.Bytes())
	})

	suite.T().Run("No photo", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().GetPhoto(gomock.Any(), id).Return(nil, "", apperrors.ErrPhotoNotFound)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/photos/"+id.String(), nil)

		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "photo not found")
	})
}

func (suite *ProfileHandlerTestSuite) TestListPlayers() {
	suite.T().Run("Paging is passed on", func(t *testing.T) {
		age := 24
		playerID := uuid.New()
		suite.mockService.EXPECT().ListPlayers(gomock.Any(), 2, 5).Return(&service.PlayerDirectoryResponse{
			Players: []service.PlayerDirectoryEntry{{
				ID:         playerID,
				FullName:   "Shubman Gill",
				Age:        &age,
				PlayerType: "Batsman",
				TeamName:   "Warriors",
				PhotoURL:   "/api/photos/" + playerID.String(),
			}},
			Total:    6,
			Page:     2,
			PageSize: 5,
		}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/players/all?page=2&page_size=5", nil)

		var response service.PlayerDirectoryResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
		require.Len(t, response.Players, 1)
		assert.Equal(t, "Shubman Gill", response.Players[0].FullName)
		assert.Equal(t, "/api/photos/"+playerID.String(), response.Players[0].PhotoURL)
		assert.Equal(t, int64(6), response.Total)
		assert.NotContains(t, recorder.Body.String(), "email")
		assert.NotContains(t, recorder.Body.String(), "phone")
	})

	suite.T().Run("Service failure", func(t *testing.T) {
		suite.mockService.EXPECT().ListPlayers(gomock.Any(), 1, 20).
			Return(nil, apperrors.NewUnavailableError("database", context.DeadlineExceeded))

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/players/all", nil)
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	})
}

func TestProfileHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileHandlerTestSuite))
}
