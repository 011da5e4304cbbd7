package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/mocks"
	"cricket-registration-backend/internal/repository"
	"cricket-registration-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type stubMirror struct {
	url   string
	err   error
	calls int
}

func (m *stubMirror) UploadPhoto(_ context.Context, _ uuid.UUID, _ string, _ []byte, _ string) (string, error) {
	m.calls++
	return m.url, m.err
}

// ProfileServiceTestSuite defines the test suite for ProfileService
type ProfileServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockProfileRepo *mocks.MockProfileRepositoryInterface
	profileService  *service.ProfileService
	ctx             context.Context
	accountID       uuid.UUID
}

// SetupTest sets up the test suite
func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockProfileRepo = mocks.NewMockProfileRepositoryInterface(suite.ctrl)
	suite.profileService = service.NewProfileService(suite.mockProfileRepo, nil, service.NewValidator(), 0)
	suite.ctx = context.Background()
	suite.accountID = uuid.New()
}

// TearDownTest cleans up after each test
func (suite *ProfileServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestUpdateProfile tests that only provided fields are written
func (suite *ProfileServiceTestSuite) TestUpdateProfile() {
	city := " Andheri East "
	age := 28
	suite.mockProfileRepo.EXPECT().Update(gomock.Any(), suite.accountID, map[string]interface{}{
		"address": "Andheri East",
		"age":     28,
	}).Return(nil)
	suite.mockProfileRepo.EXPECT().GetByID(gomock.Any(), suite.accountID).Return(&models.Profile{
		ID:       suite.accountID,
		FullName: "Rohit Sharma",
		Address:  "Andheri East",
		Age:      &age,
	}, nil)

	profile, err := suite.profileService.UpdateProfile(suite.ctx, suite.accountID, &service.UpdateProfileRequest{
		Address: &city,
		Age:     &age,
	})
	suite.Require().NoError(err)
	suite.Equal("Andheri East", profile.Address)
}

// TestUpdateProfileRejections tests invalid and empty updates
func (suite *ProfileServiceTestSuite) TestUpdateProfileRejections() {
	blank := "  "
	_, err := suite.profileService.UpdateProfile(suite.ctx, suite.accountID, &service.UpdateProfileRequest{FullName: &blank})
	suite.True(apperrors.IsValidation(err))

	_, err = suite.profileService.UpdateProfile(suite.ctx, suite.accountID, &service.UpdateProfileRequest{})
	suite.True(apperrors.IsValidation(err))

	aadhar := "123"
	_, err = suite.profileService.UpdateProfile(suite.ctx, suite.accountID, &service.UpdateProfileRequest{AadharID: &aadhar})
	suite.True(apperrors.IsValidation(err))
}

// TestUpdateProfileDuplicateAadhar tests the unique aadhar surfacing as a field error
func (suite *ProfileServiceTestSuite) TestUpdateProfileDuplicateAadhar() {
	aadhar := "123412341234"
	suite.mockProfileRepo.EXPECT().Update(gomock.Any(), suite.accountID, gomock.Any()).
		Return(apperrors.NewValidationError("aadharId", "aadhar id is already registered"))

	_, err := suite.profileService.UpdateProfile(suite.ctx, suite.accountID, &service.UpdateProfileRequest{AadharID: &aadhar})
	var verr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal("aadharId", verr.Field)
}

// TestUpdateProfileClearsAadhar tests that a cleared aadhar id is written as NULL
func (suite *ProfileServiceTestSuite) TestUpdateProfileClearsAadhar() {
	cleared := ""
	suite.mockProfileRepo.EXPECT().Update(gomock.Any(), suite.accountID, map[string]interface{}{
		"aadhar_id": nil,
	}).Return(nil)
	suite.mockProfileRepo.EXPECT().GetByID(gomock.Any(), suite.accountID).Return(&models.Profile{
		ID:       suite.accountID,
		FullName: "Rohit Sharma",
	}, nil)

	profile, err := suite.profileService.UpdateProfile(suite.ctx, suite.accountID, &service.UpdateProfileRequest{AadharID: &cleared})
	suite.Require().NoError(err)
	suite.Nil(profile.AadharID)
}

// TestUploadAndFetchPhoto tests that stored bytes and MIME type come back unchanged
func (suite *ProfileServiceTestSuite) TestUploadAndFetchPhoto() {
	data := bytes.Repeat([]byte{0xFF, 0xD8, 0xFF}, 100)
	var storedData []byte
	var storedType string

	suite.mockProfileRepo.EXPECT().GetByID(gomock.Any(), suite.accountID).Return(&models.Profile{ID: suite.accountID}, nil)
	suite.mockProfileRepo.EXPECT().UpdatePhoto(gomock.Any(), suite.accountID, data, "image/jpeg", "/api/photos/"+suite.accountID.String()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, d []byte, mimeType, _ string) error {
			storedData, storedType = d, mimeType
			return nil
		})

	resp, err := suite.profileService.UploadPhoto(suite.ctx, suite.accountID, data, "IMAGE/JPEG")
	suite.Require().NoError(err)
	suite.Equal(len(data), resp.Size)

	suite.mockProfileRepo.EXPECT().GetPhoto(gomock.Any(), suite.accountID).Return(storedData, storedType, nil)
	got, mimeType, err := suite.profileService.GetPhoto(suite.ctx, suite.accountID)
	suite.Require().NoError(err)
	suite.Equal(data, got)
	suite.Equal("image/jpeg", mimeType)
}

// TestUploadPhotoRejections tests type and size limits
func (suite *ProfileServiceTestSuite) TestUploadPhotoRejections() {
	_, err := suite.profileService.UploadPhoto(suite.ctx, suite.accountID, []byte("GIF89a"), "image/gif")
	suite.True(apperrors.IsValidation(err))

	_, err = suite.profileService.UploadPhoto(suite.ctx, suite.accountID, nil, "image/png")
	suite.True(apperrors.IsValidation(err))

	big := make([]byte, service.DefaultPhotoMaxBytes+1)
	_, err = suite.profileService.UploadPhoto(suite.ctx, suite.accountID, big, "image/png")
	suite.True(apperrors.IsValidation(err))
}

// TestUploadPhotoMirror tests that the mirror URL is stored and mirror failures are tolerated
func (suite *ProfileServiceTestSuite) TestUploadPhotoMirror() {
	data := []byte("\x89PNG\r\n\x1a\n")

	suite.Run("mirrored", func() {
		mirror := &stubMirror{url: "https://cdn.example.com/profiles/rohit.png"}
		svc := service.NewProfileService(suite.mockProfileRepo, mirror, service.NewValidator(), 0)
		suite.mockProfileRepo.EXPECT().GetByID(gomock.Any(), suite.accountID).Return(&models.Profile{ID: suite.accountID, FullName: "Rohit"}, nil)
		suite.mockProfileRepo.EXPECT().UpdatePhoto(gomock.Any(), suite.accountID, data, "image/png", mirror.url).Return(nil)

		resp, err := svc.UploadPhoto(suite.ctx, suite.accountID, data, "image/png")
		suite.Require().NoError(err)
		suite.Equal(mirror.url, resp.PhotoURL)
		suite.Equal(1, mirror.calls)
	})

	suite.Run("mirror down", func() {
		mirror := &stubMirror{err: errors.New("bucket unreachable")}
		svc := service.NewProfileService(suite.mockProfileRepo, mirror, service.NewValidator(), 0)
		suite.mockProfileRepo.EXPECT().GetByID(gomock.Any(), suite.accountID).Return(&models.Profile{ID: suite.accountID}, nil)
		suite.mockProfileRepo.EXPECT().UpdatePhoto(gomock.Any(), suite.accountID, data, "image/png", "/api/photos/"+suite.accountID.String()).Return(nil)

		resp, err := svc.UploadPhoto(suite.ctx, suite.accountID, data, "image/png")
		suite.Require().NoError(err)
		suite.Equal("/api/photos/"+suite.accountID.String(), resp.PhotoURL)
	})
}

// TestGetPhotoMissing tests fetching a photo that was never uploaded
func (suite *ProfileServiceTestSuite) TestGetPhotoMissing() {
	suite.mockProfileRepo.EXPECT().GetPhoto(gomock.Any(), suite.accountID).Return(nil, "", gorm.ErrRecordNotFound)

	_, _, err := suite.profileService.GetPhoto(suite.ctx, suite.accountID)
	suite.ErrorIs(err, apperrors.ErrPhotoNotFound)
}

// TestListPlayers tests paging defaults and the photo URL of directory entries
func (suite *ProfileServiceTestSuite) TestListPlayers() {
	mirrored := uuid.New()
	stored := uuid.New()
	none := uuid.New()
	suite.mockProfileRepo.EXPECT().List(gomock.Any(), 20, 0).Return([]repository.ProfileSummary{
		{ID: mirrored, FullName: "Mirrored", PhotoURL: "https://cdn.example/p.png", HasPhoto: true},
		{ID: stored, FullName: "Stored", HasPhoto: true},
		{ID: none, FullName: "No Photo"},
	}, int64(3), nil)

	result, err := suite.profileService.ListPlayers(suite.ctx, 0, 0)
	suite.Require().NoError(err)
	suite.Equal(1, result.Page)
	suite.Equal(20, result.PageSize)
	suite.Equal(int64(3), result.Total)
	suite.Require().Len(result.Players, 3)
	suite.Equal("https://cdn.example/p.png", result.Players[0].PhotoURL)
	suite.Equal("/api/photos/"+stored.String(), result.Players[1].PhotoURL)
	suite.Empty(result.Players[2].PhotoURL)
}

// TestListPlayersEmpty tests that an empty directory encodes as an empty list
func (suite *ProfileServiceTestSuite) TestListPlayersEmpty() {
	suite.mockProfileRepo.EXPECT().List(gomock.Any(), 10, 10).Return(nil, int64(0), nil)

	result, err := suite.profileService.ListPlayers(suite.ctx, 2, 10)
	suite.Require().NoError(err)
	suite.NotNil(result.Players)
	suite.Empty(result.Players)
}

// TestProfileServiceTestSuite runs the test suite
func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
