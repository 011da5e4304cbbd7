package service_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"cricket-registration-backend/internal/auth"
	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/mocks"
	"cricket-registration-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// AccountServiceTestSuite defines the test suite for AccountService
type AccountServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockUserRepo   *mocks.MockUserRepositoryInterface
	authService    *auth.AuthService
	accountService *service.AccountService
	ctx            context.Context
}

// SetupTest sets up the test suite
func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)

	authService, err := auth.NewAuthService(&auth.AuthConfig{
		JWTSecret:  "test-secret",
		Issuer:     "test",
		SessionTTL: time.Hour,
	})
	suite.Require().NoError(err)
	suite.authService = authService

	suite.accountService = service.NewAccountService(suite.mockUserRepo, authService, service.NewValidator(), service.DefaultPhotoMaxBytes)
	suite.ctx = context.Background()
}

// TearDownTest cleans up after each test
func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AccountServiceTestSuite) signupRequest() *service.SignupRequest {
	return &service.SignupRequest{
		Email:    "cap@x.com",
		Password: "secret123",
		FullName: "Rohit Sharma",
	}
}

// TestSignupThenLogin tests that a freshly created account can log in with its password
func (suite *AccountServiceTestSuite) TestSignupThenLogin() {
	var stored *models.User
	suite.mockUserRepo.EXPECT().ExistsByEmail(gomock.Any(), "cap@x.com").Return(false, nil)
	suite.mockUserRepo.EXPECT().CreateWithProfile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User, profile *models.Profile) error {
			user.ID = uuid.New()
			profile.ID = user.ID
			stored = user
			return nil
		})

	session, err := suite.accountService.Signup(suite.ctx, suite.signupRequest())
	suite.Require().NoError(err)
	suite.NotEmpty(session.Token)
	suite.Equal("cap@x.com", session.User.Email)
	suite.Require().NotNil(session.User.Profile)
	suite.Equal("Rohit Sharma", session.User.Profile.FullName)
	suite.NotEqual("secret123", stored.PasswordHash)

	claims, err := suite.authService.ValidateJWT(session.Token)
	suite.Require().NoError(err)
	suite.Equal(stored.ID.String(), claims.UserID)

	suite.mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "cap@x.com").Return(stored, nil)
	login, err := suite.accountService.Login(suite.ctx, &service.LoginRequest{Email: "cap@x.com", Password: "secret123"})
	suite.Require().NoError(err)
	suite.Equal(stored.ID, login.User.ID)
	suite.NotEmpty(login.Token)

	suite.mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "cap@x.com").Return(stored, nil)
	_, err = suite.accountService.Login(suite.ctx, &service.LoginRequest{Email: "cap@x.com", Password: "wrong-pass"})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

// TestSignupDuplicateEmail tests both the pre-check and the insert race
func (suite *AccountServiceTestSuite) TestSignupDuplicateEmail() {
	suite.Run("existing email", func() {
		suite.mockUserRepo.EXPECT().ExistsByEmail(gomock.Any(), "cap@x.com").Return(true, nil)

		_, err := suite.accountService.Signup(suite.ctx, suite.signupRequest())
		suite.ErrorIs(err, apperrors.ErrEmailExists)
	})

	suite.Run("concurrent signup", func() {
		suite.mockUserRepo.EXPECT().ExistsByEmail(gomock.Any(), "cap@x.com").Return(false, nil)
		suite.mockUserRepo.EXPECT().CreateWithProfile(gomock.Any(), gomock.Any(), gomock.Any()).Return(apperrors.ErrEmailExists)

		_, err := suite.accountService.Signup(suite.ctx, suite.signupRequest())
		suite.ErrorIs(err, apperrors.ErrEmailExists)
	})
}

// TestSignupValidation tests that invalid input never reaches the repository
func (suite *AccountServiceTestSuite) TestSignupValidation() {
	testCases := []struct {
		name   string
		mutate func(*service.SignupRequest)
		field  string
	}{
		{name: "missing email", mutate: func(r *service.SignupRequest) { r.Email = "" }, field: "email"},
		{name: "malformed email", mutate: func(r *service.SignupRequest) { r.Email = "not-an-email" }, field: "email"},
		{name: "short password", mutate: func(r *service.SignupRequest) { r.Password = "123" }, field: "password"},
		{name: "missing name", mutate: func(r *service.SignupRequest) { r.FullName = "" }, field: "fullName"},
		{name: "bad aadhar", mutate: func(r *service.SignupRequest) { r.AadharID = "12ab" }, field: "aadharId"},
		{name: "bad date", mutate: func(r *service.SignupRequest) { r.DateOfBirth = "30/04/1995" }, field: "dateOfBirth"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.signupRequest()
			tc.mutate(req)

			_, err := suite.accountService.Signup(suite.ctx, req)
			suite.Require().Error(err)
			suite.True(apperrors.IsValidation(err))
			var verr *apperrors.ValidationError
			suite.Require().ErrorAs(err, &verr)
			suite.Equal(tc.field, verr.Field)
		})
	}
}

// TestSignupWithPhoto tests that a data URL photo is decoded into the profile
func (suite *AccountServiceTestSuite) TestSignupWithPhoto() {
	png := []byte("\x89PNG\r\n\x1a\nfake-image-bytes")
	req := suite.signupRequest()
	req.Photo = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	suite.mockUserRepo.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)
	suite.mockUserRepo.EXPECT().CreateWithProfile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User, profile *models.Profile) error {
			suite.Equal(png, profile.PhotoData)
			suite.Require().NotNil(profile.PhotoMimeType)
			suite.Equal("image/png", *profile.PhotoMimeType)
			user.ID = uuid.New()
			return nil
		})

	session, err := suite.accountService.Signup(suite.ctx, req)
	suite.Require().NoError(err)
	suite.True(session.User.Profile.HasPhoto)
}

// TestSignupRejectsUnsupportedPhoto tests the photo type allow-list
func (suite *AccountServiceTestSuite) TestSignupRejectsUnsupportedPhoto() {
	req := suite.signupRequest()
	req.Photo = "data:image/gif;base64," + base64.StdEncoding.EncodeToString([]byte("GIF89a"))
	suite.mockUserRepo.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := suite.accountService.Signup(suite.ctx, req)
	suite.True(apperrors.IsValidation(err))
}

// TestLoginUnknownEmail tests that unknown emails get the same error as wrong passwords
func (suite *AccountServiceTestSuite) TestLoginUnknownEmail() {
	suite.mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.accountService.Login(suite.ctx, &service.LoginRequest{Email: "ghost@x.com", Password: "whatever"})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

// TestMe tests the current account view
func (suite *AccountServiceTestSuite) TestMe() {
	id := uuid.New()

	suite.Run("found", func() {
		suite.mockUserRepo.EXPECT().GetWithProfile(gomock.Any(), id).Return(&models.User{
			BaseModel: models.BaseModel{ID: id},
			Email:     "cap@x.com",
			Profile:   &models.Profile{ID: id, FullName: "Rohit Sharma"},
		}, nil)

		account, err := suite.accountService.Me(suite.ctx, id)
		suite.Require().NoError(err)
		suite.Equal(id, account.ID)
		suite.False(account.Profile.HasPhoto)
	})

	suite.Run("deleted account", func() {
		suite.mockUserRepo.EXPECT().GetWithProfile(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := suite.accountService.Me(suite.ctx, id)
		suite.ErrorIs(err, apperrors.ErrUserNotFound)
	})
}

// TestCheckEmail tests the email availability check
func (suite *AccountServiceTestSuite) TestCheckEmail() {
	suite.mockUserRepo.EXPECT().ExistsByEmail(gomock.Any(), "cap@x.com").Return(true, nil)
	resp, err := suite.accountService.CheckEmail(suite.ctx, " cap@x.com ")
	suite.Require().NoError(err)
	suite.True(resp.Exists)

	_, err = suite.accountService.CheckEmail(suite.ctx, "nope")
	suite.True(apperrors.IsValidation(err))
}

// TestAccountServiceTestSuite runs the test suite
func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
