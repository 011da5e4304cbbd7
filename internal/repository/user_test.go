//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository and ProfileRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	profiles      *ProfileRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewUserRepository(suite.baseTestSuite.Gateway)
	suite.profiles = NewProfileRepository(suite.baseTestSuite.Gateway)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *UserRepositoryTestSuite) TestCreateWithProfile() {
	user := suite.factories.User.Create()
	profile := suite.factories.Profile.Create()

	err := suite.repo.CreateWithProfile(suite.ctx, user, profile)
	suite.Require().NoError(err)
	suite.Equal(user.ID, profile.ID)

	loaded, err := suite.repo.GetWithProfile(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Profile)
	suite.Equal("Rohit Test", loaded.Profile.FullName)
	suite.Equal("Indian", loaded.Profile.Nationality)
	suite.False(loaded.EmailVerified)
}

func (suite *UserRepositoryTestSuite) TestCreateDuplicateEmail() {
	first := suite.factories.User.WithEmail("cap@x.com")
	suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, first, suite.factories.Profile.Create()))

	second := suite.factories.User.WithEmail("cap@x.com")
	err := suite.repo.CreateWithProfile(suite.ctx, second, suite.factories.Profile.Create())
	suite.ErrorIs(err, apperrors.ErrEmailExists)

	count, err := suite.repo.Count(suite.ctx)
	suite.NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *UserRepositoryTestSuite) TestCreateDuplicateAadharRollsBack() {
	first := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, first, suite.factories.Profile.WithAadhar("123412341234")))

	second := suite.factories.User.Create()
	err := suite.repo.CreateWithProfile(suite.ctx, second, suite.factories.Profile.WithAadhar("123412341234"))
	suite.True(apperrors.IsValidation(err))

	exists, err := suite.repo.ExistsByEmail(suite.ctx, second.Email)
	suite.NoError(err)
	suite.False(exists, "account insert must roll back with the profile")
}

func (suite *UserRepositoryTestSuite) TestGetByEmailIsExact() {
	user := suite.factories.User.WithEmail("Cap@X.com")
	suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, user, suite.factories.Profile.Create()))

	found, err := suite.repo.GetByEmail(suite.ctx, "Cap@X.com")
	suite.NoError(err)
	suite.Equal(user.ID, found.ID)

	_, err = suite.repo.GetByEmail(suite.ctx, "cap@x.com")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *UserRepositoryTestSuite) TestGetEmailByID() {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, user, suite.factories.Profile.Create()))

	email, err := suite.repo.GetEmailByID(suite.ctx, user.ID)
	suite.NoError(err)
	suite.Equal(user.Email, email)

	_, err = suite.repo.GetEmailByID(suite.ctx, uuid.New())
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (suite *UserRepositoryTestSuite) TestPhotoRoundTrip() {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, user, suite.factories.Profile.Create()))

	_, _, err := suite.profiles.GetPhoto(suite.ctx, user.ID)
	suite.ErrorIs(err, apperrors.ErrPhotoNotFound)

	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}
	suite.Require().NoError(suite.profiles.UpdatePhoto(suite.ctx, user.ID, data, "image/png", "/api/photos/"+user.ID.String()))

	got, mime, err := suite.profiles.GetPhoto(suite.ctx, user.ID)
	suite.NoError(err)
	suite.Equal(data, got)
	suite.Equal("image/png", mime)

	profile, err := suite.profiles.GetByID(suite.ctx, user.ID)
	suite.NoError(err)
	suite.Empty(profile.PhotoData)
	suite.Equal("/api/photos/"+user.ID.String(), profile.PhotoURL)
}

func (suite *UserRepositoryTestSuite) TestProfileUpdate() {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, user, suite.factories.Profile.Create()))

	err := suite.profiles.Update(suite.ctx, user.ID, map[string]interface{}{
		"phone":       "9000000000",
		"player_type": "Bowler",
	})
	suite.Require().NoError(err)

	profile, err := suite.profiles.GetByID(suite.ctx, user.ID)
	suite.NoError(err)
	suite.Equal("9000000000", profile.Phone)
	suite.Equal("Bowler", profile.PlayerType)
	suite.Equal("Rohit Test", profile.FullName)

	err = suite.profiles.Update(suite.ctx, uuid.New(), map[string]interface{}{"phone": "1"})
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *UserRepositoryTestSuite) TestClearedAadharIsNull() {
	first := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, first, suite.factories.Profile.WithAadhar("111122223333")))
	second := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, second, suite.factories.Profile.WithAadhar("444455556666")))

	suite.Require().NoError(suite.profiles.Update(suite.ctx, first.ID, map[string]interface{}{"aadhar_id": nil}))
	suite.Require().NoError(suite.profiles.Update(suite.ctx, second.ID, map[string]interface{}{"aadhar_id": nil}))

	profile, err := suite.profiles.GetByID(suite.ctx, second.ID)
	suite.NoError(err)
	suite.Nil(profile.AadharID)
}

func (suite *UserRepositoryTestSuite) TestListProfiles() {
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		user := suite.factories.User.Create()
		profile := suite.factories.Profile.Create()
		profile.PlayerType = "All-rounder"
		profile.TeamName = "Warriors"
		suite.Require().NoError(suite.repo.CreateWithProfile(suite.ctx, user, profile))
		ids = append(ids, user.ID)
	}
	suite.Require().NoError(suite.profiles.UpdatePhoto(suite.ctx, ids[0], []byte{0x89, 'P', 'N', 'G'}, "image/png", ""))

	page, total, err := suite.profiles.List(suite.ctx, 2, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(page, 2)

	all, _, err := suite.profiles.List(suite.ctx, 10, 0)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	for _, p := range all {
		suite.Equal("Warriors", p.TeamName)
		suite.Equal("All-rounder", p.PlayerType)
		suite.Equal(p.ID == ids[0], p.HasPhoto)
	}
}

// TestUserRepositoryTestSuite runs the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
