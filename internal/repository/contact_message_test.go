//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	"cricket-registration-backend/internal/database/models"
	"cricket-registration-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ContactMessageRepositoryTestSuite tests the ContactMessageRepository
type ContactMessageRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ContactMessageRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *ContactMessageRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewContactMessageRepository(suite.baseTestSuite.Gateway)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *ContactMessageRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ContactMessageRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ContactMessageRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *ContactMessageRepositoryTestSuite) TestCreateAndFilter() {
	first := suite.factories.ContactMessage.Create()
	second := suite.factories.ContactMessage.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))
	suite.Require().NoError(suite.repo.Create(suite.ctx, second))

	suite.Require().NoError(suite.repo.UpdateStatus(suite.ctx, second.ID, models.ContactStatusReplied))

	unread := models.ContactStatusUnread
	messages, total, err := suite.repo.GetAll(suite.ctx, &unread, 20, 0)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(messages, 1)
	suite.Equal(first.ID, messages[0].ID)

	all, err := suite.repo.Count(suite.ctx, nil)
	suite.NoError(err)
	suite.Equal(int64(2), all)
}

func (suite *ContactMessageRepositoryTestSuite) TestUpdateStatusNotFound() {
	err := suite.repo.UpdateStatus(suite.ctx, uuid.New(), models.ContactStatusRead)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestContactMessageRepositoryTestSuite runs the test suite
func TestContactMessageRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ContactMessageRepositoryTestSuite))
}
