package service_test

import (
	"context"
	"errors"
	"testing"

	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/mocks"
	"cricket-registration-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// ContactServiceTestSuite defines the test suite for ContactService and AdminService
type ContactServiceTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	mockMessageRepo      *mocks.MockContactMessageRepositoryInterface
	mockTeamRepo         *mocks.MockTeamRepositoryInterface
	mockPlayerRepo       *mocks.MockPlayerRepositoryInterface
	mockRegistrationRepo *mocks.MockRegistrationRepositoryInterface
	contactService       *service.ContactService
	adminService         *service.AdminService
	ctx                  context.Context
}

// SetupTest sets up the test suite
func (suite *ContactServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockMessageRepo = mocks.NewMockContactMessageRepositoryInterface(suite.ctrl)
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockPlayerRepo = mocks.NewMockPlayerRepositoryInterface(suite.ctrl)
	suite.mockRegistrationRepo = mocks.NewMockRegistrationRepositoryInterface(suite.ctrl)
	suite.contactService = service.NewContactService(suite.mockMessageRepo, service.NewValidator())
	suite.adminService = service.NewAdminService(suite.mockTeamRepo, suite.mockPlayerRepo, suite.mockRegistrationRepo, suite.mockMessageRepo)
	suite.ctx = context.Background()
}

// TearDownTest cleans up after each test
func (suite *ContactServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestSubmit tests storing a contact message
func (suite *ContactServiceTestSuite) TestSubmit() {
	suite.mockMessageRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *models.ContactMessage) error {
			suite.Equal("Anil", m.Name)
			suite.Equal(models.ContactStatusUnread, m.Status)
			m.ID = uuid.New()
			return nil
		})

	msg, err := suite.contactService.Submit(suite.ctx, &service.ContactRequest{
		Name:    " Anil ",
		Email:   "anil@x.com",
		Message: "When do fixtures come out?",
	})
	suite.Require().NoError(err)
	suite.NotEqual(uuid.Nil, msg.ID)
}

// TestSubmitValidation tests required contact fields
func (suite *ContactServiceTestSuite) TestSubmitValidation() {
	_, err := suite.contactService.Submit(suite.ctx, &service.ContactRequest{Name: "Anil", Email: "anil@x.com"})
	var verr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal("message", verr.Field)
}

// TestList tests the status filter
func (suite *ContactServiceTestSuite) TestList() {
	unread := models.ContactStatusUnread
	suite.mockMessageRepo.EXPECT().GetAll(gomock.Any(), &unread, 20, 0).Return([]models.ContactMessage{{Name: "Anil"}}, int64(1), nil)

	resp, err := suite.contactService.List(suite.ctx, "unread", 1, 20)
	suite.Require().NoError(err)
	suite.Len(resp.Messages, 1)

	_, err = suite.contactService.List(suite.ctx, "archived", 1, 20)
	suite.True(apperrors.IsValidation(err))
}

// TestUpdateStatus tests triage status changes
func (suite *ContactServiceTestSuite) TestUpdateStatus() {
	id := uuid.New()
	suite.mockMessageRepo.EXPECT().UpdateStatus(gomock.Any(), id, models.ContactStatusRead).Return(nil)
	suite.NoError(suite.contactService.UpdateStatus(suite.ctx, id, &service.UpdateContactStatusRequest{Status: models.ContactStatusRead}))

	suite.mockMessageRepo.EXPECT().UpdateStatus(gomock.Any(), id, models.ContactStatusReplied).Return(gorm.ErrRecordNotFound)
	err := suite.contactService.UpdateStatus(suite.ctx, id, &service.UpdateContactStatusRequest{Status: models.ContactStatusReplied})
	suite.ErrorIs(err, apperrors.ErrContactMessageNotFound)

	err = suite.contactService.UpdateStatus(suite.ctx, id, &service.UpdateContactStatusRequest{Status: "archived"})
	suite.True(apperrors.IsValidation(err))
}

// TestStats tests the dashboard figures
func (suite *ContactServiceTestSuite) TestStats() {
	suite.mockTeamRepo.EXPECT().Count(gomock.Any()).Return(int64(4), nil)
	suite.mockRegistrationRepo.EXPECT().CountByStatus(gomock.Any(), models.PaymentStatusCompleted).Return(int64(2), nil)
	suite.mockRegistrationRepo.EXPECT().SumFeesByStatus(gomock.Any(), models.PaymentStatusCompleted).Return(int64(9000), nil)
	suite.mockRegistrationRepo.EXPECT().CountByStatus(gomock.Any(), models.PaymentStatusPending).Return(int64(1), nil)
	suite.mockPlayerRepo.EXPECT().Count(gomock.Any()).Return(int64(46), nil)
	suite.mockMessageRepo.EXPECT().Count(gomock.Any(), nil).Return(int64(3), nil)
	suite.mockMessageRepo.EXPECT().Count(gomock.Any(), gomock.Not(gomock.Nil())).Return(int64(1), nil)

	resp, err := suite.adminService.Stats(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(service.Stats{
		TotalTeams:            4,
		ConfirmedTeams:        2,
		TotalRevenue:          9000,
		PendingPayments:       1,
		TotalPlayers:          46,
		ContactMessages:       3,
		UnreadContactMessages: 1,
	}, resp.Stats)
}

// TestStatsFailure tests that one failing query fails the dashboard
func (suite *ContactServiceTestSuite) TestStatsFailure() {
	suite.mockTeamRepo.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("boom")).AnyTimes()
	suite.mockRegistrationRepo.EXPECT().CountByStatus(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	suite.mockRegistrationRepo.EXPECT().SumFeesByStatus(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	suite.mockPlayerRepo.EXPECT().Count(gomock.Any()).Return(int64(0), nil).AnyTimes()
	suite.mockMessageRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	_, err := suite.adminService.Stats(suite.ctx)
	suite.Error(err)
}

// TestContactServiceTestSuite runs the test suite
func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}
