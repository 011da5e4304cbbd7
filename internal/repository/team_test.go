//go:build integration
// +build integration

package repository

import (
	"context"
	"sync"
	"testing"

	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TeamRepositoryTestSuite tests the TeamRepository and PlayerRepository
type TeamRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamRepository
	players       *PlayerRepository
	users         *UserRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *TeamRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	gw := suite.baseTestSuite.Gateway
	suite.repo = NewTeamRepository(gw)
	suite.players = NewPlayerRepository(gw)
	suite.users = NewUserRepository(gw)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *TeamRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TeamRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TeamRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TeamRepositoryTestSuite) createCaptain() *models.User {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.users.CreateWithProfile(suite.ctx, user, suite.factories.Profile.Create()))
	return user
}

func (suite *TeamRepositoryTestSuite) createTeam() *models.Team {
	captain := suite.createCaptain()
	team := suite.factories.Team.WithCaptain(captain.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, team))
	return team
}

func (suite *TeamRepositoryTestSuite) TestCreate() {
	team := suite.createTeam()

	suite.NotEqual(uuid.Nil, team.ID)
	suite.NotZero(team.CreatedAt)

	found, err := suite.repo.GetByID(suite.ctx, team.ID)
	suite.NoError(err)
	suite.Equal("Warriors", found.Name)
}

func (suite *TeamRepositoryTestSuite) TestCreateDuplicateNameAllowed() {
	first := suite.createTeam()
	second := suite.factories.Team.WithCaptain(first.CaptainID)

	suite.NoError(suite.repo.Create(suite.ctx, second))
	suite.NotEqual(first.ID, second.ID)
}

func (suite *TeamRepositoryTestSuite) TestCreateUnknownCaptain() {
	team := suite.factories.Team.WithCaptain(uuid.New())
	err := suite.repo.Create(suite.ctx, team)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *TeamRepositoryTestSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(suite.ctx, uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TeamRepositoryTestSuite) TestGetAllWithCaptain() {
	team := suite.createTeam()
	suite.Require().NoError(suite.players.AddBatch(suite.ctx, team.ID, suite.factories.Player.Roster(3), 15))

	teams, total, err := suite.repo.GetAll(suite.ctx, 20, 0)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(teams, 1)
	suite.Equal("Rohit Test", teams[0].CaptainName)
	suite.Equal(int64(3), teams[0].PlayerCount)
	suite.NotEmpty(teams[0].CaptainEmail)
}

func (suite *TeamRepositoryTestSuite) TestGetByCaptainID() {
	team := suite.createTeam()

	teams, err := suite.repo.GetByCaptainID(suite.ctx, team.CaptainID)
	suite.NoError(err)
	suite.Len(teams, 1)

	teams, err = suite.repo.GetByCaptainID(suite.ctx, uuid.New())
	suite.NoError(err)
	suite.Empty(teams)
}

func (suite *TeamRepositoryTestSuite) TestAddBatch() {
	team := suite.createTeam()

	err := suite.players.AddBatch(suite.ctx, team.ID, suite.factories.Player.Roster(11), 15)
	suite.Require().NoError(err)

	roster, err := suite.players.GetByTeamID(suite.ctx, team.ID)
	suite.NoError(err)
	suite.Len(roster, 11)
	for _, p := range roster {
		suite.Equal(team.ID, p.TeamID)
	}
}

func (suite *TeamRepositoryTestSuite) TestAddBatchOverCapacityWritesNothing() {
	team := suite.createTeam()
	suite.Require().NoError(suite.players.AddBatch(suite.ctx, team.ID, suite.factories.Player.Roster(11), 15))

	err := suite.players.AddBatch(suite.ctx, team.ID, suite.factories.Player.Roster(5), 15)
	suite.True(apperrors.IsValidation(err))

	count, err := suite.players.CountByTeamID(suite.ctx, team.ID)
	suite.NoError(err)
	suite.Equal(int64(11), count)
}

func (suite *TeamRepositoryTestSuite) TestAddBatchRejectedRowRollsBack() {
	team := suite.createTeam()
	roster := suite.factories.Player.Roster(4)
	roster[3].Age = 0 // violates chk_players_age

	err := suite.players.AddBatch(suite.ctx, team.ID, roster, 15)
	suite.True(apperrors.IsValidation(err))

	count, err := suite.players.CountByTeamID(suite.ctx, team.ID)
	suite.NoError(err)
	suite.Zero(count)
}

func (suite *TeamRepositoryTestSuite) TestAddBatchUnknownTeam() {
	err := suite.players.AddBatch(suite.ctx, uuid.New(), suite.factories.Player.Roster(1), 15)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TeamRepositoryTestSuite) TestAddBatchConcurrentNeverExceedsLimit() {
	team := suite.createTeam()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = suite.players.AddBatch(suite.ctx, team.ID, suite.factories.Player.Roster(6), 15)
		}()
	}
	wg.Wait()

	count, err := suite.players.CountByTeamID(suite.ctx, team.ID)
	suite.NoError(err)
	suite.Equal(int64(12), count, "only two batches of six fit under fifteen")
}

// TestTeamRepositoryTestSuite runs the test suite
func TestTeamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TeamRepositoryTestSuite))
}
