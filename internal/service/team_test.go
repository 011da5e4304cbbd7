package service_test

import (
	"context"
	"testing"

	"cricket-registration-backend/internal/database/models"
	apperrors "cricket-registration-backend/internal/errors"
	"cricket-registration-backend/internal/mocks"
	"cricket-registration-backend/internal/repository"
	"cricket-registration-backend/internal/service"
	"cricket-registration-backend/internal/tournament"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// TeamServiceTestSuite defines the test suite for TeamService and PlayerService
type TeamServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockTeamRepo   *mocks.MockTeamRepositoryInterface
	mockPlayerRepo *mocks.MockPlayerRepositoryInterface
	teamService    *service.TeamService
	playerService  *service.PlayerService
	ctx            context.Context
	captainID      uuid.UUID
	team           *models.Team
}

// SetupTest sets up the test suite
func (suite *TeamServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockPlayerRepo = mocks.NewMockPlayerRepositoryInterface(suite.ctrl)
	suite.teamService = service.NewTeamService(suite.mockTeamRepo, suite.mockPlayerRepo, service.NewValidator())
	suite.playerService = service.NewPlayerService(suite.mockTeamRepo, suite.mockPlayerRepo, tournament.DefaultRules())
	suite.ctx = context.Background()

	suite.captainID = uuid.New()
	suite.team = &models.Team{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Warriors",
		CaptainID: suite.captainID,
	}
}

// TearDownTest cleans up after each test
func (suite *TeamServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func roster(n int) []service.PlayerInput {
	players := make([]service.PlayerInput, n)
	for i := range players {
		players[i] = service.PlayerInput{Name: "Player", Age: 20 + i%11, Position: "Batsman"}
	}
	return players
}

// TestCreateTeam tests that the caller becomes captain
func (suite *TeamServiceTestSuite) TestCreateTeam() {
	suite.mockTeamRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, team *models.Team) error {
			suite.Equal(suite.captainID, team.CaptainID)
			team.ID = uuid.New()
			return nil
		})

	resp, err := suite.teamService.CreateTeam(suite.ctx, suite.captainID, &service.CreateTeamRequest{
		Name:         " Warriors ",
		ContactEmail: "cap@x.com",
		ContactPhone: "9876543210",
		City:         "Mumbai",
		State:        "Maharashtra",
	})
	suite.Require().NoError(err)
	suite.Equal("Warriors", resp.Name)
	suite.Equal(suite.captainID, resp.CaptainID)
	suite.Zero(resp.PlayerCount)
}

// TestCreateTeamValidation tests required team fields
func (suite *TeamServiceTestSuite) TestCreateTeamValidation() {
	testCases := []struct {
		name    string
		request *service.CreateTeamRequest
		field   string
	}{
		{
			name:    "missing name",
			request: &service.CreateTeamRequest{ContactEmail: "cap@x.com", ContactPhone: "1", City: "c", State: "s"},
			field:   "name",
		},
		{
			name:    "invalid email",
			request: &service.CreateTeamRequest{Name: "W", ContactEmail: "cap", ContactPhone: "1", City: "c", State: "s"},
			field:   "contactEmail",
		},
		{
			name:    "missing city",
			request: &service.CreateTeamRequest{Name: "W", ContactEmail: "cap@x.com", ContactPhone: "1", State: "s"},
			field:   "city",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.teamService.CreateTeam(suite.ctx, suite.captainID, tc.request)
			var verr *apperrors.ValidationError
			suite.Require().ErrorAs(err, &verr)
			suite.Equal(tc.field, verr.Field)
		})
	}
}

// TestGetTeam tests team lookup with roster size
func (suite *TeamServiceTestSuite) TestGetTeam() {
	suite.Run("found", func() {
		suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), suite.team.ID).Return(suite.team, nil)
		suite.mockPlayerRepo.EXPECT().CountByTeamID(gomock.Any(), suite.team.ID).Return(int64(11), nil)

		resp, err := suite.teamService.GetTeam(suite.ctx, suite.team.ID)
		suite.Require().NoError(err)
		suite.Equal(int64(11), resp.PlayerCount)
	})

	suite.Run("not found", func() {
		id := uuid.New()
		suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := suite.teamService.GetTeam(suite.ctx, id)
		suite.ErrorIs(err, apperrors.ErrTeamNotFound)
	})
}

// TestListTeams tests pagination normalization
func (suite *TeamServiceTestSuite) TestListTeams() {
	suite.mockTeamRepo.EXPECT().GetAll(gomock.Any(), 100, 100).
		Return([]repository.TeamSummary{{ID: suite.team.ID, Name: "Warriors"}}, int64(101), nil)

	resp, err := suite.teamService.ListTeams(suite.ctx, 2, 500)
	suite.Require().NoError(err)
	suite.Equal(2, resp.Page)
	suite.Equal(100, resp.PageSize)
	suite.Equal(int64(101), resp.Total)
	suite.Len(resp.Teams, 1)
}

// TestListMyTeams tests the captain's own teams
func (suite *TeamServiceTestSuite) TestListMyTeams() {
	suite.mockTeamRepo.EXPECT().GetByCaptainID(gomock.Any(), suite.captainID).Return([]models.Team{*suite.team}, nil)
	suite.mockPlayerRepo.EXPECT().CountByTeamID(gomock.Any(), suite.team.ID).Return(int64(3), nil)

	teams, err := suite.teamService.ListMyTeams(suite.ctx, suite.captainID)
	suite.Require().NoError(err)
	suite.Require().Len(teams, 1)
	suite.Equal(int64(3), teams[0].PlayerCount)
}

// TestAddPlayers tests a valid batch from the captain
func (suite *TeamServiceTestSuite) TestAddPlayers() {
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), suite.team.ID).Return(suite.team, nil)
	suite.mockPlayerRepo.EXPECT().AddBatch(gomock.Any(), suite.team.ID, gomock.Len(11), 15).
		DoAndReturn(func(_ context.Context, teamID uuid.UUID, players []models.Player, _ int) error {
			for i := range players {
				players[i].ID = uuid.New()
				players[i].TeamID = teamID
			}
			return nil
		})

	players, err := suite.playerService.AddPlayers(suite.ctx, suite.captainID, suite.team.ID, &service.AddPlayersRequest{Players: roster(11)})
	suite.Require().NoError(err)
	suite.Len(players, 11)
	for _, p := range players {
		suite.Equal(suite.team.ID, p.TeamID)
		suite.NotEqual(uuid.Nil, p.ID)
	}
}

// TestAddPlayersByNonCaptain tests that only the captain can change the roster
func (suite *TeamServiceTestSuite) TestAddPlayersByNonCaptain() {
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), suite.team.ID).Return(suite.team, nil)
	suite.mockPlayerRepo.EXPECT().AddBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := suite.playerService.AddPlayers(suite.ctx, uuid.New(), suite.team.ID, &service.AddPlayersRequest{Players: roster(1)})
	suite.ErrorIs(err, apperrors.ErrNotTeamCaptain)
	suite.True(apperrors.IsAuthorization(err))
}

// TestAddPlayersValidation tests that one bad player rejects the whole batch
func (suite *TeamServiceTestSuite) TestAddPlayersValidation() {
	testCases := []struct {
		name    string
		players []service.PlayerInput
	}{
		{name: "empty batch", players: nil},
		{name: "too young", players: append(roster(5), service.PlayerInput{Name: "Kid", Age: 12})},
		{name: "too old", players: append(roster(5), service.PlayerInput{Name: "Veteran", Age: 51})},
		{name: "missing age", players: append(roster(5), service.PlayerInput{Name: "Unknown"})},
		{name: "blank name", players: append(roster(5), service.PlayerInput{Name: "   ", Age: 25})},
		{name: "batch above roster cap", players: roster(16)},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), suite.team.ID).Return(suite.team, nil)
			suite.mockPlayerRepo.EXPECT().AddBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := suite.playerService.AddPlayers(suite.ctx, suite.captainID, suite.team.ID, &service.AddPlayersRequest{Players: tc.players})
			suite.True(apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

// TestAddPlayersRosterOverflow tests the repository's roster cap check surfacing as validation
func (suite *TeamServiceTestSuite) TestAddPlayersRosterOverflow() {
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), suite.team.ID).Return(suite.team, nil)
	suite.mockPlayerRepo.EXPECT().AddBatch(gomock.Any(), suite.team.ID, gomock.Any(), 15).
		Return(apperrors.NewValidationError("players", "roster cannot exceed 15 players (currently 11)"))

	_, err := suite.playerService.AddPlayers(suite.ctx, suite.captainID, suite.team.ID, &service.AddPlayersRequest{Players: roster(5)})
	suite.True(apperrors.IsValidation(err))
}

// TestAddPlayersUnknownTeam tests adding to a missing team
func (suite *TeamServiceTestSuite) TestAddPlayersUnknownTeam() {
	id := uuid.New()
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.playerService.AddPlayers(suite.ctx, suite.captainID, id, &service.AddPlayersRequest{Players: roster(1)})
	suite.ErrorIs(err, apperrors.ErrTeamNotFound)
}

// TestListPlayers tests roster listing
func (suite *TeamServiceTestSuite) TestListPlayers() {
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), suite.team.ID).Return(suite.team, nil)
	suite.mockPlayerRepo.EXPECT().GetByTeamID(gomock.Any(), suite.team.ID).Return([]models.Player{
		{ID: uuid.New(), TeamID: suite.team.ID, Name: "Virat", Age: 24},
	}, nil)

	players, err := suite.playerService.ListPlayers(suite.ctx, suite.team.ID)
	suite.Require().NoError(err)
	suite.Require().Len(players, 1)
	suite.Equal("Virat", players[0].Name)
}

// TestTeamServiceTestSuite runs the test suite
func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
