package handlers_test

import (
	"net/http"
	"testing"

	"task-manager-backend/internal/api/handlers"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/mocks"
	"task-manager-backend/internal/service"
	"task-manager-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// TeamHandlerTestSuite defines the test suite for TeamHandler
type TeamHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockTeamServiceInterface
	handler     *handlers.TeamHandler
	httpSuite   *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *TeamHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockTeamServiceInterface(suite.ctrl)
	suite.handler = handlers.NewTeamHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()

	teams := suite.httpSuite.Router.Group("/api/v1/teams")
	teams.GET("", suite.handler.ListTeams)
	teams.POST("", suite.handler.CreateTeam)
	teams.GET("/:id", suite.handler.GetTeam)
}

// TearDownTest cleans up after each test
func (suite *TeamHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateTeam tests successful team creation
func (suite *TeamHandlerTestSuite) TestCreateTeam() {
	suite.mockService.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(req *service.CreateTeamRequest) (*service.TeamResponse, error) {
			suite.Equal("Platform", req.Name)
			return &service.TeamResponse{ID: 1, Name: "Platform"}, nil
		})

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/teams", map[string]interface{}{
		"name": "Platform",
	})

	var response service.TeamResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
	suite.Equal(int64(1), response.ID)
	suite.Equal("Platform", response.Name)
}

// TestCreateTeamInvalidJSON tests rejection of a malformed body
func (suite *TeamHandlerTestSuite) TestCreateTeamInvalidJSON() {
	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/teams", "not json")
	suite.Equal(http.StatusBadRequest, recorder.Code)
}

// TestCreateTeamValidationError tests the 400 mapping
func (suite *TeamHandlerTestSuite) TestCreateTeamValidationError() {
	suite.mockService.EXPECT().
		Create(gomock.Any()).
		Return(nil, apperrors.NewValidationError("name", "name is required"))

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/teams", map[string]interface{}{
		"name": "",
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "name is required")
}

// TestCreateTeamConflict tests the 409 mapping for a duplicate name
func (suite *TeamHandlerTestSuite) TestCreateTeamConflict() {
	suite.mockService.EXPECT().
		Create(gomock.Any()).
		Return(nil, apperrors.NewIntegrityError("teams_name_key", "duplicate key value"))

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/teams", map[string]interface{}{
		"name": "Platform",
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "duplicate key value")
}

// TestGetTeam tests retrieving a team by ID
func (suite *TeamHandlerTestSuite) TestGetTeam() {
	suite.mockService.EXPECT().
		GetByID(int64(1)).
		Return(&service.TeamResponse{ID: 1, Name: "Platform"}, nil)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/teams/1", nil)

	var response service.TeamResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	suite.Equal("Platform", response.Name)
}

// TestGetTeamNotFound tests the 404 mapping
func (suite *TeamHandlerTestSuite) TestGetTeamNotFound() {
	suite.mockService.EXPECT().GetByID(int64(1)).Return(nil, apperrors.ErrTeamNotFound)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/teams/1", nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "team not found")
}

// TestGetTeamInvalidID tests rejection of a non-numeric ID
func (suite *TeamHandlerTestSuite) TestGetTeamInvalidID() {
	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/teams/abc", nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "invalid team ID")
}

// TestListTeams tests listing with pagination
func (suite *TeamHandlerTestSuite) TestListTeams() {
	suite.mockService.EXPECT().
		List(0, 20).
		Return(&service.TeamListResponse{
			Teams: []service.TeamResponse{{ID: 1, Name: "Platform"}, {ID: 2, Name: "Payments"}},
			Total: 2,
			Limit: 20,
		}, nil)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/teams", nil)

	var response service.TeamListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	suite.Equal(int64(2), response.Total)
	suite.Len(response.Teams, 2)
}

// Run the test suite
func TestTeamHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamHandlerTestSuite))
}
