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

// DependencyHandlerTestSuite defines the test suite for DependencyHandler
type DependencyHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockDependencyServiceInterface
	handler     *handlers.DependencyHandler
	httpSuite   *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *DependencyHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockDependencyServiceInterface(suite.ctrl)
	suite.handler = handlers.NewDependencyHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()

	tasks := suite.httpSuite.Router.Group("/api/v1/tasks")
	tasks.POST("/:id/dependencies", suite.handler.AddDependency)
	tasks.GET("/:id/dependencies", suite.handler.ListDependencies)
}

// TearDownTest cleans up after each test
func (suite *DependencyHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestAddDependency tests recording a dependency edge
func (suite *DependencyHandlerTestSuite) TestAddDependency() {
	suite.mockService.EXPECT().
		Create(int64(1), int64(2)).
		Return(&service.DependencyResponse{TaskID: 1, DependsOnTaskID: 2}, nil)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/dependencies", map[string]interface{}{
		"depends_on_task_id": 2,
	})

	var response service.DependencyResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
	suite.Equal(int64(1), response.TaskID)
	suite.Equal(int64(2), response.DependsOnTaskID)
}

// TestAddDependencyMissingTarget tests binding rejection when the target is
// absent
func (suite *DependencyHandlerTestSuite) TestAddDependencyMissingTarget() {
	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/dependencies", map[string]interface{}{})
	suite.Equal(http.StatusBadRequest, recorder.Code)
}

// TestAddDependencySelf tests the 400 mapping for a self edge
func (suite *DependencyHandlerTestSuite) TestAddDependencySelf() {
	suite.mockService.EXPECT().
		Create(int64(1), int64(1)).
		Return(nil, apperrors.ErrSelfDependency)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/dependencies", map[string]interface{}{
		"depends_on_task_id": 1,
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "task can not depend on itself")
}

// TestAddDependencyTaskNotFound tests the 404 mapping
func (suite *DependencyHandlerTestSuite) TestAddDependencyTaskNotFound() {
	suite.mockService.EXPECT().
		Create(int64(1), int64(99)).
		Return(nil, apperrors.ErrTaskNotFound)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/dependencies", map[string]interface{}{
		"depends_on_task_id": 99,
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "task not found")
}

// TestAddDependencyDuplicate tests the 409 mapping for a repeated edge
func (suite *DependencyHandlerTestSuite) TestAddDependencyDuplicate() {
	suite.mockService.EXPECT().
		Create(int64(1), int64(2)).
		Return(nil, apperrors.NewIntegrityError("task_dependencies_pkey", "duplicate key value"))

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/dependencies", map[string]interface{}{
		"depends_on_task_id": 2,
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "duplicate key value")
}

// TestListDependencies tests listing a task's dependencies
func (suite *DependencyHandlerTestSuite) TestListDependencies() {
	suite.mockService.EXPECT().
		GetByTask(int64(1)).
		Return([]service.DependencyResponse{
			{TaskID: 1, DependsOnTaskID: 2},
			{TaskID: 1, DependsOnTaskID: 3},
		}, nil)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/tasks/1/dependencies", nil)

	var response []service.DependencyResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	suite.Require().Len(response, 2)
	suite.Equal(int64(3), response[1].DependsOnTaskID)
}

// TestListDependenciesTaskNotFound tests the 404 mapping
func (suite *DependencyHandlerTestSuite) TestListDependenciesTaskNotFound() {
	suite.mockService.EXPECT().GetByTask(int64(1)).Return(nil, apperrors.ErrTaskNotFound)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/tasks/1/dependencies", nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "task not found")
}

// Run the test suite
func TestDependencyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DependencyHandlerTestSuite))
}
