package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"task-manager-backend/internal/api/handlers"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/mocks"
	"task-manager-backend/internal/service"
	"task-manager-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// AssignmentHandlerTestSuite defines the test suite for AssignmentHandler
type AssignmentHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockAssignmentServiceInterface
	handler     *handlers.AssignmentHandler
	httpSuite   *testutils.HTTPTestSuite
	principalID *uuid.UUID
}

// SetupTest sets up the test suite
func (suite *AssignmentHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockAssignmentServiceInterface(suite.ctrl)
	suite.handler = handlers.NewAssignmentHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()
	suite.principalID = nil

	tasks := suite.httpSuite.Router.Group("/api/v1/tasks", func(c *gin.Context) {
		if suite.principalID != nil {
			c.Set("user_id", *suite.principalID)
		}
		c.Next()
	})
	tasks.POST("/:id/assign", suite.handler.AssignTask)
	tasks.GET("/:id/assignments", suite.handler.GetAssignmentHistory)
}

// TearDownTest cleans up after each test
func (suite *AssignmentHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestAssignTask tests a successful assignment
func (suite *AssignmentHandlerTestSuite) TestAssignTask() {
	assignee := uuid.New()

	suite.mockService.EXPECT().
		Create(int64(1), gomock.Any()).
		DoAndReturn(func(_ int64, req *service.CreateAssignmentRequest) (*service.AssignmentResponse, error) {
			suite.Equal(assignee, req.AssignedTo)
			suite.Nil(req.AssignedBy)
			return &service.AssignmentResponse{
				ID:         10,
				TaskID:     1,
				AssignedTo: assignee,
				AssignedAt: time.Now(),
			}, nil
		})

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/assign", map[string]interface{}{
		"assigned_to": assignee.String(),
	})

	var response service.AssignmentResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
	suite.Equal(int64(10), response.ID)
	suite.Equal(assignee, response.AssignedTo)
}

// TestAssignTaskDefaultsAssignerToPrincipal tests that the authenticated
// principal becomes the assigner when the body omits one
func (suite *AssignmentHandlerTestSuite) TestAssignTaskDefaultsAssignerToPrincipal() {
	assigner := uuid.New()
	assignee := uuid.New()
	suite.principalID = &assigner

	suite.mockService.EXPECT().
		Create(int64(1), gomock.Any()).
		DoAndReturn(func(_ int64, req *service.CreateAssignmentRequest) (*service.AssignmentResponse, error) {
			suite.Require().NotNil(req.AssignedBy)
			suite.Equal(assigner, *req.AssignedBy)
			return &service.AssignmentResponse{ID: 11, TaskID: 1, AssignedTo: assignee, AssignedBy: req.AssignedBy}, nil
		})

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/assign", map[string]interface{}{
		"assigned_to": assignee.String(),
	})
	testutils.AssertSuccessResponse(suite.T(), recorder, http.StatusCreated)
}

// TestAssignTaskNotFound tests the 404 mapping for a missing task or assignee
func (suite *AssignmentHandlerTestSuite) TestAssignTaskNotFound() {
	suite.mockService.EXPECT().
		Create(int64(1), gomock.Any()).
		Return(nil, apperrors.ErrUserNotFound)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/assign", map[string]interface{}{
		"assigned_to": uuid.New().String(),
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "user not found")
}

// TestAssignTaskValidationError tests the 400 mapping for a missing assignee
func (suite *AssignmentHandlerTestSuite) TestAssignTaskValidationError() {
	suite.mockService.EXPECT().
		Create(int64(1), gomock.Any()).
		Return(nil, apperrors.NewValidationError("assigned_to", "assigned_to is required"))

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/1/assign", map[string]interface{}{})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "assigned_to is required")
}

// TestAssignTaskInvalidID tests rejection of a non-numeric task ID
func (suite *AssignmentHandlerTestSuite) TestAssignTaskInvalidID() {
	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/tasks/abc/assign", map[string]interface{}{
		"assigned_to": uuid.New().String(),
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "invalid task ID")
}

// TestGetAssignmentHistory tests listing a task's assignment history
func (suite *AssignmentHandlerTestSuite) TestGetAssignmentHistory() {
	assignee := uuid.New()
	suite.mockService.EXPECT().
		GetHistory(int64(1)).
		Return([]service.AssignmentResponse{
			{ID: 10, TaskID: 1, AssignedTo: assignee},
			{ID: 11, TaskID: 1, AssignedTo: assignee, Delegated: true},
		}, nil)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/tasks/1/assignments", nil)

	var response []service.AssignmentResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	suite.Require().Len(response, 2)
	suite.True(response[1].Delegated)
}

// TestGetAssignmentHistoryTaskNotFound tests the 404 mapping
func (suite *AssignmentHandlerTestSuite) TestGetAssignmentHistoryTaskNotFound() {
	suite.mockService.EXPECT().GetHistory(int64(1)).Return(nil, apperrors.ErrTaskNotFound)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/tasks/1/assignments", nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "task not found")
}

// Run the test suite
func TestAssignmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentHandlerTestSuite))
}
