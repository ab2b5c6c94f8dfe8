//go:build integration
// +build integration

package repository

import (
	"testing"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// DependencyRepositoryTestSuite tests the DependencyRepository
type DependencyRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *DependencyRepository
	taskRepo      *TaskRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *DependencyRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewDependencyRepository(suite.baseTestSuite.DB)
	suite.taskRepo = NewTaskRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *DependencyRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *DependencyRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *DependencyRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *DependencyRepositoryTestSuite) createTask() *models.Task {
	task := suite.factories.Task.Create()
	suite.Require().NoError(suite.taskRepo.Create(task))
	return task
}

// TestCreateAndList tests adding edges and reading them back
func (suite *DependencyRepositoryTestSuite) TestCreateAndList() {
	a := suite.createTask()
	b := suite.createTask()
	c := suite.createTask()

	suite.NoError(suite.repo.Create(&models.TaskDependency{TaskID: a.ID, DependsOnTaskID: b.ID}))
	suite.NoError(suite.repo.Create(&models.TaskDependency{TaskID: a.ID, DependsOnTaskID: c.ID}))

	deps, err := suite.repo.GetByTaskID(a.ID)
	suite.NoError(err)
	suite.Require().Len(deps, 2)
	suite.Equal(b.ID, deps[0].DependsOnTaskID)
	suite.Equal(c.ID, deps[1].DependsOnTaskID)

	// Edges are directed; b has none
	deps, err = suite.repo.GetByTaskID(b.ID)
	suite.NoError(err)
	suite.Empty(deps)
}

// TestCreateDuplicateEdge tests the composite primary key
func (suite *DependencyRepositoryTestSuite) TestCreateDuplicateEdge() {
	a := suite.createTask()
	b := suite.createTask()

	suite.NoError(suite.repo.Create(&models.TaskDependency{TaskID: a.ID, DependsOnTaskID: b.ID}))

	err := suite.repo.Create(&models.TaskDependency{TaskID: a.ID, DependsOnTaskID: b.ID})
	suite.Error(err)
	suite.True(apperrors.IsIntegrity(err))
}

// TestCreateSelfDependency tests the check constraint on self edges
func (suite *DependencyRepositoryTestSuite) TestCreateSelfDependency() {
	a := suite.createTask()

	err := suite.repo.Create(&models.TaskDependency{TaskID: a.ID, DependsOnTaskID: a.ID})
	suite.Error(err)
	suite.True(apperrors.IsIntegrity(err))
}

// TestCreateUnknownTask tests the foreign keys on both endpoints
func (suite *DependencyRepositoryTestSuite) TestCreateUnknownTask() {
	a := suite.createTask()

	err := suite.repo.Create(&models.TaskDependency{TaskID: a.ID, DependsOnTaskID: 99999})
	suite.Error(err)
	suite.True(apperrors.IsIntegrity(err))

	err = suite.repo.Create(&models.TaskDependency{TaskID: 99999, DependsOnTaskID: a.ID})
	suite.Error(err)
	suite.True(apperrors.IsIntegrity(err))
}

// TestOppositeEdgesAllowed tests that a pair of opposite edges (a cycle) is
// accepted; cycle prevention is out of the storage layer's hands
func (suite *DependencyRepositoryTestSuite) TestOppositeEdgesAllowed() {
	a := suite.createTask()
	b := suite.createTask()

	suite.NoError(suite.repo.Create(&models.TaskDependency{TaskID: a.ID, DependsOnTaskID: b.ID}))
	suite.NoError(suite.repo.Create(&models.TaskDependency{TaskID: b.ID, DependsOnTaskID: a.ID}))
}

// Run the test suite
func TestDependencyRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DependencyRepositoryTestSuite))
}
