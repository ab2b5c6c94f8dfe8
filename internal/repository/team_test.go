//go:build integration
// +build integration

package repository

import (
	"testing"

	"task-manager-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TeamRepositoryTestSuite tests the TeamRepository
type TeamRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *TeamRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
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

// TestCreate tests creating a new team
func (suite *TeamRepositoryTestSuite) TestCreate() {
	team := suite.factories.Team.WithName("Platform")

	err := suite.repo.Create(team)
	suite.NoError(err)
	suite.NotZero(team.ID)
	suite.NotZero(team.CreatedAt)
}

// TestGetByID tests retrieving a team by ID
func (suite *TeamRepositoryTestSuite) TestGetByID() {
	team := suite.factories.Team.WithName("Payments")
	suite.Require().NoError(suite.repo.Create(team))

	got, err := suite.repo.GetByID(team.ID)
	suite.NoError(err)
	suite.Equal("Payments", got.Name)
}

// TestGetByIDNotFound tests retrieving a nonexistent team
func (suite *TeamRepositoryTestSuite) TestGetByIDNotFound() {
	got, err := suite.repo.GetByID(99999)
	suite.Error(err)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(got)
}

// TestGetAll tests pagination and total count
func (suite *TeamRepositoryTestSuite) TestGetAll() {
	for i := 0; i < 4; i++ {
		suite.Require().NoError(suite.repo.Create(suite.factories.Team.Create()))
	}

	teams, total, err := suite.repo.GetAll(3, 0)
	suite.NoError(err)
	suite.Equal(int64(4), total)
	suite.Len(teams, 3)

	teams, total, err = suite.repo.GetAll(3, 3)
	suite.NoError(err)
	suite.Equal(int64(4), total)
	suite.Len(teams, 1)
}

// Run the test suite
func TestTeamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TeamRepositoryTestSuite))
}
