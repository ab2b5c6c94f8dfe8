package auth_test

import (
	"net/http"
	"testing"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/config"
	"task-manager-backend/internal/database/models"
	"task-manager-backend/internal/mocks"
	"task-manager-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// AuthMiddlewareTestSuite tests RequireAuth and RequireSuperuser against a
// real router with real signed tokens
type AuthMiddlewareTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockUserRepo    *mocks.MockUserRepositoryInterface
	mockRefreshRepo *mocks.MockRefreshTokenRepositoryInterface
	authService     *auth.AuthService
	httpSuite       *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *AuthMiddlewareTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockRefreshRepo = mocks.NewMockRefreshTokenRepositoryInterface(suite.ctrl)

	cfg := &config.Config{
		JWTSecret:              "unit-test-signing-secret",
		AccessTokenExpireMin:   30,
		RefreshTokenExpireDays: 7,
	}
	suite.authService = auth.NewAuthService(cfg, suite.mockUserRepo, suite.mockRefreshRepo, validator.New())

	middleware := auth.NewAuthMiddleware(suite.authService)
	suite.httpSuite = testutils.SetupHTTPTest()

	protected := suite.httpSuite.Router.Group("/", middleware.RequireAuth())
	protected.GET("/me", func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)
		username, _ := auth.GetUsername(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	protected.GET("/admin", middleware.RequireSuperuser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

// TearDownTest cleans up after each test
func (suite *AuthMiddlewareTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// login issues a real token pair for the given user
func (suite *AuthMiddlewareTestSuite) login(user *models.User, password string) string {
	suite.mockUserRepo.EXPECT().GetByUsername(*user.Username).Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().Create(gomock.Any()).Return(nil)

	resp, err := suite.authService.Login(&auth.LoginRequest{Username: *user.Username, Password: password})
	suite.Require().NoError(err)
	return resp.AccessToken
}

func (suite *AuthMiddlewareTestSuite) makeUser(username string, superuser bool) *models.User {
	hash, err := auth.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	return &models.User{
		ID:           uuid.New(),
		Username:     &username,
		PasswordHash: &hash,
		IsActive:     true,
		IsSuperuser:  superuser,
	}
}

// TestRequireAuthMissingHeader tests rejection without an Authorization header
func (suite *AuthMiddlewareTestSuite) TestRequireAuthMissingHeader() {
	recorder := suite.httpSuite.MakeRequest("GET", "/me", nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "Authorization header is required")
}

// TestRequireAuthBadScheme tests rejection of a non-bearer header
func (suite *AuthMiddlewareTestSuite) TestRequireAuthBadScheme() {
	recorder := suite.httpSuite.MakeRequestWithHeaders("GET", "/me", nil, map[string]string{
		"Authorization": "Basic dXNlcjpwYXNz",
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "Invalid authorization header format")
}

// TestRequireAuthInvalidToken tests rejection of a garbage token
func (suite *AuthMiddlewareTestSuite) TestRequireAuthInvalidToken() {
	recorder := suite.httpSuite.MakeAuthenticatedRequest("GET", "/me", "not.a.jwt", nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "Invalid token")
}

// TestRequireAuthValidToken tests that a valid token reaches the handler with
// the principal in context
func (suite *AuthMiddlewareTestSuite) TestRequireAuthValidToken() {
	user := suite.makeUser("alice", false)
	token := suite.login(user, "sup3r-secret")

	recorder := suite.httpSuite.MakeAuthenticatedRequest("GET", "/me", token, nil)

	var body map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &body)
	suite.Equal(user.ID.String(), body["user_id"])
	suite.Equal("alice", body["username"])
}

// TestRequireSuperuserForbidden tests that regular users are rejected with 403
func (suite *AuthMiddlewareTestSuite) TestRequireSuperuserForbidden() {
	user := suite.makeUser("bob", false)
	token := suite.login(user, "sup3r-secret")

	recorder := suite.httpSuite.MakeAuthenticatedRequest("GET", "/admin", token, nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusForbidden, "Superuser privileges required")
}

// TestRequireSuperuserAllowed tests that superusers pass
func (suite *AuthMiddlewareTestSuite) TestRequireSuperuserAllowed() {
	user := suite.makeUser("admin", true)
	token := suite.login(user, "sup3r-secret")

	recorder := suite.httpSuite.MakeAuthenticatedRequest("GET", "/admin", token, nil)
	testutils.AssertSuccessResponse(suite.T(), recorder, http.StatusOK)
}

// Run the test suite
func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
