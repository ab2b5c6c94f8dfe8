package auth_test

import (
	"net/http"
	"testing"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/config"
	"task-manager-backend/internal/database/models"
	"task-manager-backend/internal/mocks"
	"task-manager-backend/internal/service"
	"task-manager-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// AuthHandlerTestSuite tests the signup, token, and refresh endpoints
// through the router, with a real AuthService over mocked repositories
type AuthHandlerTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockUserRepo    *mocks.MockUserRepositoryInterface
	mockRefreshRepo *mocks.MockRefreshTokenRepositoryInterface
	authService     *auth.AuthService
	httpSuite       *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockRefreshRepo = mocks.NewMockRefreshTokenRepositoryInterface(suite.ctrl)

	cfg := &config.Config{
		JWTSecret:              "unit-test-signing-secret",
		AccessTokenExpireMin:   30,
		RefreshTokenExpireDays: 7,
	}
	suite.authService = auth.NewAuthService(cfg, suite.mockUserRepo, suite.mockRefreshRepo, validator.New())

	handler := auth.NewAuthHandler(suite.authService)
	suite.httpSuite = testutils.SetupHTTPTest()

	authGroup := suite.httpSuite.Router.Group("/auth")
	authGroup.POST("/signup", handler.Signup)
	authGroup.POST("/token", handler.Login)
	authGroup.POST("/refresh", handler.Refresh)
}

// TearDownTest cleans up after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestSignup tests a successful registration
func (suite *AuthHandlerTestSuite) TestSignup() {
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().GetByEmail("alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(user *models.User) error {
			user.ID = uuid.New()
			return nil
		})

	recorder := suite.httpSuite.MakeRequest("POST", "/auth/signup", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "sup3r-secret",
	})

	var response service.UserResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
	suite.Equal("alice", *response.Username)
	suite.True(response.IsActive)
}

// TestSignupUsernameTaken tests the 400 mapping for a taken username
func (suite *AuthHandlerTestSuite) TestSignupUsernameTaken() {
	username := "alice"
	suite.mockUserRepo.EXPECT().
		GetByUsername("alice").
		Return(&models.User{ID: uuid.New(), Username: &username}, nil)

	recorder := suite.httpSuite.MakeRequest("POST", "/auth/signup", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "sup3r-secret",
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "already exists")
}

// TestSignupShortPassword tests the 400 mapping for a too-short password
func (suite *AuthHandlerTestSuite) TestSignupShortPassword() {
	recorder := suite.httpSuite.MakeRequest("POST", "/auth/signup", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	suite.Equal(http.StatusBadRequest, recorder.Code)
}

// TestLogin tests a successful credential exchange
func (suite *AuthHandlerTestSuite) TestLogin() {
	username := "alice"
	hash, err := auth.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	user := &models.User{ID: uuid.New(), Username: &username, PasswordHash: &hash, IsActive: true}

	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().Create(gomock.Any()).Return(nil)

	recorder := suite.httpSuite.MakeRequest("POST", "/auth/token", map[string]interface{}{
		"username": "alice",
		"password": "sup3r-secret",
	})

	var response auth.TokenResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &response)
	suite.Equal("bearer", response.TokenType)
	suite.NotEmpty(response.AccessToken)
	suite.NotEmpty(response.RefreshToken)
	suite.Equal(int64(1800), response.ExpiresIn)
}

// TestLoginWrongPassword tests the 401 mapping
func (suite *AuthHandlerTestSuite) TestLoginWrongPassword() {
	username := "alice"
	hash, err := auth.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	user := &models.User{ID: uuid.New(), Username: &username, PasswordHash: &hash, IsActive: true}

	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)

	recorder := suite.httpSuite.MakeRequest("POST", "/auth/token", map[string]interface{}{
		"username": "alice",
		"password": "wrong-password",
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "incorrect credentials")
}

// TestLoginInactiveUser tests the 401 mapping for a disabled account
func (suite *AuthHandlerTestSuite) TestLoginInactiveUser() {
	username := "alice"
	hash, err := auth.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	user := &models.User{ID: uuid.New(), Username: &username, PasswordHash: &hash, IsActive: false}

	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)

	recorder := suite.httpSuite.MakeRequest("POST", "/auth/token", map[string]interface{}{
		"username": "alice",
		"password": "sup3r-secret",
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "inactive user")
}

// TestLoginMissingPassword tests the 400 mapping for an incomplete body
func (suite *AuthHandlerTestSuite) TestLoginMissingPassword() {
	recorder := suite.httpSuite.MakeRequest("POST", "/auth/token", map[string]interface{}{
		"username": "alice",
	})
	suite.Equal(http.StatusBadRequest, recorder.Code)
}

// TestRefreshGarbageToken tests the 401 mapping for an unparseable token
func (suite *AuthHandlerTestSuite) TestRefreshGarbageToken() {
	recorder := suite.httpSuite.MakeRequest("POST", "/auth/refresh", map[string]interface{}{
		"refresh_token": "not.a.jwt",
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "invalid refresh token")
}

// TestRefreshRevokedToken tests the 401 mapping when the presented token was
// already rotated away
func (suite *AuthHandlerTestSuite) TestRefreshRevokedToken() {
	username := "alice"
	hash, err := auth.HashPassword("sup3r-secret")
	suite.Require().NoError(err)
	user := &models.User{ID: uuid.New(), Username: &username, PasswordHash: &hash, IsActive: true}

	var issuedJTI uuid.UUID
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(token *models.RefreshToken) error {
			issuedJTI = token.JTI
			return nil
		})

	tokens, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "sup3r-secret"})
	suite.Require().NoError(err)

	suite.mockRefreshRepo.EXPECT().
		GetByJTI(gomock.Any()).
		DoAndReturn(func(jti uuid.UUID) (*models.RefreshToken, error) {
			suite.Equal(issuedJTI, jti)
			return nil, gorm.ErrRecordNotFound
		})

	recorder := suite.httpSuite.MakeRequest("POST", "/auth/refresh", map[string]interface{}{
		"refresh_token": tokens.RefreshToken,
	})
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "invalid refresh token")
}

// Run the test suite
func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
