package auth_test

import (
	"testing"
	"time"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/config"
	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/mocks"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockUserRepo    *mocks.MockUserRepositoryInterface
	mockRefreshRepo *mocks.MockRefreshTokenRepositoryInterface
	authService     *auth.AuthService
}

// SetupTest sets up the test suite
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockRefreshRepo = mocks.NewMockRefreshTokenRepositoryInterface(suite.ctrl)

	cfg := &config.Config{
		JWTSecret:              "unit-test-signing-secret",
		AccessTokenExpireMin:   30,
		RefreshTokenExpireDays: 7,
	}
	suite.authService = auth.NewAuthService(cfg, suite.mockUserRepo, suite.mockRefreshRepo, validator.New())
}

// TearDownTest cleans up after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// activeUser builds a user with a bcrypt hash of the given password
func (suite *AuthServiceTestSuite) activeUser(username, password string) *models.User {
	hash, err := auth.HashPassword(password)
	suite.Require().NoError(err)
	return &models.User{
		ID:           uuid.New(),
		Username:     &username,
		PasswordHash: &hash,
		IsActive:     true,
	}
}

// TestHashAndVerifyPassword tests the bcrypt round trip
func (suite *AuthServiceTestSuite) TestHashAndVerifyPassword() {
	hash, err := auth.HashPassword("correct horse battery staple")
	suite.NoError(err)
	suite.NotEqual("correct horse battery staple", hash)

	suite.True(auth.VerifyPassword("correct horse battery staple", hash))
	suite.False(auth.VerifyPassword("wrong password", hash))
}

// TestSignup tests registering a new user
func (suite *AuthServiceTestSuite) TestSignup() {
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().GetByEmail("alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(user *models.User) error {
			suite.Equal("alice", *user.Username)
			suite.True(user.IsActive)
			suite.Require().NotNil(user.PasswordHash)
			suite.True(auth.VerifyPassword("sup3r-secret", *user.PasswordHash))
			user.ID = uuid.New()
			return nil
		})

	resp, err := suite.authService.Signup(&auth.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "sup3r-secret",
	})
	suite.NoError(err)
	suite.Equal("alice", *resp.Username)
}

// TestSignupUsernameTaken tests the uniqueness pre-check on username
func (suite *AuthServiceTestSuite) TestSignupUsernameTaken() {
	existing := suite.activeUser("alice", "whatever-pass")
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(existing, nil)

	resp, err := suite.authService.Signup(&auth.SignupRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "sup3r-secret",
	})
	suite.ErrorIs(err, apperrors.ErrUsernameExists)
	suite.Nil(resp)
}

// TestSignupEmailTaken tests the uniqueness pre-check on email
func (suite *AuthServiceTestSuite) TestSignupEmailTaken() {
	existing := suite.activeUser("someone", "whatever-pass")
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().GetByEmail("alice@example.com").Return(existing, nil)

	resp, err := suite.authService.Signup(&auth.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "sup3r-secret",
	})
	suite.ErrorIs(err, apperrors.ErrEmailExists)
	suite.Nil(resp)
}

// TestSignupConcurrentRace tests the integrity fallback when a concurrent
// signup slips past the pre-check
func (suite *AuthServiceTestSuite) TestSignupConcurrentRace() {
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().GetByEmail("alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().
		Create(gomock.Any()).
		Return(apperrors.NewIntegrityError("idx_users_username", "duplicate key value"))

	resp, err := suite.authService.Signup(&auth.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "sup3r-secret",
	})
	suite.ErrorIs(err, apperrors.ErrUsernameExists)
	suite.Nil(resp)
}

// TestSignupWeakPassword tests request validation
func (suite *AuthServiceTestSuite) TestSignupWeakPassword() {
	resp, err := suite.authService.Signup(&auth.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))
	suite.Nil(resp)
}

// TestLogin tests the happy path: token pair issued, last login stamped, and
// the access token carries the user's claims
func (suite *AuthServiceTestSuite) TestLogin() {
	user := suite.activeUser("alice", "sup3r-secret")
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().Create(gomock.Any()).Return(nil)

	resp, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "sup3r-secret"})
	suite.NoError(err)
	suite.Equal("bearer", resp.TokenType)
	suite.Equal(int64(30*60), resp.ExpiresIn)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.NotEqual(resp.AccessToken, resp.RefreshToken)

	claims, err := suite.authService.ValidateAccessToken(resp.AccessToken)
	suite.NoError(err)
	suite.Equal(user.ID, claims.UserID)
	suite.Equal("alice", claims.Username)
	suite.Equal("access", claims.TokenType)
}

// TestLoginWrongPassword tests that a bad password is indistinguishable from
// an unknown user
func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	user := suite.activeUser("alice", "sup3r-secret")
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)

	resp, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "wrong"})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.Nil(resp)
}

// TestLoginUnknownUser tests the unknown-username path
func (suite *AuthServiceTestSuite) TestLoginUnknownUser() {
	suite.mockUserRepo.EXPECT().GetByUsername("ghost").Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.authService.Login(&auth.LoginRequest{Username: "ghost", Password: "whatever"})
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.Nil(resp)
}

// TestLoginInactiveUser tests that deactivated accounts cannot log in even
// with correct credentials
func (suite *AuthServiceTestSuite) TestLoginInactiveUser() {
	user := suite.activeUser("alice", "sup3r-secret")
	user.IsActive = false
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)

	resp, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "sup3r-secret"})
	suite.ErrorIs(err, apperrors.ErrInactiveUser)
	suite.Nil(resp)
}

// TestValidateAccessTokenRejectsRefreshToken tests that refresh tokens are
// not accepted where access tokens are expected
func (suite *AuthServiceTestSuite) TestValidateAccessTokenRejectsRefreshToken() {
	user := suite.activeUser("alice", "sup3r-secret")
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().Create(gomock.Any()).Return(nil)

	resp, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "sup3r-secret"})
	suite.Require().NoError(err)

	claims, err := suite.authService.ValidateAccessToken(resp.RefreshToken)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
	suite.Nil(claims)
}

// TestValidateAccessTokenGarbage tests rejection of an unparseable token
func (suite *AuthServiceTestSuite) TestValidateAccessTokenGarbage() {
	claims, err := suite.authService.ValidateAccessToken("not.a.jwt")
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
	suite.Nil(claims)
}

// TestRefreshRotation tests that refreshing revokes the presented token and
// issues a fresh pair
func (suite *AuthServiceTestSuite) TestRefreshRotation() {
	user := suite.activeUser("alice", "sup3r-secret")

	var issuedJTI uuid.UUID
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(token *models.RefreshToken) error {
			issuedJTI = token.JTI
			return nil
		})

	loginResp, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "sup3r-secret"})
	suite.Require().NoError(err)

	stored := &models.RefreshToken{
		UserID:    user.ID,
		JTI:       issuedJTI,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	suite.mockRefreshRepo.EXPECT().GetByJTI(issuedJTI).Return(stored, nil)
	suite.mockUserRepo.EXPECT().GetByID(user.ID).Return(user, nil)
	suite.mockRefreshRepo.EXPECT().Revoke(issuedJTI).Return(nil)
	suite.mockRefreshRepo.EXPECT().Create(gomock.Any()).Return(nil)

	refreshResp, err := suite.authService.Refresh(&auth.RefreshRequest{RefreshToken: loginResp.RefreshToken})
	suite.NoError(err)
	suite.NotEmpty(refreshResp.AccessToken)
	suite.NotEqual(loginResp.RefreshToken, refreshResp.RefreshToken)
}

// TestRefreshRevokedToken tests that a revoked token is rejected
func (suite *AuthServiceTestSuite) TestRefreshRevokedToken() {
	user := suite.activeUser("alice", "sup3r-secret")

	var issuedJTI uuid.UUID
	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(token *models.RefreshToken) error {
			issuedJTI = token.JTI
			return nil
		})

	loginResp, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "sup3r-secret"})
	suite.Require().NoError(err)

	stored := &models.RefreshToken{
		UserID:    user.ID,
		JTI:       issuedJTI,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		Revoked:   true,
	}
	suite.mockRefreshRepo.EXPECT().GetByJTI(issuedJTI).Return(stored, nil)

	resp, err := suite.authService.Refresh(&auth.RefreshRequest{RefreshToken: loginResp.RefreshToken})
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
	suite.Nil(resp)
}

// TestRefreshUnknownToken tests that a token absent from storage is rejected
// even when its signature is valid
func (suite *AuthServiceTestSuite) TestRefreshUnknownToken() {
	user := suite.activeUser("alice", "sup3r-secret")

	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().Create(gomock.Any()).Return(nil)

	loginResp, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "sup3r-secret"})
	suite.Require().NoError(err)

	suite.mockRefreshRepo.EXPECT().GetByJTI(gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

	resp, err := suite.authService.Refresh(&auth.RefreshRequest{RefreshToken: loginResp.RefreshToken})
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
	suite.Nil(resp)
}

// TestRefreshWithAccessToken tests that access tokens cannot be used to
// refresh
func (suite *AuthServiceTestSuite) TestRefreshWithAccessToken() {
	user := suite.activeUser("alice", "sup3r-secret")

	suite.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil)
	suite.mockUserRepo.EXPECT().UpdateLastLogin(user.ID, gomock.Any()).Return(nil)
	suite.mockRefreshRepo.EXPECT().Create(gomock.Any()).Return(nil)

	loginResp, err := suite.authService.Login(&auth.LoginRequest{Username: "alice", Password: "sup3r-secret"})
	suite.Require().NoError(err)

	resp, err := suite.authService.Refresh(&auth.RefreshRequest{RefreshToken: loginResp.AccessToken})
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
	suite.Nil(resp)
}

// TestRefreshGarbage tests rejection of an unparseable refresh token
func (suite *AuthServiceTestSuite) TestRefreshGarbage() {
	resp, err := suite.authService.Refresh(&auth.RefreshRequest{RefreshToken: "not.a.jwt"})
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
	suite.Nil(resp)
}

// Run the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
