package auth

import (
	"errors"
	"fmt"
	"time"

	"task-manager-backend/internal/config"
	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"
	"task-manager-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "task-manager-backend"

// AuthService provides signup, credential login, and token issuance.
// Refresh tokens are persisted by jti so they survive restarts and can be
// revoked; access tokens are stateless JWTs.
type AuthService struct {
	cfg         *config.Config
	userRepo    repository.UserRepositoryInterface
	refreshRepo repository.RefreshTokenRepositoryInterface
	validator   *validator.Validate
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, userRepo repository.UserRepositoryInterface, refreshRepo repository.RefreshTokenRepositoryInterface, validator *validator.Validate) *AuthService {
	return &AuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		validator:   validator,
	}
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	IsSuperuser bool      `json:"is_superuser"`
	TokenType   string    `json:"token_type"`
	jwt.RegisteredClaims
}

// SignupRequest represents the request to register a new user
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	TeamID   *int64 `json:"team_id,omitempty"`
}

// LoginRequest represents the credential login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Signup registers a new user. Username and email must be globally unique.
func (s *AuthService) Signup(req *SignupRequest) (*service.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidationError(err)
	}

	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, apperrors.ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     &req.Username,
		Email:        &req.Email,
		TeamID:       req.TeamID,
		PasswordHash: &hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if apperrors.IsIntegrity(err) {
			// Concurrent signup raced past the uniqueness pre-check
			return nil, apperrors.ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return service.ToUserResponse(user), nil
}

// Login verifies credentials and issues a token pair. Invalid username and
// invalid password are indistinguishable to the caller.
func (s *AuthService) Login(req *LoginRequest) (*TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidationError(err)
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.PasswordHash == nil || !VerifyPassword(req.Password, *user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveUser
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	return s.issueTokenPair(user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Expired, revoked, and unknown tokens are all rejected the
// same way.
func (s *AuthService) Refresh(req *RefreshRequest) (*TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidationError(err)
	}

	claims, err := s.parseToken(req.RefreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	stored, err := s.refreshRepo.GetByJTI(jti)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if !stored.Valid(time.Now().UTC()) {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInactiveUser
	}

	if err := s.refreshRepo.Revoke(jti); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokenPair(user)
}

// ValidateAccessToken validates a JWT access token and returns its claims
func (s *AuthService) ValidateAccessToken(tokenString string) (*AuthClaims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.TokenType != "access" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueTokenPair(user *models.User) (*TokenResponse, error) {
	accessExpiry := time.Duration(s.cfg.AccessTokenExpireMin) * time.Minute
	accessToken, err := s.signToken(user, "access", uuid.New(), accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshExpiry := time.Duration(s.cfg.RefreshTokenExpireDays) * 24 * time.Hour
	jti := uuid.New()
	refreshToken, err := s.signToken(user, "refresh", jti, refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := s.refreshRepo.Create(&models.RefreshToken{
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: time.Now().UTC().Add(refreshExpiry),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(accessExpiry.Seconds()),
	}, nil
}

func (s *AuthService) signToken(user *models.User, tokenType string, jti uuid.UUID, expiry time.Duration) (string, error) {
	now := time.Now()
	username := ""
	if user.Username != nil {
		username = *user.Username
	}
	claims := &AuthClaims{
		UserID:      user.ID,
		Username:    username,
		IsSuperuser: user.IsSuperuser,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) parseToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the hash
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
