package service

import (
	"errors"
	"fmt"
	"time"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for users. User creation goes through
// the auth signup flow; this service only reads.
type UserService struct {
	userRepo repository.UserRepositoryInterface
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserResponse represents the response for user operations
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    *string    `json:"username,omitempty"`
	Email       *string    `json:"email,omitempty"`
	TeamID      *int64     `json:"team_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return ToUserResponse(user), nil
}

// List retrieves users with pagination
func (s *UserService) List(skip, limit int) (*UserListResponse, error) {
	skip, limit, err := normalizePagination(skip, limit)
	if err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.GetAll(limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}

	return &UserListResponse{
		Users: responses,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// ToUserResponse converts a user model to response. Exported because the
// auth signup flow returns the same shape.
func ToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		TeamID:      user.TeamID,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		LastLogin:   user.LastLogin,
		CreatedAt:   user.CreatedAt,
	}
}
