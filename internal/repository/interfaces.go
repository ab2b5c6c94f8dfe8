package repository

import (
	"time"

	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task) error
	GetByID(id int64) (*models.Task, error)
	GetByIDs(ids []int64) ([]models.Task, error)
	List(skip, limit int) ([]models.Task, int64, error)
	Update(task *models.Task) error
	BulkUpdate(items []BulkTaskUpdate) (*BulkUpdateResult, error)
	Filter(filter *TaskFilter, skip, limit int) ([]models.Task, int64, error)
	Distribution(groupBy string, skip, limit int) ([]DistributionRow, error)
	OverduePerUser(asOf time.Time, includeTasks bool, skip, limit int) ([]OverdueUserRow, error)
}

// AssignmentRepositoryInterface defines the interface for assignment repository operations
type AssignmentRepositoryInterface interface {
	Create(assignment *models.Assignment, setCurrent bool) error
	GetByID(id int64) (*models.Assignment, error)
	GetByTaskID(taskID int64) ([]models.Assignment, error)
}

// CommentRepositoryInterface defines the interface for comment repository operations
type CommentRepositoryInterface interface {
	Create(comment *models.TaskComment) error
	GetByTaskID(taskID int64) ([]models.TaskComment, error)
}

// DependencyRepositoryInterface defines the interface for dependency repository operations
type DependencyRepositoryInterface interface {
	Create(dep *models.TaskDependency) error
	GetByTaskID(taskID int64) ([]models.TaskDependency, error)
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(team *models.Team) error
	GetByID(id int64) (*models.Team, error)
	GetAll(limit, offset int) ([]models.Team, int64, error)
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(limit, offset int) ([]models.User, int64, error)
	UpdateLastLogin(id uuid.UUID, at time.Time) error
}

// RoleRepositoryInterface defines the interface for role repository operations
type RoleRepositoryInterface interface {
	Create(role *models.Role) error
	GetByName(name string) (*models.Role, error)
	GrantToUser(userID uuid.UUID, roleID int64) error
	UserHasRole(userID uuid.UUID, roleName string) (bool, error)
}

// RefreshTokenRepositoryInterface defines the interface for refresh token repository operations
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByJTI(jti uuid.UUID) (*models.RefreshToken, error)
	Revoke(jti uuid.UUID) error
}
