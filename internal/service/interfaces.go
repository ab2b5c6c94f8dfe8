package service

import (
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// TaskServiceInterface defines the interface for task service operations
type TaskServiceInterface interface {
	Create(req *CreateTaskRequest, createdBy *uuid.UUID) (*TaskResponse, error)
	GetByID(id int64) (*TaskResponse, error)
	List(skip, limit int) (*TaskListResponse, error)
	Update(id int64, req *UpdateTaskRequest) (*TaskResponse, error)
	BulkUpdate(req *BulkUpdateTasksRequest) (*BulkUpdateTasksResponse, error)
	Filter(req *FilterTasksRequest, skip, limit int) (*TaskListResponse, error)
	Distribution(groupBy string, skip, limit int) (*DistributionResponse, error)
	OverduePerUser(asOf *time.Time, includeTasks bool, skip, limit int) (*OverdueReportResponse, error)
}

// AssignmentServiceInterface defines the interface for assignment service operations
type AssignmentServiceInterface interface {
	Create(taskID int64, req *CreateAssignmentRequest) (*AssignmentResponse, error)
	GetHistory(taskID int64) ([]AssignmentResponse, error)
}

// CommentServiceInterface defines the interface for comment service operations
type CommentServiceInterface interface {
	Create(taskID int64, authorID *uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error)
	GetByTask(taskID int64) ([]CommentResponse, error)
}

// DependencyServiceInterface defines the interface for dependency service operations
type DependencyServiceInterface interface {
	Create(taskID, dependsOnTaskID int64) (*DependencyResponse, error)
	GetByTask(taskID int64) ([]DependencyResponse, error)
}

// TeamServiceInterface defines the interface for team service operations
type TeamServiceInterface interface {
	Create(req *CreateTeamRequest) (*TeamResponse, error)
	GetByID(id int64) (*TeamResponse, error)
	List(skip, limit int) (*TeamListResponse, error)
}

// UserServiceInterface defines the interface for user service operations
type UserServiceInterface interface {
	GetByID(id uuid.UUID) (*UserResponse, error)
	List(skip, limit int) (*UserListResponse, error)
}
