package service

import (
	"errors"
	"fmt"
	"time"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles business logic for tasks
type TaskService struct {
	taskRepo       repository.TaskRepositoryInterface
	assignmentRepo repository.AssignmentRepositoryInterface
	validator      *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepositoryInterface, assignmentRepo repository.AssignmentRepositoryInterface, validator *validator.Validate) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		assignmentRepo: assignmentRepo,
		validator:      validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=1000"`
	Description *string    `json:"description,omitempty"`
	Priority    *int       `json:"priority,omitempty" validate:"omitempty,min=1,max=5"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents a sparse single-task update. Nil fields are
// left untouched.
type UpdateTaskRequest struct {
	Title               *string            `json:"title,omitempty"`
	Description         *string            `json:"description,omitempty"`
	Status              *models.TaskStatus `json:"status,omitempty"`
	Priority            *int               `json:"priority,omitempty"`
	DueDate             *time.Time         `json:"due_date,omitempty"`
	CurrentAssignmentID *int64             `json:"current_assignment_id,omitempty"`
	DeletedAt           *time.Time         `json:"deleted_at,omitempty"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID                  int64             `json:"id"`
	Title               string            `json:"title"`
	Description         *string           `json:"description,omitempty"`
	Status              models.TaskStatus `json:"status"`
	Priority            int               `json:"priority"`
	DueDate             *time.Time        `json:"due_date,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
	CreatedBy           *uuid.UUID        `json:"created_by,omitempty"`
	CurrentAssignmentID *int64            `json:"current_assignment_id,omitempty"`
	DeletedAt           *time.Time        `json:"deleted_at,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// BulkUpdateTasksRequest represents a batch of sparse task updates
type BulkUpdateTasksRequest struct {
	Items []repository.BulkTaskUpdate `json:"items" validate:"required,min=1"`
}

// BulkUpdateTasksResponse is the full report of a bulk update call
type BulkUpdateTasksResponse struct {
	Updated  []TaskResponse              `json:"updated"`
	NotFound []int64                     `json:"not_found"`
	Results  []repository.BulkItemResult `json:"results"`
}

// FilterTasksRequest carries the filter predicates; empty fields contribute
// no predicate
type FilterTasksRequest struct {
	Status      []models.TaskStatus `json:"status,omitempty"`
	Priority    []int               `json:"priority,omitempty"`
	Assignee    []uuid.UUID         `json:"assignee,omitempty"`
	StartDate   *time.Time          `json:"start_date,omitempty"`
	EndDate     *time.Time          `json:"end_date,omitempty"`
	TitleSearch string              `json:"title_search,omitempty"`
	Logic       string              `json:"logic,omitempty"`
}

// DistributionResponse is the grouped task count report
type DistributionResponse struct {
	GroupBy string                       `json:"group_by"`
	Groups  []repository.DistributionRow `json:"groups"`
}

// OverdueReportResponse is the per-user overdue task report
type OverdueReportResponse struct {
	AsOf  time.Time                   `json:"as_of"`
	Users []repository.OverdueUserRow `json:"users"`
}

// Create creates a new task with status unassigned and priority defaulting
// to 1
func (s *TaskService) Create(req *CreateTaskRequest, createdBy *uuid.UUID) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidationError(err)
	}

	priority := 1
	if req.Priority != nil {
		priority = *req.Priority
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusUnassigned,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedBy:   createdBy,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return toTaskResponse(task), nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(id int64) (*TaskResponse, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return toTaskResponse(task), nil
}

// List retrieves tasks with pagination, newest first
func (s *TaskService) List(skip, limit int) (*TaskListResponse, error) {
	skip, limit, err := normalizePagination(skip, limit)
	if err != nil {
		return nil, err
	}

	tasks, total, err := s.taskRepo.List(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &TaskListResponse{
		Tasks: toTaskResponses(tasks),
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// Update applies a sparse update to one task. Field validation matches the
// bulk path; the assignment reference is checked before the write.
func (s *TaskService) Update(id int64, req *UpdateTaskRequest) (*TaskResponse, error) {
	item := repository.BulkTaskUpdate{
		ID:                  id,
		Title:               req.Title,
		Description:         req.Description,
		Status:              req.Status,
		Priority:            req.Priority,
		DueDate:             req.DueDate,
		CurrentAssignmentID: req.CurrentAssignmentID,
		DeletedAt:           req.DeletedAt,
	}
	if err := repository.ValidateBulkTaskUpdate(item); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if req.CurrentAssignmentID != nil {
		if _, err := s.assignmentRepo.GetByID(*req.CurrentAssignmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrAssignmentNotFound
			}
			return nil, fmt.Errorf("failed to verify assignment: %w", err)
		}
	}

	changed := false
	if req.Title != nil {
		task.Title = *req.Title
		changed = true
	}
	if req.Description != nil {
		task.Description = req.Description
		changed = true
	}
	if req.Status != nil {
		task.Status = *req.Status
		changed = true
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
		changed = true
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
		changed = true
	}
	if req.CurrentAssignmentID != nil {
		task.CurrentAssignmentID = req.CurrentAssignmentID
		changed = true
	}
	if req.DeletedAt != nil {
		task.DeletedAt = req.DeletedAt
		changed = true
	}
	if changed {
		task.UpdatedAt = time.Now()
		if err := s.taskRepo.Update(task); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	return toTaskResponse(task), nil
}

// BulkUpdate applies a batch of sparse task updates with per-item validation
// and all-or-nothing commit semantics
func (s *TaskService) BulkUpdate(req *BulkUpdateTasksRequest) (*BulkUpdateTasksResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidationError(err)
	}

	result, err := s.taskRepo.BulkUpdate(req.Items)
	if err != nil {
		return nil, fmt.Errorf("bulk update failed: %w", err)
	}

	return &BulkUpdateTasksResponse{
		Updated:  toTaskResponses(result.Updated),
		NotFound: result.NotFound,
		Results:  result.Results,
	}, nil
}

// Filter returns tasks matching the combined predicate set, newest first
func (s *TaskService) Filter(req *FilterTasksRequest, skip, limit int) (*TaskListResponse, error) {
	skip, limit, err := normalizePagination(skip, limit)
	if err != nil {
		return nil, err
	}

	logic, err := repository.ParseFilterLogic(req.Logic)
	if err != nil {
		return nil, err
	}
	for _, st := range req.Status {
		if !st.IsValid() {
			return nil, apperrors.NewValidationError("status", fmt.Sprintf("invalid status %q", st))
		}
	}

	filter := &repository.TaskFilter{
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TitleSearch: req.TitleSearch,
		Logic:       logic,
	}

	tasks, total, err := s.taskRepo.Filter(filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to filter tasks: %w", err)
	}

	return &TaskListResponse{
		Tasks: toTaskResponses(tasks),
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// Distribution groups all tasks by the requested dimension and counts them
func (s *TaskService) Distribution(groupBy string, skip, limit int) (*DistributionResponse, error) {
	skip, limit, err := normalizePagination(skip, limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.taskRepo.Distribution(groupBy, skip, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidGroupBy) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to compute distribution: %w", err)
	}

	return &DistributionResponse{GroupBy: groupBy, Groups: rows}, nil
}

// OverduePerUser reports overdue task counts per assignee. A nil asOf means
// "now".
func (s *TaskService) OverduePerUser(asOf *time.Time, includeTasks bool, skip, limit int) (*OverdueReportResponse, error) {
	skip, limit, err := normalizePagination(skip, limit)
	if err != nil {
		return nil, err
	}

	at := time.Now().UTC()
	if asOf != nil {
		at = *asOf
	}

	rows, err := s.taskRepo.OverduePerUser(at, includeTasks, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute overdue report: %w", err)
	}

	return &OverdueReportResponse{AsOf: at, Users: rows}, nil
}

// toTaskResponse converts a task model to response
func toTaskResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:                  task.ID,
		Title:               task.Title,
		Description:         task.Description,
		Status:              task.Status,
		Priority:            task.Priority,
		DueDate:             task.DueDate,
		CreatedAt:           task.CreatedAt,
		UpdatedAt:           task.UpdatedAt,
		CreatedBy:           task.CreatedBy,
		CurrentAssignmentID: task.CurrentAssignmentID,
		DeletedAt:           task.DeletedAt,
	}
}

func toTaskResponses(tasks []models.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *toTaskResponse(&tasks[i])
	}
	return responses
}
