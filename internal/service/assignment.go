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

// AssignmentService handles business logic for task assignments
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepositoryInterface
	taskRepo       repository.TaskRepositoryInterface
	userRepo       repository.UserRepositoryInterface
	validator      *validator.Validate
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignmentRepo repository.AssignmentRepositoryInterface, taskRepo repository.TaskRepositoryInterface, userRepo repository.UserRepositoryInterface, validator *validator.Validate) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		taskRepo:       taskRepo,
		userRepo:       userRepo,
		validator:      validator,
	}
}

// CreateAssignmentRequest represents the request to assign a task
type CreateAssignmentRequest struct {
	AssignedTo uuid.UUID  `json:"assigned_to" validate:"required"`
	AssignedBy *uuid.UUID `json:"assigned_by,omitempty"`
	Delegated  bool       `json:"delegated"`
	Notes      *string    `json:"notes,omitempty"`
	SetCurrent *bool      `json:"set_current,omitempty"`
}

// AssignmentResponse represents the response for assignment operations
type AssignmentResponse struct {
	ID         int64      `json:"id"`
	TaskID     int64      `json:"task_id"`
	AssignedTo uuid.UUID  `json:"assigned_to"`
	AssignedBy *uuid.UUID `json:"assigned_by,omitempty"`
	AssignedAt time.Time  `json:"assigned_at"`
	Delegated  bool       `json:"delegated"`
	Notes      *string    `json:"notes,omitempty"`
}

// Create appends an assignment to a task's history. Unless set_current is
// explicitly false, the task's current-assignment pointer advances to the new
// row in the same transaction.
func (s *AssignmentService) Create(taskID int64, req *CreateAssignmentRequest) (*AssignmentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidationError(err)
	}

	if _, err := s.taskRepo.GetByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}
	if _, err := s.userRepo.GetByID(req.AssignedTo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify assignee: %w", err)
	}

	setCurrent := true
	if req.SetCurrent != nil {
		setCurrent = *req.SetCurrent
	}

	assignment := &models.Assignment{
		TaskID:     taskID,
		AssignedTo: req.AssignedTo,
		AssignedBy: req.AssignedBy,
		Delegated:  req.Delegated,
		Notes:      req.Notes,
	}

	if err := s.assignmentRepo.Create(assignment, setCurrent); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return toAssignmentResponse(assignment), nil
}

// GetHistory retrieves a task's full assignment history, oldest first
func (s *AssignmentService) GetHistory(taskID int64) ([]AssignmentResponse, error) {
	if _, err := s.taskRepo.GetByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}

	assignments, err := s.assignmentRepo.GetByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment history: %w", err)
	}

	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = *toAssignmentResponse(&assignments[i])
	}
	return responses, nil
}

func toAssignmentResponse(a *models.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:         a.ID,
		TaskID:     a.TaskID,
		AssignedTo: a.AssignedTo,
		AssignedBy: a.AssignedBy,
		AssignedAt: a.AssignedAt,
		Delegated:  a.Delegated,
		Notes:      a.Notes,
	}
}
