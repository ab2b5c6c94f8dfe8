package service

import (
	"errors"
	"fmt"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"gorm.io/gorm"
)

// DependencyService handles business logic for task dependencies
type DependencyService struct {
	dependencyRepo repository.DependencyRepositoryInterface
	taskRepo       repository.TaskRepositoryInterface
}

// NewDependencyService creates a new dependency service
func NewDependencyService(dependencyRepo repository.DependencyRepositoryInterface, taskRepo repository.TaskRepositoryInterface) *DependencyService {
	return &DependencyService{
		dependencyRepo: dependencyRepo,
		taskRepo:       taskRepo,
	}
}

// DependencyResponse represents one directed dependency edge
type DependencyResponse struct {
	TaskID          int64 `json:"task_id"`
	DependsOnTaskID int64 `json:"depends_on_task_id"`
}

// Create records that taskID depends on dependsOnTaskID. Self-dependency is
// rejected up front and again by the storage check constraint; both tasks
// must already exist. Cycles are not detected.
func (s *DependencyService) Create(taskID, dependsOnTaskID int64) (*DependencyResponse, error) {
	if taskID == dependsOnTaskID {
		return nil, apperrors.ErrSelfDependency
	}

	tasks, err := s.taskRepo.GetByIDs([]int64{taskID, dependsOnTaskID})
	if err != nil {
		return nil, fmt.Errorf("failed to verify tasks: %w", err)
	}
	found := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		found[t.ID] = true
	}
	if !found[taskID] || !found[dependsOnTaskID] {
		return nil, apperrors.ErrTaskNotFound
	}

	dep := &models.TaskDependency{
		TaskID:          taskID,
		DependsOnTaskID: dependsOnTaskID,
	}
	if err := s.dependencyRepo.Create(dep); err != nil {
		return nil, fmt.Errorf("failed to create dependency: %w", err)
	}

	return &DependencyResponse{TaskID: dep.TaskID, DependsOnTaskID: dep.DependsOnTaskID}, nil
}

// GetByTask retrieves the outgoing dependency edges of a task
func (s *DependencyService) GetByTask(taskID int64) ([]DependencyResponse, error) {
	if _, err := s.taskRepo.GetByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}

	deps, err := s.dependencyRepo.GetByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dependencies: %w", err)
	}

	responses := make([]DependencyResponse, len(deps))
	for i, d := range deps {
		responses[i] = DependencyResponse{TaskID: d.TaskID, DependsOnTaskID: d.DependsOnTaskID}
	}
	return responses, nil
}
