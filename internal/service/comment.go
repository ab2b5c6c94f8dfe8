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

// CommentService handles business logic for task comments
type CommentService struct {
	commentRepo repository.CommentRepositoryInterface
	taskRepo    repository.TaskRepositoryInterface
	validator   *validator.Validate
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepositoryInterface, taskRepo repository.TaskRepositoryInterface, validator *validator.Validate) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		validator:   validator,
	}
}

// CreateCommentRequest represents the request to comment on a task
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}

// CommentResponse represents the response for comment operations
type CommentResponse struct {
	ID        int64      `json:"id"`
	TaskID    int64      `json:"task_id"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

// Create adds a comment to a task
func (s *CommentService) Create(taskID int64, authorID *uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidationError(err)
	}

	if _, err := s.taskRepo.GetByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}

	comment := &models.TaskComment{
		TaskID:   taskID,
		AuthorID: authorID,
		Body:     req.Body,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return toCommentResponse(comment), nil
}

// GetByTask retrieves all comments on a task, oldest first
func (s *CommentService) GetByTask(taskID int64) ([]CommentResponse, error) {
	if _, err := s.taskRepo.GetByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}

	comments, err := s.commentRepo.GetByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = *toCommentResponse(&comments[i])
	}
	return responses, nil
}

func toCommentResponse(c *models.TaskComment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		EditedAt:  c.EditedAt,
	}
}
