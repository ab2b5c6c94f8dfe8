package repository

import (
	"task-manager-backend/internal/database/models"

	"gorm.io/gorm"
)

// CommentRepository handles database operations for task comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create creates a new comment
func (r *CommentRepository) Create(comment *models.TaskComment) error {
	return translateDBError(r.db.Create(comment).Error)
}

// GetByTaskID retrieves all comments for a task, oldest first
func (r *CommentRepository) GetByTaskID(taskID int64) ([]models.TaskComment, error) {
	var comments []models.TaskComment
	err := r.db.Where("task_id = ?", taskID).Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, err
}
