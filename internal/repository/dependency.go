package repository

import (
	"task-manager-backend/internal/database/models"

	"gorm.io/gorm"
)

// DependencyRepository handles database operations for task dependencies
type DependencyRepository struct {
	db *gorm.DB
}

// NewDependencyRepository creates a new dependency repository
func NewDependencyRepository(db *gorm.DB) *DependencyRepository {
	return &DependencyRepository{db: db}
}

// Create inserts a dependency edge. Duplicate edges collide on the composite
// primary key and self-dependency on the check constraint; both surface as
// IntegrityError.
func (r *DependencyRepository) Create(dep *models.TaskDependency) error {
	return translateDBError(r.db.Create(dep).Error)
}

// GetByTaskID retrieves the outgoing dependency edges of a task
func (r *DependencyRepository) GetByTaskID(taskID int64) ([]models.TaskDependency, error) {
	var deps []models.TaskDependency
	err := r.db.Where("task_id = ?", taskID).Order("depends_on_task_id ASC").Find(&deps).Error
	return deps, err
}
