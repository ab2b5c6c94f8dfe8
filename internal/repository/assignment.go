package repository

import (
	"task-manager-backend/internal/database/models"

	"gorm.io/gorm"
)

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts a new assignment row into the task's append-only history.
// When setCurrent is true the owning task's current_assignment_id is
// advanced to the new row in the same transaction - this is the only path
// that moves the pointer, so two concurrent calls against the same task
// resolve to exactly one of the two ids (last committer wins).
func (r *AssignmentRepository) Create(assignment *models.Assignment, setCurrent bool) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}
		if setCurrent {
			if err := tx.Model(&models.Task{}).
				Where("id = ?", assignment.TaskID).
				Update("current_assignment_id", assignment.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateDBError(err)
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(id int64) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// GetByTaskID retrieves a task's full assignment history, oldest first
func (r *AssignmentRepository) GetByTaskID(taskID int64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("task_id = ?", taskID).Order("assigned_at ASC, id ASC").Find(&assignments).Error
	return assignments, err
}
