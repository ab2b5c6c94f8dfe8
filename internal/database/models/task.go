package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is the central entity of the task manager. Status transitions and the
// current-assignment pointer are mutated only through the repository's
// single-task and bulk paths.
//
// DeletedAt marks soft deletion. It is a plain nullable timestamp rather than
// gorm.DeletedAt on purpose: deleted rows are not auto-filtered from queries,
// callers decide whether to exclude them.
type Task struct {
	ID                  int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title               string     `json:"title" gorm:"size:1000;not null" validate:"required,min=1,max=1000"`
	Description         *string    `json:"description,omitempty" gorm:"type:text"`
	Status              TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'unassigned';index:idx_tasks_status"`
	Priority            int        `json:"priority" gorm:"not null;default:1;index:idx_tasks_priority;check:priority_range_check,priority BETWEEN 1 AND 5"`
	DueDate             *time.Time `json:"due_date,omitempty" gorm:"index:idx_tasks_duedate"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	CreatedBy           *uuid.UUID `json:"created_by,omitempty" gorm:"type:uuid"`
	CurrentAssignmentID *int64     `json:"current_assignment_id,omitempty"`
	DeletedAt           *time.Time `json:"deleted_at,omitempty"`

	// Relationships. CurrentAssignment is a mutable pointer into the
	// assignment history, not an owning relationship. All foreign keys are
	// created by database.Initialize after migration so the
	// tasks<->assignment constraint cycle and ON DELETE actions stay under
	// explicit control.
	Creator           *User       `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	CurrentAssignment *Assignment `json:"current_assignment,omitempty" gorm:"foreignKey:CurrentAssignmentID;references:ID"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
