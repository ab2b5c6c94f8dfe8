package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is one row of a task's append-only assignment history. A task
// may accumulate many assignments; at most one is current, referenced by
// Task.CurrentAssignmentID.
type Assignment struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID     int64      `json:"task_id" gorm:"not null;index:idx_assignment_task"`
	AssignedTo uuid.UUID  `json:"assigned_to" gorm:"type:uuid;not null;index:idx_assignment_assigned_to"`
	AssignedBy *uuid.UUID `json:"assigned_by,omitempty" gorm:"type:uuid"`
	AssignedAt time.Time  `json:"assigned_at" gorm:"not null;autoCreateTime"`
	Delegated  bool       `json:"delegated" gorm:"not null;default:false"`
	Notes      *string    `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	Task     *Task `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	Assignee *User `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
	Assigner *User `json:"assigner,omitempty" gorm:"foreignKey:AssignedBy"`
}

// TableName returns the table name for Assignment
func (Assignment) TableName() string {
	return "assignment"
}
