package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskComment is a comment on a task, removed when the task is removed
type TaskComment struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID    int64      `json:"task_id" gorm:"not null;index:idx_comments_task"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty" gorm:"type:uuid"`
	Body      string     `json:"body" gorm:"type:text;not null" validate:"required,min=1"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`

	// Relationships
	Task   *Task `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// TableName returns the table name for TaskComment
func (TaskComment) TableName() string {
	return "task_comments"
}
