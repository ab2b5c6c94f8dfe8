package models

// TaskStatus defines the lifecycle states of a task
type TaskStatus string

const (
	TaskStatusUnassigned TaskStatus = "unassigned"
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusAbandoned  TaskStatus = "abandoned"
)

// AllTaskStatuses returns the closed set of valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusUnassigned,
		TaskStatusAssigned,
		TaskStatusInProgress,
		TaskStatusReview,
		TaskStatusCompleted,
		TaskStatusAbandoned,
	}
}

// FinishedTaskStatuses returns the statuses excluded from overdue computation
func FinishedTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusCompleted, TaskStatusAbandoned}
}

// IsValid checks if the TaskStatus is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusUnassigned, TaskStatusAssigned, TaskStatusInProgress,
		TaskStatusReview, TaskStatusCompleted, TaskStatusAbandoned:
		return true
	}
	return false
}

// IsFinished reports whether the status is a terminal state
func (s TaskStatus) IsFinished() bool {
	return s == TaskStatusCompleted || s == TaskStatusAbandoned
}
