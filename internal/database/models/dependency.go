package models

// TaskDependency is a directed edge between tasks: TaskID depends on
// DependsOnTaskID. Self-dependency is rejected in the service layer and by a
// database check constraint; duplicate edges collide on the composite key.
// Cycles are not prevented.
type TaskDependency struct {
	TaskID          int64 `json:"task_id" gorm:"primaryKey;autoIncrement:false;check:no_self_dependency,task_id <> depends_on_task_id"`
	DependsOnTaskID int64 `json:"depends_on_task_id" gorm:"primaryKey;autoIncrement:false"`
}

// TableName returns the table name for TaskDependency
func (TaskDependency) TableName() string {
	return "task_dependencies"
}
