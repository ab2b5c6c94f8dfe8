package repository

import (
	"fmt"
	"time"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	return translateDBError(r.db.Create(task).Error)
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(id int64) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByIDs retrieves tasks by ID in one batch; missing ids are simply absent
// from the result
func (r *TaskRepository) GetByIDs(ids []int64) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&tasks).Error
	return tasks, err
}

// List retrieves tasks with pagination, newest first
func (r *TaskRepository) List(skip, limit int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	if err := r.db.Model(&models.Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Offset(skip).Limit(limit).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update saves a task
func (r *TaskRepository) Update(task *models.Task) error {
	return translateDBError(r.db.Save(task).Error)
}

// BulkTaskUpdate is one sparse, independently validated mutation request
// within a batch. Nil fields mean "do not touch" - a JSON null and an absent
// field both decode to nil, so clearing a field through this path is not
// supported.
type BulkTaskUpdate struct {
	ID                  int64              `json:"id"`
	Title               *string            `json:"title,omitempty"`
	Description         *string            `json:"description,omitempty"`
	Status              *models.TaskStatus `json:"status,omitempty"`
	Priority            *int               `json:"priority,omitempty"`
	DueDate             *time.Time         `json:"due_date,omitempty"`
	CurrentAssignmentID *int64             `json:"current_assignment_id,omitempty"`
	DeletedAt           *time.Time         `json:"deleted_at,omitempty"`
}

// BulkItemResult reports the outcome for one input item, in input order
type BulkItemResult struct {
	ID    int64  `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BulkUpdateResult is the full report of a bulk update call. When the commit
// fails on an integrity violation, Updated is empty and every locally valid
// item is relabeled with the integrity message - Updated is authoritative
// over any entity state captured before commit.
type BulkUpdateResult struct {
	Updated  []models.Task    `json:"updated"`
	NotFound []int64          `json:"not_found"`
	Results  []BulkItemResult `json:"results"`
}

// ValidateBulkTaskUpdate runs the per-item field validation: priority must be
// in [1,5] and status a member of the fixed enum. Referential checks happen
// inside the bulk transaction.
func ValidateBulkTaskUpdate(item BulkTaskUpdate) error {
	if item.Priority != nil && (*item.Priority < 1 || *item.Priority > 5) {
		return apperrors.NewValidationError("priority", "priority out of range (must be 1-5)")
	}
	if item.Status != nil && !item.Status.IsValid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("invalid status %q", *item.Status))
	}
	return nil
}

// BulkUpdate applies a batch of sparse task updates in one transaction.
//
// Items are validated independently: a missing task, a bad priority or
// status, or a dangling current_assignment_id fails that item without
// touching its siblings. All surviving mutations commit together; an
// integrity violation at commit time rolls the whole batch back and rewrites
// every previously successful item result with the integrity message, while
// locally failed items keep their original error.
func (r *TaskRepository) BulkUpdate(items []BulkTaskUpdate) (*BulkUpdateResult, error) {
	result := &BulkUpdateResult{
		NotFound: []int64{},
		Results:  make([]BulkItemResult, len(items)),
	}
	for i, item := range items {
		result.Results[i] = BulkItemResult{ID: item.ID}
	}
	if len(items) == 0 {
		result.Updated = []models.Task{}
		return result, nil
	}

	var updatedIDs []int64
	txErr := r.db.Transaction(func(tx *gorm.DB) error {
		// Load every referenced task in one batch
		ids := make([]int64, 0, len(items))
		seen := make(map[int64]bool, len(items))
		for _, item := range items {
			if !seen[item.ID] {
				seen[item.ID] = true
				ids = append(ids, item.ID)
			}
		}
		var tasks []models.Task
		if err := tx.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
			return err
		}
		byID := make(map[int64]*models.Task, len(tasks))
		for i := range tasks {
			byID[tasks[i].ID] = &tasks[i]
		}
		missing := make(map[int64]bool)
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing[id] = true
				result.NotFound = append(result.NotFound, id)
			}
		}

		// Pre-validate all requested assignment references in one batch
		assignmentIDs := make([]int64, 0)
		seenAssignment := make(map[int64]bool)
		for _, item := range items {
			if item.CurrentAssignmentID != nil && !seenAssignment[*item.CurrentAssignmentID] {
				seenAssignment[*item.CurrentAssignmentID] = true
				assignmentIDs = append(assignmentIDs, *item.CurrentAssignmentID)
			}
		}
		existingAssignments := make(map[int64]bool, len(assignmentIDs))
		if len(assignmentIDs) > 0 {
			var found []int64
			if err := tx.Model(&models.Assignment{}).
				Where("id IN ?", assignmentIDs).
				Pluck("id", &found).Error; err != nil {
				return err
			}
			for _, id := range found {
				existingAssignments[id] = true
			}
		}

		// Per-item validation and staging; failures never block siblings
		now := time.Now()
		staged := make(map[int64]bool)
		for i, item := range items {
			if missing[item.ID] {
				result.Results[i].Error = "task not found"
				continue
			}
			if err := ValidateBulkTaskUpdate(item); err != nil {
				result.Results[i].Error = err.Error()
				continue
			}
			if item.CurrentAssignmentID != nil && !existingAssignments[*item.CurrentAssignmentID] {
				result.Results[i].Error = fmt.Sprintf("assignment %d not found", *item.CurrentAssignmentID)
				continue
			}

			task := byID[item.ID]
			changed := false
			if item.Title != nil {
				task.Title = *item.Title
				changed = true
			}
			if item.Description != nil {
				task.Description = item.Description
				changed = true
			}
			if item.Status != nil {
				task.Status = *item.Status
				changed = true
			}
			if item.Priority != nil {
				task.Priority = *item.Priority
				changed = true
			}
			if item.DueDate != nil {
				task.DueDate = item.DueDate
				changed = true
			}
			if item.CurrentAssignmentID != nil {
				task.CurrentAssignmentID = item.CurrentAssignmentID
				changed = true
			}
			if item.DeletedAt != nil {
				task.DeletedAt = item.DeletedAt
				changed = true
			}
			if changed {
				task.UpdatedAt = now
			}
			result.Results[i].OK = true
			if !staged[item.ID] {
				staged[item.ID] = true
				updatedIDs = append(updatedIDs, item.ID)
			}
		}

		// Stage all surviving mutations; any failure aborts the whole batch
		for _, id := range updatedIDs {
			if err := tx.Save(byID[id]).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if txErr != nil {
		translated := translateDBError(txErr)
		if !apperrors.IsIntegrity(translated) {
			return nil, translated
		}
		// Rolled back: demote every previously successful item, keep the
		// original error on items that failed local validation
		for i := range result.Results {
			if result.Results[i].OK {
				result.Results[i].OK = false
				result.Results[i].Error = translated.Error()
			}
		}
		result.Updated = []models.Task{}
		return result, nil
	}

	// Re-read post-commit so callers see the authoritative state
	result.Updated = []models.Task{}
	if len(updatedIDs) > 0 {
		if err := r.db.Where("id IN ?", updatedIDs).Find(&result.Updated).Error; err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Filter returns tasks matching the combined filter condition, ordered by
// creation time descending and paginated. The assignment join is an outer
// join so tasks without a current assignment stay in the result set unless
// the assignee predicate excludes them.
func (r *TaskRepository) Filter(filter *TaskFilter, skip, limit int) ([]models.Task, int64, error) {
	q := r.db.Model(&models.Task{}).
		Select("tasks.*").
		Joins("LEFT JOIN assignment ON assignment.id = tasks.current_assignment_id")
	q = filter.Apply(q)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := q.Order("tasks.created_at DESC").Offset(skip).Limit(limit).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// DistributionRow is one group of the task distribution. Key is empty for
// the null group (tasks with no team or no current assignee).
type DistributionRow struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Distribution groups all tasks by the requested dimension and counts them,
// ordered by count descending. "team" groups by the creating user's team
// name, "assignee" by the current assignment's assignee username; both are
// outer joins so unattributed tasks land in the empty-key group.
func (r *TaskRepository) Distribution(groupBy string, skip, limit int) ([]DistributionRow, error) {
	q := r.db.Model(&models.Task{})

	switch groupBy {
	case "status":
		q = q.Select("tasks.status AS key, COUNT(*) AS count").
			Group("tasks.status")
	case "priority":
		// The schema disallows a null priority; the sentinel is defensive
		q = q.Select("COALESCE(tasks.priority::text, 'unknown') AS key, COUNT(*) AS count").
			Group("COALESCE(tasks.priority::text, 'unknown')")
	case "team":
		q = q.Select("COALESCE(teams.name, '') AS key, COUNT(*) AS count").
			Joins("LEFT JOIN users ON users.id = tasks.created_by").
			Joins("LEFT JOIN teams ON teams.id = users.team_id").
			Group("teams.name")
	case "assignee":
		q = q.Select("COALESCE(users.username, '') AS key, COUNT(*) AS count").
			Joins("LEFT JOIN assignment ON assignment.id = tasks.current_assignment_id").
			Joins("LEFT JOIN users ON users.id = assignment.assigned_to").
			Group("users.username")
	default:
		return nil, apperrors.ErrInvalidGroupBy
	}

	var rows []DistributionRow
	err := q.Order("count DESC").Offset(skip).Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// OverdueTaskSummary is a brief task record attached to an overdue report row
type OverdueTaskSummary struct {
	TaskID   int64             `json:"task_id"`
	Title    string            `json:"title"`
	DueDate  time.Time         `json:"due_date"`
	Status   models.TaskStatus `json:"status"`
	Priority int               `json:"priority"`
}

// OverdueUserRow is one assignee's overdue report entry. OverdueTasks is nil
// unless detail was requested.
type OverdueUserRow struct {
	UserID       uuid.UUID            `json:"user_id"`
	Username     string               `json:"username"`
	OverdueCount int64                `json:"overdue_count"`
	OverdueTasks []OverdueTaskSummary `json:"overdue_tasks,omitempty" gorm:"-"`
}

// overdueConditions attaches the overdue definition: due before asOf, not in
// a finished status, and currently assigned
func overdueConditions(q *gorm.DB, asOf time.Time) *gorm.DB {
	return q.
		Joins("JOIN assignment ON assignment.id = tasks.current_assignment_id").
		Joins("JOIN users ON users.id = assignment.assigned_to").
		Where("tasks.due_date IS NOT NULL AND tasks.due_date < ?", asOf).
		Where("tasks.status NOT IN ?", models.FinishedTaskStatuses())
}

// OverduePerUser counts overdue tasks per assignee, ordered by count
// descending and paginated. Two passes: the first selects the page of users
// and their counts, the second (only when includeTasks is set) fetches
// detail restricted to exactly that user set, due date ascending per user.
func (r *TaskRepository) OverduePerUser(asOf time.Time, includeTasks bool, skip, limit int) ([]OverdueUserRow, error) {
	var rows []OverdueUserRow
	q := overdueConditions(r.db.Model(&models.Task{}), asOf).
		Select("users.id AS user_id, COALESCE(users.username, '') AS username, COUNT(*) AS overdue_count").
		Group("users.id, users.username").
		Order("overdue_count DESC").
		Offset(skip).Limit(limit)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	if !includeTasks || len(rows) == 0 {
		return rows, nil
	}

	userIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
	}

	type overdueDetail struct {
		UserID   uuid.UUID
		TaskID   int64
		Title    string
		DueDate  time.Time
		Status   models.TaskStatus
		Priority int
	}
	var details []overdueDetail
	dq := overdueConditions(r.db.Model(&models.Task{}), asOf).
		Select("assignment.assigned_to AS user_id, tasks.id AS task_id, tasks.title, tasks.due_date, tasks.status, tasks.priority").
		Where("assignment.assigned_to IN ?", userIDs).
		Order("assignment.assigned_to, tasks.due_date ASC")
	if err := dq.Scan(&details).Error; err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID][]OverdueTaskSummary, len(rows))
	for _, d := range details {
		byUser[d.UserID] = append(byUser[d.UserID], OverdueTaskSummary{
			TaskID:   d.TaskID,
			Title:    d.Title,
			DueDate:  d.DueDate,
			Status:   d.Status,
			Priority: d.Priority,
		})
	}
	for i := range rows {
		rows[i].OverdueTasks = byUser[rows[i].UserID]
	}
	return rows, nil
}
