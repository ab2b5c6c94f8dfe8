package repository

import (
	"strings"
	"time"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FilterLogic selects how filter predicates are combined
type FilterLogic string

const (
	FilterLogicAnd FilterLogic = "AND"
	FilterLogicOr  FilterLogic = "OR"
)

// ParseFilterLogic parses a case-insensitive logic string. Empty input
// defaults to AND.
func ParseFilterLogic(s string) (FilterLogic, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AND":
		return FilterLogicAnd, nil
	case "OR":
		return FilterLogicOr, nil
	}
	return "", apperrors.ErrInvalidFilterLogic
}

// TaskFilter is a closed set of task predicates. Each predicate contributes
// to the combined condition only when its field is non-empty; the predicates
// are combined with AND or OR according to Logic. An empty filter matches
// every task, deleted or not - excluding soft-deleted rows is the caller's
// call.
type TaskFilter struct {
	Status      []models.TaskStatus
	Priority    []int
	Assignee    []uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	TitleSearch string
	Logic       FilterLogic
}

// predicate is one SQL fragment with its bind variables
type predicate struct {
	expr string
	vars []interface{}
}

func (f *TaskFilter) predicates() []predicate {
	var preds []predicate
	if len(f.Status) > 0 {
		preds = append(preds, predicate{"tasks.status IN ?", []interface{}{f.Status}})
	}
	if len(f.Priority) > 0 {
		preds = append(preds, predicate{"tasks.priority IN ?", []interface{}{f.Priority}})
	}
	if len(f.Assignee) > 0 {
		// "has a current assignment" and "assignee matches" stay ANDed
		// together even under OR logic; the pair is one branch of the
		// outer combination.
		preds = append(preds, predicate{
			"(tasks.current_assignment_id IS NOT NULL AND assignment.assigned_to IN ?)",
			[]interface{}{f.Assignee},
		})
	}
	if f.StartDate != nil {
		preds = append(preds, predicate{"tasks.created_at >= ?", []interface{}{*f.StartDate}})
	}
	if f.EndDate != nil {
		preds = append(preds, predicate{"tasks.created_at <= ?", []interface{}{*f.EndDate}})
	}
	if f.TitleSearch != "" {
		preds = append(preds, predicate{"tasks.title ILIKE ?", []interface{}{"%" + f.TitleSearch + "%"}})
	}
	return preds
}

// Empty reports whether the filter contributes no predicates
func (f *TaskFilter) Empty() bool {
	return len(f.predicates()) == 0
}

// Apply attaches the combined condition to the query. With no predicates the
// query is returned untouched.
func (f *TaskFilter) Apply(q *gorm.DB) *gorm.DB {
	preds := f.predicates()
	if len(preds) == 0 {
		return q
	}
	glue := " AND "
	if f.Logic == FilterLogicOr {
		glue = " OR "
	}
	exprs := make([]string, 0, len(preds))
	vars := make([]interface{}, 0, len(preds))
	for _, p := range preds {
		exprs = append(exprs, p.expr)
		vars = append(vars, p.vars...)
	}
	return q.Where("("+strings.Join(exprs, glue)+")", vars...)
}
