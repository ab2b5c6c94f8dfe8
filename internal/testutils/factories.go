package testutils

import (
	"fmt"
	"time"

	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
)

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		Name:      "Test Team " + uuid.New().String()[:8],
		CreatedAt: time.Now(),
	}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. Username and email embed
// part of the UUID so repeated calls never collide on the unique indexes.
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	username := "user-" + id.String()[:8]
	email := username + "@test.com"

	return &models.User{
		ID:          id,
		Username:    &username,
		Email:       &email,
		IsActive:    true,
		IsSuperuser: false,
		CreatedAt:   time.Now(),
	}
}

// WithUsername sets a custom username for the user
func (f *UserFactory) WithUsername(username string) *models.User {
	user := f.Create()
	user.Username = &username
	email := username + "@test.com"
	user.Email = &email
	return user
}

// WithTeam sets the team ID for the user
func (f *UserFactory) WithTeam(teamID int64) *models.User {
	user := f.Create()
	user.TeamID = &teamID
	return user
}

// Superuser creates a user with superuser privileges
func (f *UserFactory) Superuser() *models.User {
	user := f.Create()
	user.IsSuperuser = true
	return user
}

// Inactive creates a deactivated user
func (f *UserFactory) Inactive() *models.User {
	user := f.Create()
	user.IsActive = false
	return user
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task with default values
func (f *TaskFactory) Create() *models.Task {
	return &models.Task{
		Title:     "Test Task " + uuid.New().String()[:8],
		Status:    models.TaskStatusUnassigned,
		Priority:  1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// WithTitle sets a custom title for the task
func (f *TaskFactory) WithTitle(title string) *models.Task {
	task := f.Create()
	task.Title = title
	return task
}

// WithStatus sets a custom status for the task
func (f *TaskFactory) WithStatus(status models.TaskStatus) *models.Task {
	task := f.Create()
	task.Status = status
	return task
}

// WithPriority sets a custom priority for the task
func (f *TaskFactory) WithPriority(priority int) *models.Task {
	task := f.Create()
	task.Priority = priority
	return task
}

// WithDueDate sets a due date for the task
func (f *TaskFactory) WithDueDate(due time.Time) *models.Task {
	task := f.Create()
	task.DueDate = &due
	return task
}

// WithCreator sets the creating user for the task
func (f *TaskFactory) WithCreator(userID uuid.UUID) *models.Task {
	task := f.Create()
	task.CreatedBy = &userID
	return task
}

// AssignmentFactory provides methods to create test Assignment data
type AssignmentFactory struct{}

// NewAssignmentFactory creates a new AssignmentFactory
func NewAssignmentFactory() *AssignmentFactory {
	return &AssignmentFactory{}
}

// Create creates a test Assignment for the given task and assignee
func (f *AssignmentFactory) Create(taskID int64, assignedTo uuid.UUID) *models.Assignment {
	return &models.Assignment{
		TaskID:     taskID,
		AssignedTo: assignedTo,
		AssignedAt: time.Now(),
		Delegated:  false,
	}
}

// Delegated creates a delegated assignment with notes
func (f *AssignmentFactory) Delegated(taskID int64, assignedTo, assignedBy uuid.UUID) *models.Assignment {
	notes := "delegated for review"
	a := f.Create(taskID, assignedTo)
	a.AssignedBy = &assignedBy
	a.Delegated = true
	a.Notes = &notes
	return a
}

// CommentFactory provides methods to create test TaskComment data
type CommentFactory struct{}

// NewCommentFactory creates a new CommentFactory
func NewCommentFactory() *CommentFactory {
	return &CommentFactory{}
}

// Create creates a test TaskComment for the given task
func (f *CommentFactory) Create(taskID int64) *models.TaskComment {
	return &models.TaskComment{
		TaskID:    taskID,
		Body:      fmt.Sprintf("Test comment on task %d", taskID),
		CreatedAt: time.Now(),
	}
}

// WithAuthor sets the comment author
func (f *CommentFactory) WithAuthor(taskID int64, authorID uuid.UUID) *models.TaskComment {
	c := f.Create(taskID)
	c.AuthorID = &authorID
	return c
}

// FactorySet provides access to all factories
type FactorySet struct {
	Team       *TeamFactory
	User       *UserFactory
	Task       *TaskFactory
	Assignment *AssignmentFactory
	Comment    *CommentFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Team:       NewTeamFactory(),
		User:       NewUserFactory(),
		Task:       NewTaskFactory(),
		Assignment: NewAssignmentFactory(),
		Comment:    NewCommentFactory(),
	}
}
