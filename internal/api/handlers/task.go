package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"task-manager-backend/internal/auth"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	taskService service.TaskServiceInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskServiceInterface) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func parseTaskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return 0, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return skip, limit
}

// CreateTask handles POST /tasks
// @Summary Create a new task
// @Description Create a task with status unassigned; priority defaults to 1
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body service.CreateTaskRequest true "Task data"
// @Success 201 {object} service.TaskResponse "Successfully created task"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var createdBy *uuid.UUID
	if userID, ok := auth.GetUserID(c); ok {
		createdBy = &userID
	}

	task, err := h.taskService.Create(&req, createdBy)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /tasks/:id
// @Summary Get task by ID
// @Description Get a specific task by its ID
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} service.TaskResponse "Successfully retrieved task"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListTasks handles GET /tasks
// @Summary List tasks
// @Description Get tasks with pagination, newest first
// @Tags tasks
// @Accept json
// @Produce json
// @Param skip query int false "Number of items to skip" default(0)
// @Param limit query int false "Number of items per page" default(20)
// @Success 200 {object} service.TaskListResponse "Successfully retrieved tasks"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	skip, limit := parsePagination(c)

	resp, err := h.taskService.List(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTask handles PATCH /tasks/:id
// @Summary Update a task
// @Description Apply a sparse update to one task; omitted fields are left untouched
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param task body service.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} service.TaskResponse "Successfully updated task"
// @Failure 400 {object} map[string]interface{} "Invalid request body or field value"
// @Failure 404 {object} map[string]interface{} "Task or assignment not found"
// @Failure 409 {object} map[string]interface{} "Constraint violation"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Update(id, &req)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case apperrors.IsIntegrity(err):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// BulkUpdateTasks handles POST /tasks/bulk-update
// @Summary Bulk update tasks
// @Description Apply a batch of sparse updates with per-item validation and all-or-nothing commit
// @Tags tasks
// @Accept json
// @Produce json
// @Param items body service.BulkUpdateTasksRequest true "Update items"
// @Success 200 {object} service.BulkUpdateTasksResponse "Per-item results"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/bulk-update [post]
func (h *TaskHandler) BulkUpdateTasks(c *gin.Context) {
	var req service.BulkUpdateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.taskService.BulkUpdate(&req)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FilterTasks handles POST /tasks/filter
// @Summary Filter tasks
// @Description Combine status, priority, assignee, date range, and title predicates with AND or OR logic
// @Tags tasks
// @Accept json
// @Produce json
// @Param filter body service.FilterTasksRequest true "Filter predicates"
// @Param skip query int false "Number of items to skip" default(0)
// @Param limit query int false "Number of items per page" default(20)
// @Success 200 {object} service.TaskListResponse "Matching tasks"
// @Failure 400 {object} map[string]interface{} "Invalid filter"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/filter [post]
func (h *TaskHandler) FilterTasks(c *gin.Context) {
	var req service.FilterTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skip, limit := parsePagination(c)

	resp, err := h.taskService.Filter(&req, skip, limit)
	if err != nil {
		if apperrors.IsValidation(err) || errors.Is(err, apperrors.ErrInvalidFilterLogic) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTaskDistribution handles GET /tasks/distribution
// @Summary Task distribution
// @Description Count tasks grouped by status, priority, team, or assignee
// @Tags tasks
// @Accept json
// @Produce json
// @Param group_by query string true "Grouping dimension" Enums(status, priority, team, assignee)
// @Param skip query int false "Number of groups to skip" default(0)
// @Param limit query int false "Number of groups per page" default(20)
// @Success 200 {object} service.DistributionResponse "Grouped counts"
// @Failure 400 {object} map[string]interface{} "Unsupported group_by value"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/distribution [get]
func (h *TaskHandler) GetTaskDistribution(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "status")
	skip, limit := parsePagination(c)

	resp, err := h.taskService.Distribution(groupBy, skip, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidGroupBy) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetOverdueTasksPerUser handles GET /tasks/overdue-per-user
// @Summary Overdue tasks per user
// @Description Count overdue tasks per assignee, optionally with per-task detail
// @Tags tasks
// @Accept json
// @Produce json
// @Param as_of query string false "Reference instant (RFC3339); defaults to now"
// @Param include_tasks query bool false "Attach per-task detail" default(false)
// @Param skip query int false "Number of users to skip" default(0)
// @Param limit query int false "Number of users per page" default(20)
// @Success 200 {object} service.OverdueReportResponse "Per-user overdue report"
// @Failure 400 {object} map[string]interface{} "Invalid as_of timestamp"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/overdue-per-user [get]
func (h *TaskHandler) GetOverdueTasksPerUser(c *gin.Context) {
	var asOf *time.Time
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		t, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of timestamp"})
			return
		}
		asOf = &t
	}
	includeTasks := c.DefaultQuery("include_tasks", "false") == "true"
	skip, limit := parsePagination(c)

	resp, err := h.taskService.OverduePerUser(asOf, includeTasks, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
