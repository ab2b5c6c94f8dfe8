package handlers

import (
	"errors"
	"net/http"

	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DependencyHandler handles HTTP requests for task dependency operations
type DependencyHandler struct {
	dependencyService service.DependencyServiceInterface
}

// NewDependencyHandler creates a new dependency handler
func NewDependencyHandler(dependencyService service.DependencyServiceInterface) *DependencyHandler {
	return &DependencyHandler{
		dependencyService: dependencyService,
	}
}

// AddDependencyRequest represents the request to add a dependency edge
type AddDependencyRequest struct {
	DependsOnTaskID int64 `json:"depends_on_task_id" binding:"required"`
}

// AddDependency handles POST /tasks/:id/dependencies
// @Summary Add a task dependency
// @Description Record that the task depends on another task; self-dependency is rejected
// @Tags dependencies
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param dependency body AddDependencyRequest true "Dependency target"
// @Success 201 {object} service.DependencyResponse "Successfully created dependency"
// @Failure 400 {object} map[string]interface{} "Invalid request or self-dependency"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 409 {object} map[string]interface{} "Duplicate dependency"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id}/dependencies [post]
func (h *DependencyHandler) AddDependency(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req AddDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dep, err := h.dependencyService.Create(taskID, req.DependsOnTaskID)
	if err != nil {
		switch {
		case apperrors.IsValidation(err), errors.Is(err, apperrors.ErrSelfDependency):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case apperrors.IsIntegrity(err):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dep)
}

// ListDependencies handles GET /tasks/:id/dependencies
// @Summary List task dependencies
// @Description Get the outgoing dependency edges of a task
// @Tags dependencies
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {array} service.DependencyResponse "Dependencies"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id}/dependencies [get]
func (h *DependencyHandler) ListDependencies(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	deps, err := h.dependencyService.GetByTask(taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, deps)
}
