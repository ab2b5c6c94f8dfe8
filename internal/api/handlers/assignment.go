package handlers

import (
	"errors"
	"net/http"

	"task-manager-backend/internal/auth"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AssignmentHandler handles HTTP requests for task assignment operations
type AssignmentHandler struct {
	assignmentService service.AssignmentServiceInterface
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService service.AssignmentServiceInterface) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// AssignTask handles POST /tasks/:id/assign
// @Summary Assign a task
// @Description Append an assignment to the task's history; unless set_current is false the task's current assignment advances to it
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param assignment body service.CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} service.AssignmentResponse "Successfully created assignment"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Task or assignee not found"
// @Failure 409 {object} map[string]interface{} "Constraint violation"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id}/assign [post]
func (h *AssignmentHandler) AssignTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The assigner is the authenticated principal unless explicitly given
	if req.AssignedBy == nil {
		if userID, ok := auth.GetUserID(c); ok {
			req.AssignedBy = &userID
		}
	}

	assignment, err := h.assignmentService.Create(taskID, &req)
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

	c.JSON(http.StatusCreated, assignment)
}

// GetAssignmentHistory handles GET /tasks/:id/assignments
// @Summary Get assignment history
// @Description Get a task's full assignment history, oldest first
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {array} service.AssignmentResponse "Assignment history"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id}/assignments [get]
func (h *AssignmentHandler) GetAssignmentHistory(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	assignments, err := h.assignmentService.GetHistory(taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignments)
}
