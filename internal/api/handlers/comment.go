package handlers

import (
	"errors"
	"net/http"

	"task-manager-backend/internal/auth"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommentHandler handles HTTP requests for task comment operations
type CommentHandler struct {
	commentService service.CommentServiceInterface
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService service.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// AddComment handles POST /tasks/:id/comments
// @Summary Comment on a task
// @Description Add a comment to a task; the author is the authenticated principal
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param comment body service.CreateCommentRequest true "Comment body"
// @Success 201 {object} service.CommentResponse "Successfully created comment"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req service.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var authorID *uuid.UUID
	if userID, ok := auth.GetUserID(c); ok {
		authorID = &userID
	}

	comment, err := h.commentService.Create(taskID, authorID, &req)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments handles GET /tasks/:id/comments
// @Summary List task comments
// @Description Get all comments on a task, oldest first
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {array} service.CommentResponse "Comments"
// @Failure 400 {object} map[string]interface{} "Invalid task ID"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /tasks/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.GetByTask(taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}
