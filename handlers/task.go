package handlers

import (
	"errors"
	"net/http"
	"time"

	"remindly/models"
	"remindly/services/task"
	"remindly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskHandler exposes task endpoints.
type TaskHandler struct {
	TaskService task.TaskService
}

// NewTaskHandler builds a task handler.
func NewTaskHandler(svc task.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: svc}
}

type taskRequest struct {
	Text     string    `json:"text" binding:"required"`
	DueDate  time.Time `json:"dueDate" binding:"required"`
	Priority string    `json:"priority"`
}

// CreateTaskHandler handles POST /tasks.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := &models.Task{
		UserID:   c.GetString("userID"),
		Text:     req.Text,
		DueDate:  req.DueDate,
		Priority: req.Priority,
	}
	if err := h.TaskService.Create(c.Request.Context(), t); err != nil {
		logger.Error("Failed to create task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ListTasksHandler handles GET /tasks.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	tasks, err := h.TaskService.ListByUser(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTaskHandler handles PUT /tasks/:id.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	existing, err := h.fetchOwned(c, id)
	if err != nil {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing.Text = req.Text
	existing.DueDate = req.DueDate
	if req.Priority != "" {
		existing.Priority = req.Priority
	}
	if err := h.TaskService.Update(c.Request.Context(), existing); err != nil {
		logger.Error("Failed to update task", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

// CompleteTaskHandler handles PUT /tasks/:id/complete.
func (h *TaskHandler) CompleteTaskHandler(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.fetchOwned(c, id); err != nil {
		return
	}

	var req struct {
		Completed *bool `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.TaskService.SetCompleted(id, *req.Completed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
}

// DeleteTaskHandler handles DELETE /tasks/:id.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.fetchOwned(c, id); err != nil {
		return
	}
	if err := h.TaskService.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// fetchOwned loads a task and rejects the request if it belongs to another
// user. The gin response is written on failure.
func (h *TaskHandler) fetchOwned(c *gin.Context, id string) (*models.Task, error) {
	t, err := h.TaskService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil, err
	}
	if t.UserID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your task"})
		return nil, errNotOwner
	}
	return t, nil
}

var errNotOwner = errors.New("task belongs to another user")
