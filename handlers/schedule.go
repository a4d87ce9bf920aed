package handlers

import (
	"net/http"

	"remindly/services/schedule"
	"remindly/services/user"
	"remindly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the weekly schedule endpoints.
type ScheduleHandler struct {
	UserService user.UserService
}

// NewScheduleHandler builds a schedule handler.
func NewScheduleHandler(svc user.UserService) *ScheduleHandler {
	return &ScheduleHandler{UserService: svc}
}

// SaveScheduleHandler handles PUT /schedule. The body is stored exactly as
// sent; all three accepted encodings normalize at reminder time, so a save
// can never fail on shape. The response includes the normalized preview so
// clients can show what the reminder engine will actually see.
func (h *ScheduleHandler) SaveScheduleHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var raw any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be valid JSON"})
		return
	}

	id := c.GetString("userID")
	if err := h.UserService.SaveSchedule(id, raw); err != nil {
		logger.Error("Failed to save schedule", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Schedule saved",
		"normalized": schedule.Normalize(raw),
	})
}

// GetScheduleHandler handles GET /schedule. It returns both the raw blob as
// saved and the normalized entries.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	id := c.GetString("userID")
	u, err := h.UserService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"raw":        u.Schedule,
		"normalized": schedule.Normalize(u.Schedule),
	})
}
