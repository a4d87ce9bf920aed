package handlers

import (
	"net/http"

	"remindly/models"
	"remindly/services/user"
	"remindly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account endpoints.
type UserHandler struct {
	UserService user.UserService
}

// NewUserHandler builds a user handler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// RegisterHandler handles POST /auth/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.UserService.Register(c.Request.Context(), req.Name, req.Phone, req.Email, req.Password)
	if err != nil {
		logger.Error("Registration failed", zap.String("phone", req.Phone), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. Check WhatsApp for your verification code.",
		"user":    u,
	})
}

// RequestOTPHandler handles POST /auth/otp.
func (h *UserHandler) RequestOTPHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.UserService.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyOTPHandler handles POST /auth/verify.
func (h *UserHandler) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.UserService.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// LoginHandler handles POST /auth/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.UserService.Authenticate(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// MeHandler handles GET /me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.GetString("userID")
	u, err := h.UserService.GetByID(id)
	if err != nil {
		logger.Error("User not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateNotificationSettingsHandler handles PUT /me/notifications.
func (h *UserHandler) UpdateNotificationSettingsHandler(c *gin.Context) {
	var settings models.NotificationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.UserService.UpdateNotificationSettings(c.GetString("userID"), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}

// UpdateFCMTokenHandler handles PUT /me/fcm-token.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.UserService.UpdateFCMToken(c.GetString("userID"), req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token updated"})
}

// DeleteAccountHandler handles DELETE /me.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.GetString("userID")
	if err := h.UserService.Delete(id); err != nil {
		logger.Error("Delete error", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
