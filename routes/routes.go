package routes

import (
	"remindly/handlers"
	"remindly/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the router wires up.
type HandlerBundle struct {
	User     *handlers.UserHandler
	Task     *handlers.TaskHandler
	Schedule *handlers.ScheduleHandler
}

// RegisterRoutes attaches all endpoints to the router.
func RegisterRoutes(router *gin.Engine, b *HandlerBundle) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", b.User.RegisterHandler)
		auth.POST("/otp", b.User.RequestOTPHandler)
		auth.POST("/verify", b.User.VerifyOTPHandler)
		auth.POST("/login", b.User.LoginHandler)
	}

	api := router.Group("/", middleware.JWTAuthMiddleware())
	{
		api.GET("/me", b.User.MeHandler)
		api.DELETE("/me", b.User.DeleteAccountHandler)
		api.PUT("/me/notifications", b.User.UpdateNotificationSettingsHandler)
		api.PUT("/me/fcm-token", b.User.UpdateFCMTokenHandler)

		api.GET("/schedule", b.Schedule.GetScheduleHandler)
		api.PUT("/schedule", b.Schedule.SaveScheduleHandler)

		api.POST("/tasks", b.Task.CreateTaskHandler)
		api.GET("/tasks", b.Task.ListTasksHandler)
		api.PUT("/tasks/:id", b.Task.UpdateTaskHandler)
		api.PUT("/tasks/:id/complete", b.Task.CompleteTaskHandler)
		api.DELETE("/tasks/:id", b.Task.DeleteTaskHandler)
	}
}
