// File: remindly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remindly/config"
	"remindly/cron"
	"remindly/database"
	taskRepoPkg "remindly/database/repository/task"
	userRepoPkg "remindly/database/repository/user"
	"remindly/handlers"
	"remindly/middleware"
	"remindly/routes"
	"remindly/services/notification"
	"remindly/services/reminder"
	"remindly/services/task"
	"remindly/services/user"
	"remindly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	taskRepo := taskRepoPkg.NewMongoTaskRepo()

	// services.
	notificationService := notification.NewDefaultNotificationService(logger)

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Tasks:    taskRepo,
		Notifier: notificationService,
		Log:      logger,
	}

	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	taskService := &task.DefaultTaskService{
		Repo:  taskRepo,
		Queue: queueClient,
		Log:   logger,
	}

	// The reminder engine: one cycle per minute over all eligible users.
	engine := &reminder.Engine{
		Users:           userRepo,
		Tasks:           taskRepo,
		Sender:          notificationService,
		Log:             logger,
		DispatchTimeout: time.Duration(config.AppConfig.ReminderDispatchTimeoutSec) * time.Second,
	}
	ticker := cron.StartReminderTicker(engine, logger)
	defer ticker.Stop()

	cron.InitReminderWorker(userRepo, taskRepo, notificationService, logger)

	// Assemble the handler bundle and register routes.
	bundle := &routes.HandlerBundle{
		User:     handlers.NewUserHandler(userService),
		Task:     handlers.NewTaskHandler(taskService),
		Schedule: handlers.NewScheduleHandler(userService),
	}
	routes.RegisterRoutes(router, bundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
