package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kairyu/kanban-board-api/internal/config"
	"github.com/kairyu/kanban-board-api/internal/database"
	"github.com/kairyu/kanban-board-api/internal/handlers"
	"github.com/kairyu/kanban-board-api/internal/middleware"
	"github.com/kairyu/kanban-board-api/internal/repository"
	"github.com/kairyu/kanban-board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	secret := []byte(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, secret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	notificationService := services.NewNotificationService(notificationRepo, boardRepo)
	boardService := services.NewBoardService(boardRepo, notificationService)
	taskService := services.NewTaskService(taskRepo, boardRepo, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	boardHandler := handlers.NewBoardHandler(boardService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Kanban Board API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(secret), authHandler.GetCurrentUser)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth(secret))
		{
			boards.GET("", boardHandler.ListBoards)
			boards.GET("/accessible", boardHandler.ListAccessibleBoards)
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.PUT("/:id", boardHandler.UpdateBoard)
			boards.DELETE("/:id", boardHandler.DeleteBoard)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(secret))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/archived", taskHandler.ListArchivedTasks)
			tasks.GET("/board/:boardId", taskHandler.ListTasksByBoard)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PUT("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.PUT("/:id/restore", taskHandler.RestoreTask)
			tasks.DELETE("/:id", taskHandler.ArchiveTask)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth(secret))
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
			notifications.PUT("/mark-all-read", notificationHandler.MarkAllAsRead)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
