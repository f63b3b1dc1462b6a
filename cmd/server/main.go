package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/sodo-hospital/admin-api/internal/config"
	"github.com/sodo-hospital/admin-api/internal/constants"
	"github.com/sodo-hospital/admin-api/internal/database"
	"github.com/sodo-hospital/admin-api/internal/handlers"
	"github.com/sodo-hospital/admin-api/internal/logging"
	"github.com/sodo-hospital/admin-api/internal/middleware"
	"github.com/sodo-hospital/admin-api/internal/repository"
	"github.com/sodo-hospital/admin-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Init(cfg.LogDir)
	log := logging.Logger

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

	// Enum validators for status/priority fields
	handlers.RegisterValidations()

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Services
	storage, err := services.NewStorageService(cfg.StorageDir, cfg.BaseURL, constants.UploadURLTTL)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	var chatService *services.ChatService
	if cfg.OpenAIAPIKey != "" {
		chatService = services.NewChatService(cfg.OpenAIAPIKey)
	}

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, notifRepo)
	docService := services.NewDocumentService(docRepo, taskRepo, userRepo)
	notifService := services.NewNotificationService(notifRepo)
	seedService := services.NewSeedService(userRepo, taskRepo, docRepo)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	docHandler := handlers.NewDocumentHandler(docService)
	fileHandler := handlers.NewFileHandler(storage)
	chatHandler := handlers.NewChatHandler(chatService)
	notifHandler := handlers.NewNotificationHandler(notifService)
	seedHandler := handlers.NewSeedHandler(seedService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Hospital Admin API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Session routes
		auth := api.Group("/auth")
		{
			auth.POST("/identify", userHandler.Identify)
			auth.POST("/logout", userHandler.Logout)
			auth.GET("/me", middleware.RequireUser(), userHandler.Me)
		}

		// Staff roster
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
		}

		// Tasks
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Documents
		documents := api.Group("/documents")
		{
			documents.GET("", docHandler.ListDocuments)
			documents.POST("", docHandler.CreateDocument)
			documents.PATCH("/:id", docHandler.UpdateDocument)
		}

		// File storage
		files := api.Group("/files")
		{
			files.POST("/upload-url", fileHandler.GenerateUploadURL)
			files.GET("/download-url", fileHandler.GetDownloadURL)
			files.PUT("/upload/:token", fileHandler.Upload)
			files.GET("/content/:id", fileHandler.Content)
		}

		// Assistant chat proxy
		api.POST("/chat", chatHandler.Chat)

		// Notifications (session-scoped)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireUser())
		{
			notifications.GET("", notifHandler.ListNotifications)
			notifications.PATCH("/:id/read", notifHandler.MarkRead)
		}

		// Demo data
		api.POST("/seed", seedHandler.Seed)
	}

	// Start server
	log.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
