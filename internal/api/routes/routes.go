package routes

import (
	"task-manager-backend/internal/api/handlers"
	"task-manager-backend/internal/api/middleware"
	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/config"
	"task-manager-backend/internal/repository"
	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	validator := validator.New()

	// Initialize repositories
	taskRepo := repository.NewTaskRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	dependencyRepo := repository.NewDependencyRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Initialize services
	taskService := service.NewTaskService(taskRepo, assignmentRepo, validator)
	assignmentService := service.NewAssignmentService(assignmentRepo, taskRepo, userRepo, validator)
	commentService := service.NewCommentService(commentRepo, taskRepo, validator)
	dependencyService := service.NewDependencyService(dependencyRepo, taskRepo)
	teamService := service.NewTeamService(teamRepo, validator)
	userService := service.NewUserService(userRepo)
	authService := auth.NewAuthService(cfg, userRepo, refreshTokenRepo, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	taskHandler := handlers.NewTaskHandler(taskService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	commentHandler := handlers.NewCommentHandler(commentService)
	dependencyHandler := handlers.NewDependencyHandler(dependencyService)
	teamHandler := handlers.NewTeamHandler(teamService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/token", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// API v1 routes - all endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		// Task routes
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/bulk-update", taskHandler.BulkUpdateTasks)
			tasks.POST("/filter", taskHandler.FilterTasks)
			tasks.GET("/distribution", taskHandler.GetTaskDistribution)
			tasks.GET("/overdue-per-user", taskHandler.GetOverdueTasksPerUser)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.POST("/:id/assign", assignmentHandler.AssignTask)
			tasks.GET("/:id/assignments", assignmentHandler.GetAssignmentHistory)
			tasks.POST("/:id/comments", commentHandler.AddComment)
			tasks.GET("/:id/comments", commentHandler.ListComments)
			tasks.POST("/:id/dependencies", dependencyHandler.AddDependency)
			tasks.GET("/:id/dependencies", dependencyHandler.ListDependencies)
		}

		// Team routes - creation is superuser-gated
		teams := v1.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", authMiddleware.RequireSuperuser(), teamHandler.CreateTeam)
			teams.GET("/:id", teamHandler.GetTeam)
		}

		// User routes - listing is superuser-gated
		users := v1.Group("/users")
		{
			users.GET("", authMiddleware.RequireSuperuser(), userHandler.ListUsers)
			users.GET("/me", userHandler.GetCurrentUser)
			users.GET("/:id", userHandler.GetUser)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)

	return router
}
