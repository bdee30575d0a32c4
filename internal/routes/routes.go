package routes

import (
	"time"

	"project-board-api/internal/config"
	"project-board-api/internal/handlers"
	"project-board-api/internal/middleware"
	"project-board-api/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Cache-Control", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	ginRouter.Use(cors.New(corsConfig))

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project board API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Users endpoint
		protectedRoutes.GET("/users", handlers.GetAllUsers)

		// Project endpoints
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.GET("/projects/:id", handlers.GetProject)
		protectedRoutes.PUT("/projects/:id", handlers.UpdateProject)

		// Workflow status endpoints (board columns)
		protectedRoutes.GET("/projects/:id/workflow-statuses", handlers.GetWorkflowStatuses)

		// Task endpoints
		protectedRoutes.GET("/projects/:id/tasks", handlers.GetTasks)
		protectedRoutes.POST("/projects/:id/tasks", handlers.CreateTask)
		protectedRoutes.GET("/projects/:id/tasks/:taskId", handlers.GetTaskByID)
		protectedRoutes.PUT("/projects/:id/tasks/:taskId", handlers.UpdateTask)
		protectedRoutes.PATCH("/projects/:id/tasks/:taskId/status", handlers.MoveTaskStatus)
		protectedRoutes.DELETE("/projects/:id/tasks/:taskId", handlers.DeleteTask)
		protectedRoutes.POST("/projects/:id/tasks/:taskId/assignees", handlers.AssignTaskUsers)
		protectedRoutes.DELETE("/projects/:id/tasks/:taskId/assignees/:userId", handlers.UnassignTaskUser)

		// Board snapshot and event stream
		protectedRoutes.GET("/projects/:id/board", handlers.GetBoard)
		protectedRoutes.GET("/ws/projects/:id", handlers.BoardEventsHandler)

		// Comment endpoints
		protectedRoutes.GET("/tasks/:id/comments", handlers.GetComments)
		protectedRoutes.POST("/tasks/:id/comments", handlers.PostComment)
		protectedRoutes.DELETE("/tasks/:id/comments/:commentId", handlers.DeleteComment)
	}

	// Manager-only routes: project and column lifecycle
	managerRoutes := api.Group("")
	managerRoutes.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin, models.RoleProjectManager))
	{
		managerRoutes.POST("/projects", handlers.CreateProject)
		managerRoutes.DELETE("/projects/:id", handlers.DeleteProject)
		managerRoutes.POST("/projects/:id/members", handlers.AddProjectMember)
		managerRoutes.DELETE("/projects/:id/members/:userId", handlers.RemoveProjectMember)
		managerRoutes.POST("/projects/:id/workflow-statuses", handlers.CreateWorkflowStatus)
		managerRoutes.POST("/projects/:id/workflow-statuses/default", handlers.SeedDefaultStatuses)
		managerRoutes.PUT("/projects/:id/workflow-statuses/:statusId", handlers.UpdateWorkflowStatus)
		managerRoutes.DELETE("/projects/:id/workflow-statuses/:statusId", handlers.DeleteWorkflowStatus)
	}

	return ginRouter
}
