package main

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/config"
	"github.com/huangang/taskflow/internal/handlers"
	"github.com/huangang/taskflow/internal/middleware"
	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	db := models.GetDB()
	lat := svc.latency

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// Prometheus scrape endpoint
	r.GET("/metrics", handlers.Metrics())

	// Rate limiter for mutation-heavy drag routes
	dragLimiter := middleware.NewRateLimiter(50, 100)

	// API routes
	api := r.Group("/api")
	{
		// SSE entity change events
		sseHandler := handlers.NewSSEHandler(services.GetEventHub())
		api.GET("/events", sseHandler.StreamEvents)

		// Projects
		projectHandler := handlers.NewProjectHandler(db, lat)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.GetByID)
		api.POST("/projects", projectHandler.Create)
		api.PUT("/projects/:id", projectHandler.Update)
		api.DELETE("/projects/:id", projectHandler.Delete)
		api.GET("/projects/:id/tasks", projectHandler.Tasks)
		api.GET("/projects/:id/milestones", projectHandler.Milestones)
		api.GET("/projects/:id/milestone-stats", projectHandler.MilestoneStats)
		api.GET("/projects/:id/gantt", projectHandler.Gantt)

		// Tasks
		taskHandler := handlers.NewTaskHandler(db, lat)
		api.GET("/tasks", taskHandler.List)
		api.GET("/tasks/:id", taskHandler.GetByID)
		api.POST("/tasks", taskHandler.Create)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.PUT("/tasks/:id/status", taskHandler.UpdateStatus)
		api.DELETE("/tasks/:id", taskHandler.Delete)

		// Milestones
		milestoneHandler := handlers.NewMilestoneHandler(db, lat)
		api.GET("/milestones", milestoneHandler.List)
		api.GET("/milestones/:id", milestoneHandler.GetByID)
		api.POST("/milestones", milestoneHandler.Create)
		api.PUT("/milestones/:id", milestoneHandler.Update)
		api.DELETE("/milestones/:id", milestoneHandler.Delete)

		// Users
		userHandler := handlers.NewUserHandler(db, lat)
		api.GET("/users", userHandler.List)
		api.GET("/users/:id", userHandler.GetByID)
		api.POST("/users", userHandler.Create)
		api.PUT("/users/:id", userHandler.Update)
		api.DELETE("/users/:id", userHandler.Delete)

		// Schedule views and drag sessions
		scheduleHandler := handlers.NewScheduleHandler(db, svc.dragService)
		api.GET("/schedule/timeline", scheduleHandler.Timeline)
		api.GET("/schedule/calendar", scheduleHandler.Calendar)
		drag := api.Group("/schedule/drag", dragLimiter.Middleware())
		{
			drag.POST("/start", scheduleHandler.StartDrag)
			drag.POST("/move", scheduleHandler.MoveDrag)
			drag.POST("/end", scheduleHandler.EndDrag)
		}

		// Reports and team
		reportHandler := handlers.NewReportHandler(svc.reportService)
		api.GET("/reports", reportHandler.GetReport)
		api.GET("/team", reportHandler.GetTeam)

		// Activity log
		activityHandler := handlers.NewActivityHandler(db, cfg.Activity.RetentionDays)
		api.GET("/activity", activityHandler.List)
		api.DELETE("/activity", activityHandler.Cleanup)
	}
}
