package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/internal/services"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// SSE connections
	sseClients := services.GetEventHub().ClientCount()

	// Open (not done) task count
	var openTasks int64
	models.GetDB().Model(&models.Task{}).
		Where("status != ?", models.TaskStatusDone).
		Count(&openTasks)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "taskflow",
		"components": gin.H{
			"database":    dbStatus,
			"sse_clients": sseClients,
			"open_tasks":  openTasks,
		},
	})
}
