package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/response"
	"gorm.io/gorm"
)

type ActivityHandler struct {
	activityService *services.ActivityService
	retentionDays   int
}

func NewActivityHandler(db *gorm.DB, retentionDays int) *ActivityHandler {
	return &ActivityHandler{
		activityService: services.NewActivityService(db),
		retentionDays:   retentionDays,
	}
}

// List returns activity entries, newest first
// GET /api/activity
func (h *ActivityHandler) List(c *gin.Context) {
	var req services.ActivityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.activityService.List(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// Cleanup removes entries past the retention window immediately instead of
// waiting for the daily job
// DELETE /api/activity
func (h *ActivityHandler) Cleanup(c *gin.Context) {
	deleted, err := h.activityService.CleanupOldLogs(h.retentionDays)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": deleted, "retention_days": h.retentionDays})
}
