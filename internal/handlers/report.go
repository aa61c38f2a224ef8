package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/response"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetReport returns project, task, priority, team and schedule-health
// aggregates
// GET /api/reports?period=current|last|all&country=US
func (h *ReportHandler) GetReport(c *gin.Context) {
	var req services.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reportService.GetReport(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetTeam returns the roster with per-member task stats and workload levels
// GET /api/team?search=
func (h *ReportHandler) GetTeam(c *gin.Context) {
	resp, err := h.reportService.GetTeam(c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}
