package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/response"
	"gorm.io/gorm"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	dragService     *services.DragService
}

func NewScheduleHandler(db *gorm.DB, drag *services.DragService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: services.NewScheduleService(db),
		dragService:     drag,
	}
}

// Timeline returns the per-assignee timeline around a focus date
// GET /api/schedule/timeline?focus=2026-03-15&range=month&project_id=1
func (h *ScheduleHandler) Timeline(c *gin.Context) {
	focus := time.Now()
	if raw := c.Query("focus"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "invalid focus date, expected YYYY-MM-DD")
			return
		}
		focus = parsed
	}

	rng := c.DefaultQuery("range", "month")
	switch rng {
	case "week", "month", "quarter":
	default:
		response.BadRequest(c, "invalid range, expected week, month or quarter")
		return
	}

	var projectID uint
	if raw := c.Query("project_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid project_id")
			return
		}
		projectID = uint(parsed)
	}

	resp, err := h.scheduleService.Timeline(focus, rng, projectID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// Calendar returns the month grid of due dates
// GET /api/schedule/calendar?month=2026-03
func (h *ScheduleHandler) Calendar(c *gin.Context) {
	month := time.Now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.BadRequest(c, "invalid month, expected YYYY-MM")
			return
		}
		month = parsed
	}

	resp, err := h.scheduleService.Calendar(month)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// StartDrag opens the exclusive drag session for one task bar
// POST /api/schedule/drag/start
func (h *ScheduleHandler) StartDrag(c *gin.Context) {
	var req services.StartDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	state, err := h.dragService.Start(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, state)
}

// MoveDrag advances the active drag to a new pointer position
// POST /api/schedule/drag/move
func (h *ScheduleHandler) MoveDrag(c *gin.Context) {
	var req services.MoveDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	moved, err := h.dragService.Move(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, moved)
}

// EndDrag closes the active drag session
// POST /api/schedule/drag/end
func (h *ScheduleHandler) EndDrag(c *gin.Context) {
	done, err := h.dragService.End()
	if err != nil {
		writeError(c, err)
		return
	}

	if done.Mutated {
		services.LogActivity("info", "task", "updated", "task rescheduled by drag", gin.H{"id": done.TaskID, "mutations": done.Mutations})
	}
	response.Success(c, done)
}
