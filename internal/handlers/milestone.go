package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/response"
	"gorm.io/gorm"
)

type MilestoneHandler struct {
	milestoneService *services.MilestoneService
}

func NewMilestoneHandler(db *gorm.DB, lat services.Latency) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService: services.NewMilestoneService(db, lat),
	}
}

// List returns all milestones, optionally scoped to one project
// GET /api/milestones?project_id=
func (h *MilestoneHandler) List(c *gin.Context) {
	if raw := c.Query("project_id"); raw != "" {
		projectID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid project_id")
			return
		}
		milestones, err := h.milestoneService.GetByProjectID(uint(projectID))
		if err != nil {
			writeError(c, err)
			return
		}
		response.Success(c, milestones)
		return
	}

	milestones, err := h.milestoneService.GetAll()
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, milestones)
}

// GetByID returns a milestone by ID
// GET /api/milestones/:id
func (h *MilestoneHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid milestone id")
		return
	}

	milestone, err := h.milestoneService.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if milestone == nil {
		response.NotFound(c, "milestone not found")
		return
	}

	response.Success(c, milestone)
}

// Create creates a new milestone
// POST /api/milestones
func (h *MilestoneHandler) Create(c *gin.Context) {
	var req services.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	milestone, err := h.milestoneService.Create(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "milestone", "created", "milestone created: "+milestone.Title, gin.H{"id": milestone.ID})
	response.Created(c, milestone)
}

// Update applies the present fields of the request to a milestone
// PUT /api/milestones/:id
func (h *MilestoneHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid milestone id")
		return
	}

	var req services.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	milestone, err := h.milestoneService.Update(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "milestone", "updated", "milestone updated: "+milestone.Title, gin.H{"id": milestone.ID})
	response.Success(c, milestone)
}

// Delete removes a milestone and returns the removed copy
// DELETE /api/milestones/:id
func (h *MilestoneHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid milestone id")
		return
	}

	milestone, err := h.milestoneService.Delete(id)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("warn", "milestone", "deleted", "milestone deleted: "+milestone.Title, gin.H{"id": milestone.ID})
	response.Success(c, milestone)
}
