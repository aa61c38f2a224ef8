package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService   *services.ProjectService
	taskService      *services.TaskService
	milestoneService *services.MilestoneService
	scheduleService  *services.ScheduleService
}

func NewProjectHandler(db *gorm.DB, lat services.Latency) *ProjectHandler {
	return &ProjectHandler{
		projectService:   services.NewProjectService(db, lat),
		taskService:      services.NewTaskService(db, lat),
		milestoneService: services.NewMilestoneService(db, lat),
		scheduleService:  services.NewScheduleService(db),
	}
}

// List returns paginated projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.projectService.List(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if project == nil {
		response.NotFound(c, "project not found")
		return
	}

	response.Success(c, project)
}

// Create creates a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "project", "created", "project created: "+project.Name, gin.H{"id": project.ID})
	response.Created(c, project)
}

// Update applies the present fields of the request to a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "project", "updated", "project updated: "+project.Name, gin.H{"id": project.ID})
	response.Success(c, project)
}

// Delete removes a project and returns the removed copy
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.Delete(id)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("warn", "project", "deleted", "project deleted: "+project.Name, gin.H{"id": project.ID})
	response.Success(c, project)
}

// Tasks returns the tasks belonging to a project
// GET /api/projects/:id/tasks
func (h *ProjectHandler) Tasks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	tasks, err := h.taskService.GetByProjectID(id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, tasks)
}

// Milestones returns the milestones belonging to a project
// GET /api/projects/:id/milestones
func (h *ProjectHandler) Milestones(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	milestones, err := h.milestoneService.GetByProjectID(id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, milestones)
}

// MilestoneStats returns aggregate milestone figures for a project
// GET /api/projects/:id/milestone-stats
func (h *ProjectHandler) MilestoneStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	stats, err := h.milestoneService.ProjectStats(id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, stats)
}

// Gantt returns the positioned gantt view of a project
// GET /api/projects/:id/gantt
func (h *ProjectHandler) Gantt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	resp, err := h.scheduleService.Gantt(id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}
