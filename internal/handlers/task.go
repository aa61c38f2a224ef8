package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(db *gorm.DB, lat services.Latency) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(db, lat),
	}
}

// List returns paginated tasks
// GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	var req services.TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.taskService.List(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a task by ID
// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.taskService.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c, "task not found")
		return
	}

	response.Success(c, task)
}

// Create creates a new task
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "task", "created", "task created: "+task.Title, gin.H{"id": task.ID})
	response.Created(c, task)
}

// Update applies the present fields of the request to a task
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "task", "updated", "task updated: "+task.Title, gin.H{"id": task.ID})
	response.Success(c, task)
}

type updateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in-progress review done"`
}

// UpdateStatus moves a task between board columns
// PUT /api/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req updateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "task", "updated", "task status: "+task.Title+" -> "+task.Status, gin.H{"id": task.ID})
	response.Success(c, task)
}

// Delete removes a task and returns the removed copy
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.taskService.Delete(id)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("warn", "task", "deleted", "task deleted: "+task.Title, gin.H{"id": task.ID})
	response.Success(c, task)
}
