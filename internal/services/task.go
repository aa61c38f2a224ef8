package services

import (
	"errors"
	"time"

	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/pkg/metrics"
	"gorm.io/gorm"
)

type TaskService struct {
	db  *gorm.DB
	lat Latency
}

func NewTaskService(db *gorm.DB, lat Latency) *TaskService {
	return &TaskService{db: db, lat: lat}
}

type TaskListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ProjectID uint   `form:"project_id"`
	Status    string `form:"status" binding:"omitempty,oneof=todo in-progress review done"`
	Priority  string `form:"priority" binding:"omitempty,oneof=low medium high"`
	Assignee  string `form:"assignee"`
}

type TaskListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.Task `json:"items"`
}

type CreateTaskRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=todo in-progress review done"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Assignee    string `json:"assignee"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
	Progress    *int   `json:"progress" binding:"omitempty,min=0,max=100"`
}

type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=todo in-progress review done"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Assignee    string `json:"assignee"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
	Progress    *int   `json:"progress" binding:"omitempty,min=0,max=100"`
}

// List returns paginated tasks with optional filters
func (s *TaskService) List(req *TaskListRequest) (*TaskListResponse, error) {
	s.lat.Wait()

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 50
	}

	var tasks []models.Task
	var total int64

	query := s.db.Model(&models.Task{})

	if req.ProjectID != 0 {
		query = query.Where("project_id = ?", req.ProjectID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Priority != "" {
		query = query.Where("priority = ?", req.Priority)
	}
	if req.Assignee != "" {
		query = query.Where("assignee = ?", req.Assignee)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return &TaskListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    tasks,
	}, nil
}

// GetAll returns every task; used by the schedule, report and team views.
func (s *TaskService) GetAll() ([]models.Task, error) {
	s.lat.Wait()

	var tasks []models.Task
	if err := s.db.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID returns a task by ID, or nil when absent.
func (s *TaskService) GetByID(id uint) (*models.Task, error) {
	s.lat.Wait()

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// GetByProjectID returns the tasks of one project.
func (s *TaskService) GetByProjectID(projectID uint) ([]models.Task, error) {
	s.lat.Wait()

	var tasks []models.Task
	if err := s.db.Where("project_id = ?", projectID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create creates a new task
func (s *TaskService) Create(req *CreateTaskRequest) (*models.Task, error) {
	s.lat.Wait()

	task := models.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if req.Progress != nil {
		task.Progress = *req.Progress
	}
	if req.StartDate != "" {
		d, err := parseDateField("start_date", req.StartDate)
		if err != nil {
			return nil, err
		}
		task.StartDate = &d
	}
	if req.DueDate != "" {
		d, err := parseDateField("due_date", req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = &d
	}

	if err := s.db.Create(&task).Error; err != nil {
		metrics.RecordStoreOp("task", "create", "error")
		return nil, err
	}

	metrics.RecordStoreOp("task", "create", "ok")
	PublishEntityEvent("task", "created", task.ID, task.ProjectID)
	return &task, nil
}

// Update shallow-merges the present fields of req into the stored task and
// re-stamps updated_at.
func (s *TaskService) Update(id uint, req *UpdateTaskRequest) (*models.Task, error) {
	s.lat.Wait()

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("task", "update", "not_found")
			return nil, NewNotFound("task", id)
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Assignee != "" {
		updates["assignee"] = req.Assignee
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if req.StartDate != "" {
		d, err := parseDateField("start_date", req.StartDate)
		if err != nil {
			return nil, err
		}
		updates["start_date"] = d
	}
	if req.DueDate != "" {
		d, err := parseDateField("due_date", req.DueDate)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = d
	}

	if len(updates) > 0 {
		if err := s.db.Model(&task).Updates(updates).Error; err != nil {
			metrics.RecordStoreOp("task", "update", "error")
			return nil, err
		}
		// Re-read so the returned copy carries the merged date pointers.
		if err := s.db.First(&task, id).Error; err != nil {
			return nil, err
		}
	}

	metrics.RecordStoreOp("task", "update", "ok")
	PublishEntityEvent("task", "updated", task.ID, task.ProjectID)
	return &task, nil
}

// UpdateStatus moves a task to a new board column.
func (s *TaskService) UpdateStatus(id uint, status string) (*models.Task, error) {
	s.lat.Wait()

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("task", "update_status", "not_found")
			return nil, NewNotFound("task", id)
		}
		return nil, err
	}

	if err := s.db.Model(&task).Updates(map[string]interface{}{"status": status}).Error; err != nil {
		metrics.RecordStoreOp("task", "update_status", "error")
		return nil, err
	}

	metrics.RecordStoreOp("task", "update_status", "ok")
	PublishEntityEvent("task", "updated", task.ID, task.ProjectID)
	return &task, nil
}

// UpdateDates writes a new date span, used by drag sessions. Both dates are
// written in one update so the start <= due ordering enforced by the drag
// engine holds atomically.
func (s *TaskService) UpdateDates(id uint, start, due time.Time) (*models.Task, error) {
	s.lat.Wait()

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("task", "update_dates", "not_found")
			return nil, NewNotFound("task", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"start_date": start,
		"due_date":   due,
	}
	if err := s.db.Model(&task).Updates(updates).Error; err != nil {
		metrics.RecordStoreOp("task", "update_dates", "error")
		return nil, err
	}
	task.StartDate = &start
	task.DueDate = &due

	metrics.RecordStoreOp("task", "update_dates", "ok")
	PublishEntityEvent("task", "updated", task.ID, task.ProjectID)
	return &task, nil
}

// Delete removes a task and returns the removed copy.
func (s *TaskService) Delete(id uint) (*models.Task, error) {
	s.lat.Wait()

	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("task", "delete", "not_found")
			return nil, NewNotFound("task", id)
		}
		return nil, err
	}

	if err := s.db.Delete(&task).Error; err != nil {
		metrics.RecordStoreOp("task", "delete", "error")
		return nil, err
	}

	metrics.RecordStoreOp("task", "delete", "ok")
	PublishEntityEvent("task", "deleted", task.ID, task.ProjectID)
	return &task, nil
}
