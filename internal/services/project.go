package services

import (
	"errors"

	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/pkg/metrics"
	"gorm.io/gorm"
)

type ProjectService struct {
	db  *gorm.DB
	lat Latency
}

func NewProjectService(db *gorm.DB, lat Latency) *ProjectService {
	return &ProjectService{db: db, lat: lat}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Name     string `form:"name"`
	Status   string `form:"status"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=Planning Active 'On Hold' Completed"`
	Progress    *int   `json:"progress" binding:"omitempty,min=0,max=100"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=Planning Active 'On Hold' Completed"`
	Progress    *int   `json:"progress" binding:"omitempty,min=0,max=100"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// List returns paginated projects with optional name/status filters
func (s *ProjectService) List(req *ProjectListRequest) (*ProjectListResponse, error) {
	s.lat.Wait()

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 50
	}

	var projects []models.Project
	var total int64

	query := s.db.Model(&models.Project{})

	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

// GetAll returns every project; used by the schedule and report views.
func (s *ProjectService) GetAll() ([]models.Project, error) {
	s.lat.Wait()

	var projects []models.Project
	if err := s.db.Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID returns a project by ID, or nil when absent.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	s.lat.Wait()

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// Create creates a new project
func (s *ProjectService) Create(req *CreateProjectRequest) (*models.Project, error) {
	s.lat.Wait()

	start, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateField("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   start,
		EndDate:     end,
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPlanning
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}

	if err := s.db.Create(&project).Error; err != nil {
		metrics.RecordStoreOp("project", "create", "error")
		return nil, err
	}

	metrics.RecordStoreOp("project", "create", "ok")
	PublishEntityEvent("project", "created", project.ID, project.ID)
	return &project, nil
}

// Update shallow-merges the present fields of req into the stored project.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*models.Project, error) {
	s.lat.Wait()

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("project", "update", "not_found")
			return nil, NewNotFound("project", id)
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if req.StartDate != "" {
		start, err := parseDateField("start_date", req.StartDate)
		if err != nil {
			return nil, err
		}
		updates["start_date"] = start
	}
	if req.EndDate != "" {
		end, err := parseDateField("end_date", req.EndDate)
		if err != nil {
			return nil, err
		}
		updates["end_date"] = end
	}

	if len(updates) > 0 {
		if err := s.db.Model(&project).Updates(updates).Error; err != nil {
			metrics.RecordStoreOp("project", "update", "error")
			return nil, err
		}
	}

	metrics.RecordStoreOp("project", "update", "ok")
	PublishEntityEvent("project", "updated", project.ID, project.ID)
	return &project, nil
}

// Delete removes a project and returns the removed copy.
func (s *ProjectService) Delete(id uint) (*models.Project, error) {
	s.lat.Wait()

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("project", "delete", "not_found")
			return nil, NewNotFound("project", id)
		}
		return nil, err
	}

	if err := s.db.Delete(&project).Error; err != nil {
		metrics.RecordStoreOp("project", "delete", "error")
		return nil, err
	}

	metrics.RecordStoreOp("project", "delete", "ok")
	PublishEntityEvent("project", "deleted", project.ID, project.ID)
	return &project, nil
}
