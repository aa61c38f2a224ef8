package services

import (
	"errors"
	"math"
	"time"

	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/pkg/metrics"
	"gorm.io/gorm"
)

type MilestoneService struct {
	db  *gorm.DB
	lat Latency
}

func NewMilestoneService(db *gorm.DB, lat Latency) *MilestoneService {
	return &MilestoneService{db: db, lat: lat}
}

type CreateMilestoneRequest struct {
	ProjectID   uint   `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Completed"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Progress    *int   `json:"progress" binding:"omitempty,min=0,max=100"`
}

type UpdateMilestoneRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Completed"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Progress    *int   `json:"progress" binding:"omitempty,min=0,max=100"`
}

// ProjectMilestoneStats aggregates one project's milestones in a single pass.
type ProjectMilestoneStats struct {
	Total       int `json:"total"`
	Completed   int `json:"completed"`
	InProgress  int `json:"in_progress"`
	Pending     int `json:"pending"`
	Overdue     int `json:"overdue"`
	AvgProgress int `json:"avg_progress"`
}

// GetAll returns every milestone.
func (s *MilestoneService) GetAll() ([]models.Milestone, error) {
	s.lat.Wait()

	var milestones []models.Milestone
	if err := s.db.Order("id ASC").Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

// GetByID returns a milestone by ID, or nil when absent.
func (s *MilestoneService) GetByID(id uint) (*models.Milestone, error) {
	s.lat.Wait()

	var milestone models.Milestone
	if err := s.db.First(&milestone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &milestone, nil
}

// GetByProjectID returns one project's milestones ordered by due date.
func (s *MilestoneService) GetByProjectID(projectID uint) ([]models.Milestone, error) {
	s.lat.Wait()

	var milestones []models.Milestone
	if err := s.db.Where("project_id = ?", projectID).Order("due_date ASC").Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

// Create validates required fields and creates a new milestone. Validation
// failures happen before any mutation; the store is left unchanged.
func (s *MilestoneService) Create(req *CreateMilestoneRequest) (*models.Milestone, error) {
	s.lat.Wait()

	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.DueDate == "" {
		missing = append(missing, "due_date")
	}
	if req.ProjectID == 0 {
		missing = append(missing, "project_id")
	}
	if len(missing) > 0 {
		return nil, NewValidation("missing required fields: %v", missing)
	}

	due, err := parseDateField("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	milestone := models.Milestone{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if milestone.Status == "" {
		milestone.Status = models.MilestoneStatusPending
	}
	if milestone.Priority == "" {
		milestone.Priority = models.MilestonePriorityMedium
	}
	if req.Progress != nil {
		milestone.Progress = *req.Progress
	}
	if milestone.Status == models.MilestoneStatusCompleted {
		milestone.Progress = 100
		now := time.Now()
		milestone.CompletedAt = &now
	}

	if err := s.db.Create(&milestone).Error; err != nil {
		metrics.RecordStoreOp("milestone", "create", "error")
		return nil, err
	}

	metrics.RecordStoreOp("milestone", "create", "ok")
	PublishEntityEvent("milestone", "created", milestone.ID, milestone.ProjectID)
	return &milestone, nil
}

// Update shallow-merges the present fields of req into the stored milestone
// and applies the completion transition: entering Completed stamps
// completed_at and forces progress to 100, leaving it clears completed_at.
func (s *MilestoneService) Update(id uint, req *UpdateMilestoneRequest) (*models.Milestone, error) {
	s.lat.Wait()

	var milestone models.Milestone
	if err := s.db.First(&milestone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("milestone", "update", "not_found")
			return nil, NewNotFound("milestone", id)
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
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if req.DueDate != "" {
		due, err := parseDateField("due_date", req.DueDate)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = due
	}

	if req.Status != "" {
		updates["status"] = req.Status
		if req.Status == models.MilestoneStatusCompleted {
			if milestone.Status != models.MilestoneStatusCompleted {
				updates["completed_at"] = time.Now()
				updates["progress"] = 100
			}
		} else {
			updates["completed_at"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&milestone).Updates(updates).Error; err != nil {
			metrics.RecordStoreOp("milestone", "update", "error")
			return nil, err
		}
		if err := s.db.First(&milestone, id).Error; err != nil {
			return nil, err
		}
	}

	metrics.RecordStoreOp("milestone", "update", "ok")
	PublishEntityEvent("milestone", "updated", milestone.ID, milestone.ProjectID)
	return &milestone, nil
}

// Delete removes a milestone and returns the removed copy.
func (s *MilestoneService) Delete(id uint) (*models.Milestone, error) {
	s.lat.Wait()

	var milestone models.Milestone
	if err := s.db.First(&milestone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("milestone", "delete", "not_found")
			return nil, NewNotFound("milestone", id)
		}
		return nil, err
	}

	if err := s.db.Delete(&milestone).Error; err != nil {
		metrics.RecordStoreOp("milestone", "delete", "error")
		return nil, err
	}

	metrics.RecordStoreOp("milestone", "delete", "ok")
	PublishEntityEvent("milestone", "deleted", milestone.ID, milestone.ProjectID)
	return &milestone, nil
}

// ProjectStats aggregates one project's milestones in a single pass.
// A milestone is overdue when it is not completed and its due date has
// passed.
func (s *MilestoneService) ProjectStats(projectID uint) (*ProjectMilestoneStats, error) {
	s.lat.Wait()

	var milestones []models.Milestone
	if err := s.db.Where("project_id = ?", projectID).Find(&milestones).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &ProjectMilestoneStats{Total: len(milestones)}
	progressSum := 0

	for _, m := range milestones {
		switch m.Status {
		case models.MilestoneStatusCompleted:
			stats.Completed++
		case models.MilestoneStatusInProgress:
			stats.InProgress++
		case models.MilestoneStatusPending:
			stats.Pending++
		}
		if m.Overdue(now) {
			stats.Overdue++
		}
		progressSum += m.Progress
	}

	if stats.Total > 0 {
		stats.AvgProgress = int(math.Round(float64(progressSum) / float64(stats.Total)))
	}

	return stats, nil
}
