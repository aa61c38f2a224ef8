package services

import (
	"sync"
	"time"

	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/internal/timeline"
	"github.com/huangang/taskflow/pkg/metrics"
	"gorm.io/gorm"
)

// DragService owns the single active drag session. Drags are exclusive: a
// second start while one is in flight is a conflict, matching a pointer
// device that can only drag one bar at a time.
type DragService struct {
	db    *gorm.DB
	tasks *TaskService

	mu       sync.Mutex
	session  *timeline.DragSession
	curStart time.Time
	curEnd   time.Time
}

func NewDragService(db *gorm.DB, tasks *TaskService) *DragService {
	return &DragService{db: db, tasks: tasks}
}

type StartDragRequest struct {
	TaskID        uint    `json:"task_id" binding:"required"`
	Mode          string  `json:"mode" binding:"required"`
	AnchorX       float64 `json:"anchor_x"`
	TimelineWidth float64 `json:"timeline_width" binding:"required"`
}

type MoveDragRequest struct {
	X float64 `json:"x"`
}

type DragStateResponse struct {
	TaskID    uint      `json:"task_id"`
	Mode      string    `json:"mode"`
	StartDate time.Time `json:"start_date"`
	DueDate   time.Time `json:"due_date"`
	TotalDays int       `json:"total_days"`
}

type MoveDragResponse struct {
	Applied   bool      `json:"applied"`
	StartDate time.Time `json:"start_date"`
	DueDate   time.Time `json:"due_date"`
}

type EndDragResponse struct {
	TaskID    uint `json:"task_id"`
	Mutations int  `json:"mutations"`
	Mutated   bool `json:"mutated"`
}

func (s *DragService) Start(req *StartDragRequest) (*DragStateResponse, error) {
	mode, err := timeline.ParseDragMode(req.Mode)
	if err != nil {
		return nil, NewValidation("%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return nil, NewConflict("drag session already active for task %d", s.session.TaskID)
	}

	var task models.Task
	if err := s.db.First(&task, req.TaskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewNotFound("task", req.TaskID)
		}
		return nil, err
	}
	if !task.Scheduled() {
		return nil, NewValidation("task %d has no date span to drag", task.ID)
	}

	// The pixels-per-day scale comes from the same window the gantt view
	// rendered the bar in.
	var project models.Project
	var projectPtr *models.Project
	if err := s.db.First(&project, task.ProjectID).Error; err == nil {
		projectPtr = &project
	}
	var siblings []models.Task
	if err := s.db.Where("project_id = ?", task.ProjectID).Find(&siblings).Error; err != nil {
		return nil, err
	}
	w := timeline.ResolveRange(siblings, projectPtr, time.Now())

	s.session = timeline.NewDragSession(task.ID, mode, req.AnchorX, req.TimelineWidth, w.TotalDays())
	s.curStart = *task.StartDate
	s.curEnd = *task.DueDate

	return &DragStateResponse{
		TaskID:    task.ID,
		Mode:      string(mode),
		StartDate: s.curStart,
		DueDate:   s.curEnd,
		TotalDays: w.TotalDays(),
	}, nil
}

func (s *DragService) Move(req *MoveDragRequest) (*MoveDragResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, NewConflict("no active drag session")
	}

	newStart, newEnd, applied := s.session.Move(req.X, s.curStart, s.curEnd)
	if !applied {
		return &MoveDragResponse{Applied: false, StartDate: s.curStart, DueDate: s.curEnd}, nil
	}

	task, err := s.tasks.UpdateDates(s.session.TaskID, newStart, newEnd)
	if err != nil {
		return nil, err
	}
	s.curStart = *task.StartDate
	s.curEnd = *task.DueDate

	metrics.RecordDragMutation(string(s.session.Mode))
	return &MoveDragResponse{Applied: true, StartDate: s.curStart, DueDate: s.curEnd}, nil
}

func (s *DragService) End() (*EndDragResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, NewConflict("no active drag session")
	}

	resp := &EndDragResponse{
		TaskID:    s.session.TaskID,
		Mutations: s.session.Mutations(),
	}
	resp.Mutated = resp.Mutations > 0
	s.session = nil
	return resp, nil
}

// Active reports whether a drag session is currently in flight.
func (s *DragService) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}
