package services

import (
	"time"

	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/internal/timeline"
	"gorm.io/gorm"
)

// ScheduleService assembles the positioned views (gantt, assignee timeline,
// calendar) from stored entities. It reads directly so view refreshes skip
// the store's synthetic latency.
type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

type WindowInfo struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	TotalDays int       `json:"total_days"`
}

type MarkerInfo struct {
	Position float64 `json:"position"`
	Visible  bool    `json:"visible"`
}

type GanttRow struct {
	Task models.Task  `json:"task"`
	Bar  timeline.Bar `json:"bar"`
}

type GanttResponse struct {
	Project     models.Project `json:"project"`
	Window      WindowInfo     `json:"window"`
	ProjectBar  timeline.Bar   `json:"project_bar"`
	Rows        []GanttRow     `json:"rows"`
	Unscheduled []models.Task  `json:"unscheduled"`
	Today       MarkerInfo     `json:"today"`
}

func (s *ScheduleService) Gantt(projectID uint) (*GanttResponse, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewNotFound("project", projectID)
		}
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Where("project_id = ?", projectID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	w := timeline.ResolveRange(tasks, &project, now)

	resp := &GanttResponse{
		Project: project,
		Window: WindowInfo{
			Start:     w.Start,
			End:       w.End,
			TotalDays: w.TotalDays(),
		},
		Rows:        make([]GanttRow, 0, len(tasks)),
		Unscheduled: []models.Task{},
	}

	left, width := timeline.Position(project.StartDate, project.EndDate, w)
	resp.ProjectBar = timeline.Bar{
		Left:     left,
		Width:    width,
		Duration: timeline.DaysBetween(project.EndDate, project.StartDate) + 1,
	}

	for _, t := range tasks {
		bar, ok := timeline.TaskBar(&t, w)
		if !ok {
			resp.Unscheduled = append(resp.Unscheduled, t)
			continue
		}
		resp.Rows = append(resp.Rows, GanttRow{Task: t, Bar: bar})
	}

	pos, visible := timeline.TodayMarker(now, w)
	resp.Today = MarkerInfo{Position: pos, Visible: visible}
	return resp, nil
}

type TimelineLane struct {
	Assignee string                  `json:"assignee"`
	Items    []timeline.TimelineItem `json:"items"`
}

type TimelineResponse struct {
	Window WindowInfo     `json:"window"`
	Lanes  []TimelineLane `json:"lanes"`
	Today  MarkerInfo     `json:"today"`
}

// Timeline builds the per-assignee view for the week, month, or quarter
// containing focus. Lanes follow user roster order, then first appearance
// for assignees without a user record, with Unassigned last.
func (s *ScheduleService) Timeline(focus time.Time, rng string, projectID uint) (*TimelineResponse, error) {
	q := s.db.Order("id ASC")
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	w := timeline.ViewWindow(focus, rng)
	groups := timeline.GroupByAssignee(tasks, w)

	resp := &TimelineResponse{
		Window: WindowInfo{
			Start:     w.Start,
			End:       w.End,
			TotalDays: w.TotalDays(),
		},
		Lanes: make([]TimelineLane, 0, len(groups)),
	}

	taken := make(map[string]bool)
	appendLane := func(name string) {
		if taken[name] {
			return
		}
		if items, ok := groups[name]; ok {
			taken[name] = true
			resp.Lanes = append(resp.Lanes, TimelineLane{Assignee: name, Items: items})
		}
	}

	for _, u := range users {
		appendLane(u.Name)
	}
	for _, t := range tasks {
		if t.Assignee != "" {
			appendLane(t.Assignee)
		}
	}
	appendLane("Unassigned")

	pos, visible := timeline.TodayMarker(time.Now(), w)
	resp.Today = MarkerInfo{Position: pos, Visible: visible}
	return resp, nil
}

type CalendarResponse struct {
	Month   string                         `json:"month"`
	Window  WindowInfo                     `json:"window"`
	Buckets map[string]*timeline.DayBucket `json:"buckets"`
}

// Calendar buckets task due dates and project end dates for the month
// containing the given date.
func (s *ScheduleService) Calendar(month time.Time) (*CalendarResponse, error) {
	var tasks []models.Task
	if err := s.db.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := s.db.Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}

	w := timeline.ViewWindow(month, "month")
	return &CalendarResponse{
		Month: month.Format("2006-01"),
		Window: WindowInfo{
			Start:     w.Start,
			End:       w.End,
			TotalDays: w.TotalDays(),
		},
		Buckets: timeline.MonthBuckets(month, tasks, projects),
	}, nil
}
