package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/internal/timeline"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/at"
	"github.com/rickar/cal/v2/au"
	"github.com/rickar/cal/v2/be"
	"github.com/rickar/cal/v2/br"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/ch"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/dk"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fi"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/ie"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/jp"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/no"
	"github.com/rickar/cal/v2/nz"
	"github.com/rickar/cal/v2/pl"
	"github.com/rickar/cal/v2/pt"
	"github.com/rickar/cal/v2/se"
	"github.com/rickar/cal/v2/us"
	"gorm.io/gorm"
)

const topProjectLimit = 5

type ReportService struct {
	db             *gorm.DB
	defaultCountry string
	calendars      map[string]*cal.BusinessCalendar
}

func NewReportService(db *gorm.DB, defaultCountry string) *ReportService {
	s := &ReportService{
		db:             db,
		defaultCountry: defaultCountry,
		calendars:      make(map[string]*cal.BusinessCalendar),
	}
	s.initCalendars()
	return s
}

func (s *ReportService) initCalendars() {
	s.calendars["US"] = s.createCalendar("United States", us.Holidays...)
	s.calendars["GB"] = s.createCalendar("United Kingdom", gb.Holidays...)
	s.calendars["DE"] = s.createCalendar("Germany", de.Holidays...)
	s.calendars["FR"] = s.createCalendar("France", fr.Holidays...)
	s.calendars["JP"] = s.createCalendar("Japan", jp.Holidays...)
	s.calendars["AU"] = s.createCalendar("Australia", au.HolidaysNSW...)
	s.calendars["CA"] = s.createCalendar("Canada", ca.Holidays...)
	s.calendars["NZ"] = s.createCalendar("New Zealand", nz.Holidays...)
	s.calendars["IT"] = s.createCalendar("Italy", it.Holidays...)
	s.calendars["ES"] = s.createCalendar("Spain", es.Holidays...)
	s.calendars["NL"] = s.createCalendar("Netherlands", nl.Holidays...)
	s.calendars["BE"] = s.createCalendar("Belgium", be.Holidays...)
	s.calendars["AT"] = s.createCalendar("Austria", at.Holidays...)
	s.calendars["CH"] = s.createCalendar("Switzerland", ch.Holidays...)
	s.calendars["SE"] = s.createCalendar("Sweden", se.Holidays...)
	s.calendars["NO"] = s.createCalendar("Norway", no.Holidays...)
	s.calendars["DK"] = s.createCalendar("Denmark", dk.Holidays...)
	s.calendars["FI"] = s.createCalendar("Finland", fi.Holidays...)
	s.calendars["PL"] = s.createCalendar("Poland", pl.Holidays...)
	s.calendars["PT"] = s.createCalendar("Portugal", pt.Holidays...)
	s.calendars["IE"] = s.createCalendar("Ireland", ie.Holidays...)
	s.calendars["BR"] = s.createCalendar("Brazil", br.Holidays...)
}

func (s *ReportService) createCalendar(name string, holidays ...*cal.Holiday) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.Name = name
	c.AddHoliday(holidays...)
	return c
}

// IsWorkday reports whether t is a business day for the given country,
// falling back to a plain Mon-Fri week for unknown codes or "NONE".
func (s *ReportService) IsWorkday(t time.Time, countryCode string) bool {
	if countryCode == "" {
		countryCode = s.defaultCountry
	}
	if countryCode == "NONE" {
		return !cal.IsWeekend(t)
	}
	c, ok := s.calendars[countryCode]
	if !ok {
		return !cal.IsWeekend(t)
	}
	return c.IsWorkday(t)
}

// WorkdaysBetween counts business days in (from, to], day by day.
func (s *ReportService) WorkdaysBetween(from, to time.Time, countryCode string) int {
	if !to.After(from) {
		return 0
	}
	count := 0
	for d := timeline.StartOfDay(from).AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if s.IsWorkday(d, countryCode) {
			count++
		}
	}
	return count
}

type ReportRequest struct {
	Period  string `form:"period" binding:"omitempty,oneof=current last all"`
	Country string `form:"country"`
}

type ProjectOverview struct {
	Total           int `json:"total"`
	Active          int `json:"active"`
	Completed       int `json:"completed"`
	OnHold          int `json:"on_hold"`
	Planning        int `json:"planning"`
	AverageProgress int `json:"average_progress"`
}

type TaskOverview struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"in_progress"`
	Todo           int `json:"todo"`
	Review         int `json:"review"`
	CompletionRate int `json:"completion_rate"`
}

type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type MemberPerformance struct {
	UserID         uint   `json:"user_id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	CompletionRate int    `json:"completion_rate"`
}

type ScheduleHealth struct {
	ProjectID          uint   `json:"project_id"`
	ProjectName        string `json:"project_name"`
	DaysRemaining      int    `json:"days_remaining"`
	WorkdaysRemaining  int    `json:"workdays_remaining"`
	ExpectedProgress   int    `json:"expected_progress"`
	ActualProgress     int    `json:"actual_progress"`
	OnTrack           bool   `json:"on_track"`
}

type ReportResponse struct {
	Projects       ProjectOverview     `json:"projects"`
	Tasks          TaskOverview        `json:"tasks"`
	Priorities     PriorityBreakdown   `json:"priorities"`
	Team           []MemberPerformance `json:"team"`
	TopProjects    []models.Project    `json:"top_projects"`
	ScheduleHealth []ScheduleHealth    `json:"schedule_health"`
}

func (s *ReportService) GetReport(req *ReportRequest) (*ReportResponse, error) {
	var projects []models.Project
	if err := s.db.Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	filtered := filterByPeriod(tasks, req.Period, now)

	resp := &ReportResponse{
		Projects:       projectOverview(projects),
		Tasks:          taskOverview(filtered),
		Priorities:     priorityBreakdown(filtered),
		Team:           teamPerformance(users, filtered),
		TopProjects:    topProjects(projects),
		ScheduleHealth: s.scheduleHealth(projects, now, req.Country),
	}
	return resp, nil
}

// filterByPeriod restricts tasks to those created in the current or
// previous calendar month. Any other period keeps the full set.
func filterByPeriod(tasks []models.Task, period string, now time.Time) []models.Task {
	var start, end time.Time
	switch period {
	case "current":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	case "last":
		end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start = end.AddDate(0, -1, 0)
	default:
		return tasks
	}

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.CreatedAt.Before(start) && t.CreatedAt.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

func projectOverview(projects []models.Project) ProjectOverview {
	o := ProjectOverview{Total: len(projects)}
	progressSum := 0
	for _, p := range projects {
		progressSum += p.Progress
		switch p.Status {
		case models.ProjectStatusActive:
			o.Active++
		case models.ProjectStatusCompleted:
			o.Completed++
		case models.ProjectStatusOnHold:
			o.OnHold++
		case models.ProjectStatusPlanning:
			o.Planning++
		}
	}
	if o.Total > 0 {
		o.AverageProgress = int(math.Round(float64(progressSum) / float64(o.Total)))
	}
	return o
}

func taskOverview(tasks []models.Task) TaskOverview {
	o := TaskOverview{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusDone:
			o.Completed++
		case models.TaskStatusInProgress:
			o.InProgress++
		case models.TaskStatusTodo:
			o.Todo++
		case models.TaskStatusReview:
			o.Review++
		}
	}
	if o.Total > 0 {
		o.CompletionRate = int(math.Round(float64(o.Completed) / float64(o.Total) * 100))
	}
	return o
}

func priorityBreakdown(tasks []models.Task) PriorityBreakdown {
	b := PriorityBreakdown{}
	for _, t := range tasks {
		switch t.Priority {
		case models.TaskPriorityHigh:
			b.High++
		case models.TaskPriorityMedium:
			b.Medium++
		case models.TaskPriorityLow:
			b.Low++
		}
	}
	return b
}

func teamPerformance(users []models.User, tasks []models.Task) []MemberPerformance {
	team := make([]MemberPerformance, 0, len(users))
	for _, u := range users {
		m := MemberPerformance{UserID: u.ID, Name: u.Name, Role: u.Role}
		for _, t := range tasks {
			if !strings.EqualFold(t.Assignee, u.Name) {
				continue
			}
			m.TotalTasks++
			if t.Status == models.TaskStatusDone {
				m.CompletedTasks++
			}
		}
		if m.TotalTasks > 0 {
			m.CompletionRate = int(math.Round(float64(m.CompletedTasks) / float64(m.TotalTasks) * 100))
		}
		team = append(team, m)
	}
	sort.SliceStable(team, func(i, j int) bool {
		return team[i].CompletionRate > team[j].CompletionRate
	})
	return team
}

func topProjects(projects []models.Project) []models.Project {
	top := make([]models.Project, len(projects))
	copy(top, projects)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Progress > top[j].Progress
	})
	if len(top) > topProjectLimit {
		top = top[:topProjectLimit]
	}
	return top
}

// scheduleHealth compares each active project's reported progress
// against where it should be given how much of its span has elapsed.
func (s *ReportService) scheduleHealth(projects []models.Project, now time.Time, country string) []ScheduleHealth {
	health := make([]ScheduleHealth, 0, len(projects))
	for _, p := range projects {
		if p.Status != models.ProjectStatusActive {
			continue
		}

		h := ScheduleHealth{
			ProjectID:      p.ID,
			ProjectName:    p.Name,
			ActualProgress: p.Progress,
		}
		if now.Before(p.EndDate) {
			h.DaysRemaining = timeline.DaysBetween(p.EndDate, now)
			h.WorkdaysRemaining = s.WorkdaysBetween(now, p.EndDate, country)
		}

		total := p.EndDate.Sub(p.StartDate)
		if total > 0 {
			elapsed := now.Sub(p.StartDate)
			expected := int(math.Round(float64(elapsed) / float64(total) * 100))
			if expected < 0 {
				expected = 0
			}
			if expected > 100 {
				expected = 100
			}
			h.ExpectedProgress = expected
		}
		h.OnTrack = h.ActualProgress >= h.ExpectedProgress
		health = append(health, h)
	}
	return health
}

const (
	WorkloadHigh   = "high"
	WorkloadMedium = "medium"
	WorkloadLow    = "low"
	WorkloadNone   = "none"
)

type MemberTaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
	Review     int `json:"review"`
}

type TeamMember struct {
	User       models.User     `json:"user"`
	Stats      MemberTaskStats `json:"stats"`
	ProjectIDs []uint          `json:"project_ids"`
	Workload   string          `json:"workload"`
}

type TeamOverview struct {
	TotalMembers          int `json:"total_members"`
	ActiveTasks           int `json:"active_tasks"`
	CompletedTasks        int `json:"completed_tasks"`
	AverageTasksPerMember int `json:"average_tasks_per_member"`
}

type TeamResponse struct {
	Overview TeamOverview `json:"overview"`
	Members  []TeamMember `json:"members"`
}

func (s *ReportService) GetTeam(search string) (*TeamResponse, error) {
	var users []models.User
	q := s.db.Order("id ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR role LIKE ? OR email LIKE ?", like, like, like)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := s.db.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	resp := &TeamResponse{
		Members: make([]TeamMember, 0, len(users)),
	}
	resp.Overview.TotalMembers = len(users)
	for _, t := range tasks {
		if t.Status == models.TaskStatusDone {
			resp.Overview.CompletedTasks++
		} else {
			resp.Overview.ActiveTasks++
		}
	}
	if len(users) > 0 {
		resp.Overview.AverageTasksPerMember = int(math.Round(float64(len(tasks)) / float64(len(users))))
	}

	for _, u := range users {
		m := TeamMember{User: u, ProjectIDs: []uint{}}
		seen := make(map[uint]bool)
		for _, t := range tasks {
			if !strings.EqualFold(t.Assignee, u.Name) {
				continue
			}
			m.Stats.Total++
			switch t.Status {
			case models.TaskStatusDone:
				m.Stats.Completed++
			case models.TaskStatusInProgress:
				m.Stats.InProgress++
			case models.TaskStatusTodo:
				m.Stats.Pending++
			case models.TaskStatusReview:
				m.Stats.Review++
			}
			if !seen[t.ProjectID] {
				seen[t.ProjectID] = true
				m.ProjectIDs = append(m.ProjectIDs, t.ProjectID)
			}
		}
		m.Workload = WorkloadLevel(m.Stats.Total)
		resp.Members = append(resp.Members, m)
	}
	return resp, nil
}

func WorkloadLevel(taskCount int) string {
	switch {
	case taskCount >= 8:
		return WorkloadHigh
	case taskCount >= 4:
		return WorkloadMedium
	case taskCount >= 1:
		return WorkloadLow
	default:
		return WorkloadNone
	}
}
