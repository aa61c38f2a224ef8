package models

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedData []byte

// seedFile mirrors seed.yaml. Dates are YYYY-MM-DD strings.
type seedFile struct {
	Users []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
		Role  string `yaml:"role"`
	} `yaml:"users"`
	Projects []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Status      string `yaml:"status"`
		Progress    int    `yaml:"progress"`
		StartDate   string `yaml:"start_date"`
		EndDate     string `yaml:"end_date"`
	} `yaml:"projects"`
	Tasks []struct {
		ProjectID   uint   `yaml:"project_id"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Status      string `yaml:"status"`
		Priority    string `yaml:"priority"`
		Assignee    string `yaml:"assignee"`
		StartDate   string `yaml:"start_date"`
		DueDate     string `yaml:"due_date"`
		Progress    int    `yaml:"progress"`
	} `yaml:"tasks"`
	Milestones []struct {
		ProjectID   uint   `yaml:"project_id"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		DueDate     string `yaml:"due_date"`
		Status      string `yaml:"status"`
		Priority    string `yaml:"priority"`
		Progress    int    `yaml:"progress"`
	} `yaml:"milestones"`
}

// SeedData loads the bundled fixtures into empty collections. Collections
// that already contain rows are left untouched, so a persistent database
// keeps its data while the default in-memory database is reseeded on every
// start.
func SeedData() error {
	var seed seedFile
	if err := yaml.Unmarshal(seedData, &seed); err != nil {
		return fmt.Errorf("failed to parse seed fixtures: %w", err)
	}

	var userCount int64
	DB.Model(&User{}).Count(&userCount)
	if userCount == 0 {
		for _, u := range seed.Users {
			user := User{Name: u.Name, Email: u.Email, Role: u.Role}
			if err := DB.Create(&user).Error; err != nil {
				return err
			}
		}
	}

	var projectCount int64
	DB.Model(&Project{}).Count(&projectCount)
	if projectCount == 0 {
		for _, p := range seed.Projects {
			start, err := parseSeedDate(p.StartDate)
			if err != nil {
				return err
			}
			end, err := parseSeedDate(p.EndDate)
			if err != nil {
				return err
			}
			project := Project{
				Name:        p.Name,
				Description: p.Description,
				Status:      p.Status,
				Progress:    p.Progress,
				StartDate:   start,
				EndDate:     end,
			}
			if err := DB.Create(&project).Error; err != nil {
				return err
			}
		}
	}

	var taskCount int64
	DB.Model(&Task{}).Count(&taskCount)
	if taskCount == 0 {
		for _, t := range seed.Tasks {
			task := Task{
				ProjectID:   t.ProjectID,
				Title:       t.Title,
				Description: t.Description,
				Status:      t.Status,
				Priority:    t.Priority,
				Assignee:    t.Assignee,
				Progress:    t.Progress,
			}
			if t.StartDate != "" {
				d, err := parseSeedDate(t.StartDate)
				if err != nil {
					return err
				}
				task.StartDate = &d
			}
			if t.DueDate != "" {
				d, err := parseSeedDate(t.DueDate)
				if err != nil {
					return err
				}
				task.DueDate = &d
			}
			if err := DB.Create(&task).Error; err != nil {
				return err
			}
		}
	}

	var milestoneCount int64
	DB.Model(&Milestone{}).Count(&milestoneCount)
	if milestoneCount == 0 {
		for _, m := range seed.Milestones {
			due, err := parseSeedDate(m.DueDate)
			if err != nil {
				return err
			}
			milestone := Milestone{
				ProjectID:   m.ProjectID,
				Title:       m.Title,
				Description: m.Description,
				DueDate:     due,
				Status:      m.Status,
				Priority:    m.Priority,
				Progress:    m.Progress,
			}
			// Keep the completion invariant for seeded rows too.
			if milestone.Status == MilestoneStatusCompleted {
				milestone.Progress = 100
				completed := due
				milestone.CompletedAt = &completed
			}
			if err := DB.Create(&milestone).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func parseSeedDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid seed date %q: %w", s, err)
	}
	return d.UTC(), nil
}
