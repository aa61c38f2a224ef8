package services

import (
	"errors"
	"testing"
)

func TestProjectService_CreateAndGetByID(t *testing.T) {
	svc := NewProjectService(newTestDB(t), Latency{})

	created, err := svc.Create(&CreateProjectRequest{
		Name:        "Website Redesign",
		Description: "Marketing site overhaul",
		StartDate:   "2026-03-01",
		EndDate:     "2026-04-30",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("Create() should assign an id")
	}
	if created.Status != "Planning" {
		t.Errorf("default Status = %q, expected Planning", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create() should stamp CreatedAt")
	}

	got, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() returned nil for existing project")
	}
	if got.Name != "Website Redesign" {
		t.Errorf("Name = %q, expected %q", got.Name, "Website Redesign")
	}
	if !got.StartDate.Equal(created.StartDate) {
		t.Errorf("StartDate = %v, expected %v", got.StartDate, created.StartDate)
	}
}

func TestProjectService_GetByID_Absent(t *testing.T) {
	svc := NewProjectService(newTestDB(t), Latency{})

	got, err := svc.GetByID(999)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByID() = %+v, expected nil for absent id", got)
	}
}

func TestProjectService_IDsNotReusedAfterDelete(t *testing.T) {
	svc := NewProjectService(newTestDB(t), Latency{})

	first, err := svc.Create(&CreateProjectRequest{
		Name: "First", StartDate: "2026-01-01", EndDate: "2026-02-01",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Delete(first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	second, err := svc.Create(&CreateProjectRequest{
		Name: "Second", StartDate: "2026-01-01", EndDate: "2026-02-01",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("new id %d should be greater than deleted id %d", second.ID, first.ID)
	}
}

func TestProjectService_Update_ShallowMerge(t *testing.T) {
	svc := NewProjectService(newTestDB(t), Latency{})

	created, err := svc.Create(&CreateProjectRequest{
		Name:        "Mobile App",
		Description: "iOS and Android clients",
		StartDate:   "2026-03-01",
		EndDate:     "2026-06-30",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	progress := 45
	updated, err := svc.Update(created.ID, &UpdateProjectRequest{
		Status:   "Active",
		Progress: &progress,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != "Active" {
		t.Errorf("Status = %q, expected Active", updated.Status)
	}
	if updated.Progress != 45 {
		t.Errorf("Progress = %d, expected 45", updated.Progress)
	}
	if updated.Name != "Mobile App" {
		t.Errorf("Name = %q, untouched field should survive the merge", updated.Name)
	}
	if updated.Description != "iOS and Android clients" {
		t.Errorf("Description = %q, untouched field should survive the merge", updated.Description)
	}
}

func TestProjectService_Update_Absent(t *testing.T) {
	svc := NewProjectService(newTestDB(t), Latency{})

	_, err := svc.Update(42, &UpdateProjectRequest{Name: "ghost"})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Update() error = %v, expected NotFoundError", err)
	}
	if nf.Entity != "project" || nf.ID != 42 {
		t.Errorf("NotFoundError = %+v, expected project 42", nf)
	}
}

func TestProjectService_Delete_ReturnsRemovedCopy(t *testing.T) {
	svc := NewProjectService(newTestDB(t), Latency{})

	created, err := svc.Create(&CreateProjectRequest{
		Name: "Throwaway", StartDate: "2026-01-01", EndDate: "2026-01-31",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	removed, err := svc.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if removed.Name != "Throwaway" {
		t.Errorf("Delete() copy Name = %q, expected Throwaway", removed.Name)
	}

	if _, err := svc.Delete(created.ID); err == nil {
		t.Error("second Delete() should fail with NotFoundError")
	}

	got, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Error("deleted project should not be readable")
	}
}

func TestProjectService_List_Filters(t *testing.T) {
	svc := NewProjectService(newTestDB(t), Latency{})

	for _, p := range []CreateProjectRequest{
		{Name: "API Gateway", Status: "Active", StartDate: "2026-01-01", EndDate: "2026-03-01"},
		{Name: "API Docs", Status: "Planning", StartDate: "2026-02-01", EndDate: "2026-03-01"},
		{Name: "Data Pipeline", Status: "Active", StartDate: "2026-01-15", EndDate: "2026-05-01"},
	} {
		req := p
		if _, err := svc.Create(&req); err != nil {
			t.Fatalf("Create(%q) error = %v", p.Name, err)
		}
	}

	resp, err := svc.List(&ProjectListRequest{Name: "API"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("name filter Total = %d, expected 2", resp.Total)
	}

	resp, err = svc.List(&ProjectListRequest{Status: "Active"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("status filter Total = %d, expected 2", resp.Total)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("status filter returned %d items, expected 2", len(resp.Items))
	}
	if resp.Items[0].ID > resp.Items[1].ID {
		t.Error("List() should order by id ascending")
	}
}
