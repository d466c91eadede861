package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sankalan-edu/campus-service/internal/config"
	"github.com/sankalan-edu/campus-service/internal/events"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

func newTestAdminService(t *testing.T, cfg config.AdminConfig) (AdminService, *fakeRepository, *events.MockEventPublisher) {
	t.Helper()
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(nil)
	rooms := NewRoomService(testLogger(), validator.New(), publisher)
	return NewAdminService(repo, rooms, cfg, testLogger(), publisher), repo, publisher
}

func TestAdminLogin(t *testing.T) {
	creds := config.AdminConfig{Username: "console", Password: "hunter2"}

	t.Run("valid credentials mint a token", func(t *testing.T) {
		svc, _, publisher := newTestAdminService(t, creds)

		session, err := svc.Login(context.Background(), "console", "hunter2")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if len(session.Token) != 64 {
			t.Errorf("token length = %d, want 64 hex chars", len(session.Token))
		}
		if session.View != models.ViewAdminDashboard {
			t.Errorf("view = %s, want %s", session.View, models.ViewAdminDashboard)
		}
		if err := svc.ValidateToken(context.Background(), session.Token); err != nil {
			t.Errorf("minted token rejected: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeAdminLogin {
			t.Errorf("published = %+v, want one %s event", published, events.TypeAdminLogin)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, publisher := newTestAdminService(t, creds)

		if _, err := svc.Login(context.Background(), "console", "wrong"); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("error = %v, want %v", err, ErrUnauthorized)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeAdminLoginFailure {
			t.Errorf("published = %+v, want one %s event", published, events.TypeAdminLoginFailure)
		}
	})

	t.Run("unconfigured credentials reject everything", func(t *testing.T) {
		svc, _, _ := newTestAdminService(t, config.AdminConfig{})

		if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("error = %v, want %v", err, ErrUnauthorized)
		}
	})
}

func TestAdminValidateToken(t *testing.T) {
	svc, _, _ := newTestAdminService(t, config.AdminConfig{Username: "a", Password: "b"})

	if err := svc.ValidateToken(context.Background(), "not-a-token"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("error = %v, want %v", err, ErrUnauthorized)
	}
}

func TestAdminStats(t *testing.T) {
	svc, repo, _ := newTestAdminService(t, config.AdminConfig{Username: "a", Password: "b"})
	repo.papers.count = 12
	repo.materials.count = 7
	repo.events.count = 3

	for _, p := range []models.UserProfile{
		{ID: "u1", Branch: models.BranchCSE},
		{ID: "u2", Branch: models.BranchCSE},
		{ID: "u3", Branch: models.BranchME},
		{ID: "u4"},
	} {
		profile := p
		if err := repo.profiles.Upsert(context.Background(), &profile); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalProfiles != 4 {
		t.Errorf("profiles = %d, want 4", stats.TotalProfiles)
	}
	if stats.TotalPapers != 12 || stats.TotalMaterials != 7 || stats.TotalEvents != 3 {
		t.Errorf("catalog counts = %d/%d/%d, want 12/7/3", stats.TotalPapers, stats.TotalMaterials, stats.TotalEvents)
	}
	if stats.ProfilesByBranch[models.BranchCSE] != 2 {
		t.Errorf("CSE count = %d, want 2", stats.ProfilesByBranch[models.BranchCSE])
	}
	if _, ok := stats.ProfilesByBranch[""]; ok {
		t.Error("empty branch counted")
	}
}

func TestAdminExportStats(t *testing.T) {
	svc, repo, _ := newTestAdminService(t, config.AdminConfig{Username: "a", Password: "b"})
	repo.papers.count = 5

	data, err := svc.ExportStats(context.Background())
	if err != nil {
		t.Fatalf("ExportStats: %v", err)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("export is not a readable workbook: %v", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	hasOverview := false
	for _, name := range sheets {
		if name == "Overview" {
			hasOverview = true
		}
	}
	if !hasOverview {
		t.Errorf("sheets = %v, want an Overview sheet", sheets)
	}
}
