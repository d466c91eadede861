package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

func newTestProfileService(t *testing.T) (ProfileService, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	svc := NewProfileService(repo, nil, testLogger(), validator.New(), nil)
	return svc, repo
}

func TestProfileGetProvisionsGuest(t *testing.T) {
	svc, repo := newTestProfileService(t)

	profile, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if profile.Name != models.GuestName {
		t.Errorf("name = %q, want %q", profile.Name, models.GuestName)
	}
	if profile.Complete {
		t.Error("fresh profile reported complete")
	}

	// The guest profile must now be persisted.
	if _, err := repo.profiles.GetByID(context.Background(), "u1"); err != nil {
		t.Errorf("guest profile not stored: %v", err)
	}
}

func TestProfileUpdate(t *testing.T) {
	seed := func(t *testing.T, repo *fakeRepository) {
		t.Helper()
		err := repo.profiles.Upsert(context.Background(), &models.UserProfile{
			ID:       "u1",
			Name:     "Asha",
			Branch:   models.BranchCSE,
			Year:     models.YearSecond,
			Semester: models.SemesterS3,
			Role:     models.RoleStudent,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	t.Run("year change resets stale semester", func(t *testing.T) {
		svc, repo := newTestProfileService(t)
		seed(t, repo)

		year := models.YearThird
		profile, err := svc.Update(context.Background(), "u1", &ProfileUpdateRequest{Year: &year})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if profile.Semester != models.SemesterS5 {
			t.Errorf("semester = %s, want %s (first of the new year)", profile.Semester, models.SemesterS5)
		}
	})

	t.Run("year and matching semester together", func(t *testing.T) {
		svc, repo := newTestProfileService(t)
		seed(t, repo)

		year := models.YearThird
		semester := models.SemesterS6
		profile, err := svc.Update(context.Background(), "u1", &ProfileUpdateRequest{Year: &year, Semester: &semester})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if profile.Semester != models.SemesterS6 {
			t.Errorf("semester = %s, want %s", profile.Semester, models.SemesterS6)
		}
	})

	t.Run("semester outside effective year rejected", func(t *testing.T) {
		svc, repo := newTestProfileService(t)
		seed(t, repo)

		semester := models.SemesterS8
		_, err := svc.Update(context.Background(), "u1", &ProfileUpdateRequest{Semester: &semester})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want %v", err, ErrValidationFailed)
		}
	})

	t.Run("name only", func(t *testing.T) {
		svc, repo := newTestProfileService(t)
		seed(t, repo)

		name := "Asha R"
		profile, err := svc.Update(context.Background(), "u1", &ProfileUpdateRequest{Name: &name})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if profile.Name != "Asha R" {
			t.Errorf("name = %q, want Asha R", profile.Name)
		}
		if profile.Branch != models.BranchCSE {
			t.Errorf("branch changed on a name edit: %s", profile.Branch)
		}
	})
}

func TestProfileSetSoundMuted(t *testing.T) {
	svc, repo := newTestProfileService(t)

	if err := svc.SetSoundMuted(context.Background(), "u1", true); err != nil {
		t.Fatalf("SetSoundMuted: %v", err)
	}
	profile, err := repo.profiles.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !profile.SoundMuted {
		t.Error("sound not muted after update")
	}

	// Setting the same value again is a no-op.
	if err := svc.SetSoundMuted(context.Background(), "u1", true); err != nil {
		t.Fatalf("repeat SetSoundMuted: %v", err)
	}
}

func TestProfileSyncName(t *testing.T) {
	svc, repo := newTestProfileService(t)

	if err := svc.SyncName(context.Background(), "u1", "Ravi"); err != nil {
		t.Fatalf("SyncName: %v", err)
	}
	profile, err := repo.profiles.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Name != "Ravi" {
		t.Errorf("name = %q, want Ravi", profile.Name)
	}

	// Empty names are ignored.
	if err := svc.SyncName(context.Background(), "u1", ""); err != nil {
		t.Fatalf("SyncName empty: %v", err)
	}
	profile, _ = repo.profiles.GetByID(context.Background(), "u1")
	if profile.Name != "Ravi" {
		t.Errorf("empty sync overwrote name: %q", profile.Name)
	}
}
