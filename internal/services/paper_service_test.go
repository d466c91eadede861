package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

func TestPaperCreate(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaperService(repo, nil, testLogger(), validator.New(), nil)
	ctx := context.Background()

	paper, err := svc.Create(ctx, "admin1", &PaperCreateRequest{
		Title:    "Data Structures End Sem",
		Subject:  "Data Structures",
		Branch:   models.BranchCSE,
		Semester: models.SemesterS3,
		ExamYear: 2024,
		FileURL:  "https://files.example.com/ds-2024.pdf",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if paper.ID == 0 {
		t.Error("created paper has no id")
	}
	if paper.Year != models.YearSecond {
		t.Errorf("Year = %q, want derived %q", paper.Year, models.YearSecond)
	}

	_, err = svc.Create(ctx, "admin1", &PaperCreateRequest{
		Title:    "Bad",
		Subject:  "DS",
		Branch:   "EEE",
		Semester: models.SemesterS3,
		ExamYear: 2024,
		FileURL:  "https://files.example.com/x.pdf",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Create() with unknown branch error = %v, want ErrValidationFailed", err)
	}
}

func TestPaperUpdate(t *testing.T) {
	repo := newFakeRepository()
	svc := NewPaperService(repo, nil, testLogger(), validator.New(), nil)
	ctx := context.Background()

	paper, err := svc.Create(ctx, "admin1", &PaperCreateRequest{
		Title:    "Operating Systems Mid Sem",
		Subject:  "Operating Systems",
		Branch:   models.BranchCSE,
		Semester: models.SemesterS5,
		ExamYear: 2023,
		FileURL:  "https://files.example.com/os-2023.pdf",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("partial edit", func(t *testing.T) {
		title := "Operating Systems End Sem"
		updated, err := svc.Update(ctx, paper.ID, &PaperUpdateRequest{Title: &title})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Title != title {
			t.Errorf("Title = %q, want %q", updated.Title, title)
		}
		if updated.Subject != "Operating Systems" || updated.ExamYear != 2023 {
			t.Error("untouched fields changed")
		}
	})

	t.Run("semester change rederives year", func(t *testing.T) {
		semester := models.SemesterS7
		updated, err := svc.Update(ctx, paper.ID, &PaperUpdateRequest{Semester: &semester})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Year != models.YearFourth {
			t.Errorf("Year = %q, want %q", updated.Year, models.YearFourth)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		title := "ghost"
		if _, err := svc.Update(ctx, 999, &PaperUpdateRequest{Title: &title}); !errors.Is(err, ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid semester code", func(t *testing.T) {
		semester := models.Semester("S9")
		if _, err := svc.Update(ctx, paper.ID, &PaperUpdateRequest{Semester: &semester}); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Update() error = %v, want ErrValidationFailed", err)
		}
	})
}
