package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

func TestEventCreate(t *testing.T) {
	repo := newFakeRepository()
	svc := NewEventService(repo, testLogger(), validator.New())
	ctx := context.Background()

	starts := time.Now().Add(48 * time.Hour)

	t.Run("with tags", func(t *testing.T) {
		created, err := svc.Create(ctx, "admin1", &EventCreateRequest{
			ClubName: "Coding Club",
			Title:    "Intro to Git",
			Venue:    "Lab 2",
			Tags:     []string{"workshop", "beginner"},
			StartsAt: starts,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.ID == "" {
			t.Error("created event has no id")
		}
		if created.CreatedBy != "admin1" {
			t.Errorf("CreatedBy = %q, want admin1", created.CreatedBy)
		}

		var tags []string
		if err := json.Unmarshal(created.Tags, &tags); err != nil {
			t.Fatalf("tags are not valid JSON: %v", err)
		}
		if len(tags) != 2 || tags[0] != "workshop" {
			t.Errorf("tags = %v, want [workshop beginner]", tags)
		}
	})

	t.Run("without tags", func(t *testing.T) {
		created, err := svc.Create(ctx, "admin1", &EventCreateRequest{
			ClubName: "Music Club",
			Title:    "Open Mic",
			StartsAt: starts,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if len(created.Tags) != 0 {
			t.Errorf("Tags = %s, want empty", created.Tags)
		}
	})

	t.Run("missing club name", func(t *testing.T) {
		_, err := svc.Create(ctx, "admin1", &EventCreateRequest{
			Title:    "Untitled",
			StartsAt: starts,
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Create() error = %v, want ErrValidationFailed", err)
		}
	})
}

func TestEventList(t *testing.T) {
	repo := newFakeRepository()
	svc := NewEventService(repo, testLogger(), validator.New())
	ctx := context.Background()

	for _, title := range []string{"Hackathon", "Quiz Night"} {
		if _, err := svc.Create(ctx, "admin1", &EventCreateRequest{
			ClubName: "Tech Club",
			Title:    title,
			StartsAt: time.Now().Add(24 * time.Hour),
		}); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}

	resp, err := svc.List(ctx, repositories.EventFilters{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 2 || len(resp.Events) != 2 {
		t.Errorf("List() total = %d, events = %d, want 2 and 2", resp.Total, len(resp.Events))
	}
}
