package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

// eventService manages the club event board shown on the dashboard.
type eventService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEventService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) EventService {
	return &eventService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *eventService) List(ctx context.Context, filters repositories.EventFilters) (*EventListResponse, error) {
	filters.Limit, filters.Offset = normalizePage(filters.Limit, filters.Offset)

	clubEvents, total, err := s.repo.ClubEvent().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list club events: %w", err)
	}

	return &EventListResponse{
		Events: clubEvents,
		Total:  total,
	}, nil
}

func (s *eventService) Create(ctx context.Context, userID string, req *EventCreateRequest) (*models.ClubEvent, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	clubEvent := &models.ClubEvent{
		ID:          uuid.New().String(),
		ClubName:    req.ClubName,
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		CreatedBy:   userID,
	}

	if len(req.Tags) > 0 {
		tags, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode event tags: %w", err)
		}
		clubEvent.Tags = datatypes.JSON(tags)
	}

	if err := s.repo.ClubEvent().Create(ctx, clubEvent); err != nil {
		return nil, fmt.Errorf("failed to create club event: %w", err)
	}

	s.logger.Info("club event created", "event_id", clubEvent.ID, "club", clubEvent.ClubName)
	return clubEvent, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.ClubEvent().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete club event: %w", err)
	}
	return nil
}
