package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/events"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type profileService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewProfileService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ProfileService {
	return &profileService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func toProfileResponse(p *models.UserProfile) *ProfileResponse {
	return &ProfileResponse{
		ID:         p.ID,
		Name:       p.Name,
		Branch:     p.Branch,
		Year:       p.Year,
		Semester:   p.Semester,
		Role:       p.Role,
		SoundMuted: p.SoundMuted,
		Complete:   p.IsComplete(),
	}
}

// loadOrProvision returns the stored profile, creating a guest profile on
// first sight of a subject.
func (s *profileService) loadOrProvision(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.repo.Profile().GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile = models.GuestProfile(userID)
	if err := s.repo.Profile().Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to provision profile: %w", err)
	}

	s.logger.Info("provisioned guest profile", "user_id", userID)
	return profile, nil
}

func (s *profileService) Get(ctx context.Context, userID string) (*ProfileResponse, error) {
	profile, err := s.loadOrProvision(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

// Update applies a partial edit. A year change with no accompanying semester
// resets the semester to the first code of the new year's pair.
func (s *profileService) Update(ctx context.Context, userID string, req *ProfileUpdateRequest) (*ProfileResponse, error) {
	profile, err := s.loadOrProvision(ctx, userID)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.GetBusinessValidator().ValidateProfileUpdate(req, profile); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Branch != nil {
		profile.Branch = *req.Branch
	}
	if req.Year != nil {
		profile.Year = *req.Year
	}
	if req.Semester != nil {
		profile.Semester = *req.Semester
	}
	profile.NormalizeSemester()

	if err := s.repo.Profile().Update(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.publishProfileEvent(ctx, userID)
	return toProfileResponse(profile), nil
}

func (s *profileService) SetSoundMuted(ctx context.Context, userID string, muted bool) error {
	profile, err := s.loadOrProvision(ctx, userID)
	if err != nil {
		return err
	}

	if profile.SoundMuted == muted {
		return nil
	}

	profile.SoundMuted = muted
	if err := s.repo.Profile().Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to update sound setting: %w", err)
	}
	return nil
}

// SyncName adopts the identity provider's display name. Empty names and
// no-op syncs are ignored.
func (s *profileService) SyncName(ctx context.Context, userID, name string) error {
	if name == "" {
		return nil
	}

	profile, err := s.loadOrProvision(ctx, userID)
	if err != nil {
		return err
	}

	if profile.Name == name {
		return nil
	}

	profile.Name = name
	if err := s.repo.Profile().Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to sync profile name: %w", err)
	}

	s.logger.Debug("synced profile name", "user_id", userID)
	return nil
}

func (s *profileService) publishProfileEvent(ctx context.Context, userID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeProfileUpdated, userID, nil)); err != nil {
		s.logger.Warn("failed to publish profile event", "error", err, "user_id", userID)
	}
}
