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

type materialService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewMaterialService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) MaterialService {
	return &materialService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *materialService) Get(ctx context.Context, id uint) (*models.Material, error) {
	material, err := s.repo.Material().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return material, nil
}

func (s *materialService) List(ctx context.Context, filters repositories.MaterialFilters) (*MaterialListResponse, error) {
	filters.Limit, filters.Offset = normalizePage(filters.Limit, filters.Offset)

	materials, total, err := s.repo.Material().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	return &MaterialListResponse{
		Materials: materials,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}

func (s *materialService) Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error) {
	subjects, err := s.repo.Material().Subjects(ctx, branch, semester)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *materialService) Create(ctx context.Context, userID string, req *MaterialCreateRequest) (*models.Material, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	material := &models.Material{
		Title:     req.Title,
		Subject:   req.Subject,
		Branch:    req.Branch,
		Year:      models.YearForSemester(req.Semester),
		Semester:  req.Semester,
		Type:      req.Type,
		FileURL:   req.FileURL,
		CreatedBy: userID,
	}

	if err := s.repo.Material().Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.Info("material created", "material_id", material.ID, "created_by", userID)
	return material, nil
}

func (s *materialService) Update(ctx context.Context, id uint, req *MaterialUpdateRequest) (*models.Material, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	material, err := s.repo.Material().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load material: %w", err)
	}

	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Subject != nil {
		material.Subject = *req.Subject
	}
	if req.Branch != nil {
		material.Branch = *req.Branch
	}
	if req.Semester != nil {
		material.Semester = *req.Semester
		material.Year = models.YearForSemester(*req.Semester)
	}
	if req.Type != nil {
		material.Type = *req.Type
	}
	if req.FileURL != nil {
		material.FileURL = *req.FileURL
	}

	if err := s.repo.Material().Update(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	s.logger.Info("material updated", "material_id", material.ID)
	return material, nil
}

func (s *materialService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Material().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

func (s *materialService) RecordView(ctx context.Context, id uint, userID string) error {
	if err := s.repo.Material().IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("failed to record material view", "error", err, "material_id", id)
		return nil
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewEvent(events.TypeMaterialViewed, userID, map[string]uint{"material_id": id})); err != nil {
			s.logger.Warn("failed to publish material event", "error", err)
		}
	}
	return nil
}
