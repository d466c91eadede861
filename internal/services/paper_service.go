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

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type paperService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewPaperService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) PaperService {
	return &paperService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *paperService) Get(ctx context.Context, id uint) (*models.Paper, error) {
	paper, err := s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get paper: %w", err)
	}
	return paper, nil
}

func (s *paperService) List(ctx context.Context, filters repositories.PaperFilters) (*PaperListResponse, error) {
	filters.Limit, filters.Offset = normalizePage(filters.Limit, filters.Offset)

	papers, total, err := s.repo.Paper().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}

	return &PaperListResponse{
		Papers: papers,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

func (s *paperService) Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error) {
	subjects, err := s.repo.Paper().Subjects(ctx, branch, semester)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *paperService) Create(ctx context.Context, userID string, req *PaperCreateRequest) (*models.Paper, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	paper := &models.Paper{
		Title:     req.Title,
		Subject:   req.Subject,
		Branch:    req.Branch,
		Year:      models.YearForSemester(req.Semester),
		Semester:  req.Semester,
		ExamYear:  req.ExamYear,
		FileURL:   req.FileURL,
		CreatedBy: userID,
	}

	if err := s.repo.Paper().Create(ctx, paper); err != nil {
		return nil, fmt.Errorf("failed to create paper: %w", err)
	}

	s.logger.Info("paper created", "paper_id", paper.ID, "created_by", userID)
	return paper, nil
}

func (s *paperService) Update(ctx context.Context, id uint, req *PaperUpdateRequest) (*models.Paper, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	paper, err := s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load paper: %w", err)
	}

	if req.Title != nil {
		paper.Title = *req.Title
	}
	if req.Subject != nil {
		paper.Subject = *req.Subject
	}
	if req.Branch != nil {
		paper.Branch = *req.Branch
	}
	if req.Semester != nil {
		paper.Semester = *req.Semester
		paper.Year = models.YearForSemester(*req.Semester)
	}
	if req.ExamYear != nil {
		paper.ExamYear = *req.ExamYear
	}
	if req.FileURL != nil {
		paper.FileURL = *req.FileURL
	}

	if err := s.repo.Paper().Update(ctx, paper); err != nil {
		return nil, fmt.Errorf("failed to update paper: %w", err)
	}

	s.logger.Info("paper updated", "paper_id", paper.ID)
	return paper, nil
}

func (s *paperService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Paper().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete paper: %w", err)
	}
	return nil
}

// RecordView bumps the view counter. Counter failures are logged, not
// surfaced: losing a count never breaks the read path.
func (s *paperService) RecordView(ctx context.Context, id uint, userID string) error {
	if err := s.repo.Paper().IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("failed to record paper view", "error", err, "paper_id", id)
		return nil
	}
	s.publish(ctx, events.TypePaperViewed, userID, map[string]uint{"paper_id": id})
	return nil
}

func (s *paperService) RecordDownload(ctx context.Context, id uint, userID string) error {
	if err := s.repo.Paper().IncrementDownloadCount(ctx, id); err != nil {
		s.logger.Warn("failed to record paper download", "error", err, "paper_id", id)
		return nil
	}
	s.publish(ctx, events.TypePaperDownloaded, userID, map[string]uint{"paper_id": id})
	return nil
}

func (s *paperService) publish(ctx context.Context, eventType, userID string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, userID, data)); err != nil {
		s.logger.Warn("failed to publish paper event", "error", err, "type", eventType)
	}
}
