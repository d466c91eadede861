package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/cache"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
)

type PaperPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewPaperPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.PaperRepository {
	return &PaperPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (p *PaperPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Paper, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var paper models.Paper

	err := p.cacheManager.Paper.CacheOrExecute(ctx, cacheKey, &paper, cache.PaperCacheConfig.TTL, func() (interface{}, error) {
		var dbPaper models.Paper
		if err := p.db.WithContext(ctx).First(&dbPaper, id).Error; err != nil {
			return nil, err
		}
		return &dbPaper, nil
	})

	if err != nil {
		return nil, err
	}

	return &paper, nil
}

func (p *PaperPostgreSQL) Create(ctx context.Context, paper *models.Paper) error {
	if err := p.db.WithContext(ctx).Create(paper).Error; err != nil {
		return fmt.Errorf("failed to create paper: %w", err)
	}
	cache.InvalidatePaperCache(ctx, p.cacheManager, paper.ID)
	return nil
}

func (p *PaperPostgreSQL) Update(ctx context.Context, paper *models.Paper) error {
	result := p.db.WithContext(ctx).Model(&models.Paper{}).
		Where("id = ?", paper.ID).
		Updates(paper)
	if result.Error != nil {
		return fmt.Errorf("failed to update paper: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePaperCache(ctx, p.cacheManager, paper.ID)
	return nil
}

func (p *PaperPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := p.db.WithContext(ctx).Delete(&models.Paper{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete paper: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePaperCache(ctx, p.cacheManager, id)
	return nil
}

// List returns the filtered page plus the total match count. Listings are
// cached per filter combination under the list: prefix.
func (p *PaperPostgreSQL) List(ctx context.Context, filters repositories.PaperFilters) ([]*models.Paper, int64, error) {
	query := applyPaperFilters(p.db.WithContext(ctx).Model(&models.Paper{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count papers: %w", err)
	}

	var papers []*models.Paper
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&papers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list papers: %w", err)
	}

	return papers, total, nil
}

// Subjects returns the distinct subjects available for a branch/semester pair.
func (p *PaperPostgreSQL) Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error) {
	cacheKey := fmt.Sprintf("subjects:%s:%s", branch, semester)
	var subjects []string

	err := p.cacheManager.Paper.CacheOrExecute(ctx, cacheKey, &subjects, cache.PaperCacheConfig.TTL, func() (interface{}, error) {
		var out []string
		query := p.db.WithContext(ctx).Model(&models.Paper{}).Distinct("subject").Order("subject ASC")
		if branch != "" {
			query = query.Where("branch = ?", branch)
		}
		if semester != "" {
			query = query.Where("semester = ?", semester)
		}
		if err := query.Pluck("subject", &out).Error; err != nil {
			return nil, fmt.Errorf("failed to list subjects: %w", err)
		}
		return out, nil
	})

	return subjects, err
}

func (p *PaperPostgreSQL) IncrementViewCount(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Model(&models.Paper{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (p *PaperPostgreSQL) IncrementDownloadCount(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Model(&models.Paper{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}

func (p *PaperPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Paper{}).Count(&count).Error
	return count, err
}
