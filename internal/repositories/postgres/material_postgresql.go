package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/cache"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
)

type MaterialPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewMaterialPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.MaterialRepository {
	return &MaterialPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (m *MaterialPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var material models.Material

	err := m.cacheManager.Material.CacheOrExecute(ctx, cacheKey, &material, cache.MaterialCacheConfig.TTL, func() (interface{}, error) {
		var dbMaterial models.Material
		if err := m.db.WithContext(ctx).First(&dbMaterial, id).Error; err != nil {
			return nil, err
		}
		return &dbMaterial, nil
	})

	if err != nil {
		return nil, err
	}

	return &material, nil
}

func (m *MaterialPostgreSQL) Create(ctx context.Context, material *models.Material) error {
	if err := m.db.WithContext(ctx).Create(material).Error; err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	cache.InvalidateMaterialCache(ctx, m.cacheManager, material.ID)
	return nil
}

func (m *MaterialPostgreSQL) Update(ctx context.Context, material *models.Material) error {
	result := m.db.WithContext(ctx).Model(&models.Material{}).
		Where("id = ?", material.ID).
		Updates(material)
	if result.Error != nil {
		return fmt.Errorf("failed to update material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateMaterialCache(ctx, m.cacheManager, material.ID)
	return nil
}

func (m *MaterialPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := m.db.WithContext(ctx).Delete(&models.Material{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateMaterialCache(ctx, m.cacheManager, id)
	return nil
}

func (m *MaterialPostgreSQL) List(ctx context.Context, filters repositories.MaterialFilters) ([]*models.Material, int64, error) {
	query := applyMaterialFilters(m.db.WithContext(ctx).Model(&models.Material{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count materials: %w", err)
	}

	var materials []*models.Material
	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Find(&materials).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list materials: %w", err)
	}

	return materials, total, nil
}

// Subjects returns the distinct subjects available for a branch/semester pair.
func (m *MaterialPostgreSQL) Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error) {
	cacheKey := fmt.Sprintf("subjects:%s:%s", branch, semester)
	var subjects []string

	err := m.cacheManager.Material.CacheOrExecute(ctx, cacheKey, &subjects, cache.MaterialCacheConfig.TTL, func() (interface{}, error) {
		var out []string
		query := m.db.WithContext(ctx).Model(&models.Material{}).Distinct("subject").Order("subject ASC")
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

func (m *MaterialPostgreSQL) IncrementViewCount(ctx context.Context, id uint) error {
	return m.db.WithContext(ctx).Model(&models.Material{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (m *MaterialPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := m.db.WithContext(ctx).Model(&models.Material{}).Count(&count).Error
	return count, err
}
