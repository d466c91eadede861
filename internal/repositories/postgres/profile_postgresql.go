package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sankalan-edu/campus-service/internal/cache"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
)

type ProfilePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewProfilePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ProfileRepository {
	return &ProfilePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// GetByID retrieves a profile by the identity provider subject, with caching.
func (p *ProfilePostgreSQL) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var profile models.UserProfile

	err := p.cacheManager.Profile.CacheOrExecute(ctx, cacheKey, &profile, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbProfile models.UserProfile
		if err := p.db.WithContext(ctx).First(&dbProfile, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, gorm.ErrRecordNotFound
			}
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
		return &dbProfile, nil
	})

	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// Upsert creates the profile or updates it when the subject already exists.
func (p *ProfilePostgreSQL) Upsert(ctx context.Context, profile *models.UserProfile) error {
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "branch", "year", "semester", "role", "sound_muted", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	cache.InvalidateProfileCache(ctx, p.cacheManager, profile.ID)
	return nil
}

func (p *ProfilePostgreSQL) Update(ctx context.Context, profile *models.UserProfile) error {
	result := p.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"name":        profile.Name,
			"branch":      profile.Branch,
			"year":        profile.Year,
			"semester":    profile.Semester,
			"role":        profile.Role,
			"sound_muted": profile.SoundMuted,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateProfileCache(ctx, p.cacheManager, profile.ID)
	return nil
}

func (p *ProfilePostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}
	return count > 0, nil
}

func (p *ProfilePostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.UserProfile, int64, error) {
	var total int64
	if err := p.db.WithContext(ctx).Model(&models.UserProfile{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	var profiles []*models.UserProfile
	query := applyPaginationAndSort(p.db.WithContext(ctx), "created_at", "desc", limit, offset)
	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, total, nil
}

func (p *ProfilePostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.UserProfile{}).Count(&count).Error
	return count, err
}

// CountByBranch groups profile counts by branch for the admin console.
func (p *ProfilePostgreSQL) CountByBranch(ctx context.Context) (map[models.Branch]int64, error) {
	type row struct {
		Branch models.Branch
		Count  int64
	}

	var rows []row
	err := p.db.WithContext(ctx).Model(&models.UserProfile{}).
		Select("branch, count(*) as count").
		Where("branch <> ''").
		Group("branch").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles by branch: %w", err)
	}

	result := make(map[models.Branch]int64, len(rows))
	for _, r := range rows {
		result[r.Branch] = r.Count
	}
	return result, nil
}
