package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
)

// ClubEventPostgreSQL stores club events. The listing is small and changes
// through the admin console only, so no caching layer is involved.
type ClubEventPostgreSQL struct {
	db *gorm.DB
}

func NewClubEventPostgreSQL(db *gorm.DB) repositories.ClubEventRepository {
	return &ClubEventPostgreSQL{db: db}
}

func (c *ClubEventPostgreSQL) GetByID(ctx context.Context, id string) (*models.ClubEvent, error) {
	var event models.ClubEvent
	if err := c.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *ClubEventPostgreSQL) Create(ctx context.Context, event *models.ClubEvent) error {
	if err := c.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create club event: %w", err)
	}
	return nil
}

func (c *ClubEventPostgreSQL) Delete(ctx context.Context, id string) error {
	result := c.db.WithContext(ctx).Delete(&models.ClubEvent{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete club event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (c *ClubEventPostgreSQL) List(ctx context.Context, filters repositories.EventFilters) ([]*models.ClubEvent, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.ClubEvent{})

	if filters.ClubName != nil && *filters.ClubName != "" {
		query = query.Where("club_name = ?", *filters.ClubName)
	}
	if filters.After != nil {
		query = query.Where("starts_at >= ?", *filters.After)
	}
	if filters.Before != nil {
		query = query.Where("starts_at <= ?", *filters.Before)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count club events: %w", err)
	}

	var events []*models.ClubEvent
	query = applyPaginationAndSort(query, "starts_at", "asc", filters.Limit, filters.Offset)
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list club events: %w", err)
	}

	return events, total, nil
}

func (c *ClubEventPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.ClubEvent{}).Count(&count).Error
	return count, err
}
