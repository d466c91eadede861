package repositories

import (
	"context"
	"time"

	"github.com/sankalan-edu/campus-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type PaperFilters struct {
	Branch    *models.Branch   `json:"branch"`
	Semester  *models.Semester `json:"semester"`
	Subject   *string          `json:"subject"`
	ExamYear  *int             `json:"exam_year"`
	Query     *string          `json:"query"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	SortBy    string           `json:"sort_by"`    // "created_at", "title", "exam_year", "view_count"
	SortOrder string           `json:"sort_order"` // "asc", "desc"
}

type MaterialFilters struct {
	Branch    *models.Branch       `json:"branch"`
	Semester  *models.Semester     `json:"semester"`
	Subject   *string              `json:"subject"`
	Type      *models.MaterialType `json:"type"`
	Query     *string              `json:"query"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	SortBy    string               `json:"sort_by"`
	SortOrder string               `json:"sort_order"`
}

type EventFilters struct {
	ClubName *string    `json:"club_name"`
	After    *time.Time `json:"after"`
	Before   *time.Time `json:"before"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type CatalogStats struct {
	TotalProfiles    int64                   `json:"total_profiles"`
	TotalPapers      int64                   `json:"total_papers"`
	TotalMaterials   int64                   `json:"total_materials"`
	TotalEvents      int64                   `json:"total_events"`
	ProfilesByBranch map[models.Branch]int64 `json:"profiles_by_branch"`
}

// ===== REPOSITORY INTERFACES =====

// ProfileRepository is the persistence surface for user profiles. Profiles
// are keyed by the identity provider's subject string.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) error
	Update(ctx context.Context, profile *models.UserProfile) error
	ExistsByID(ctx context.Context, id string) (bool, error)

	// Listing and counts (admin console)
	List(ctx context.Context, limit, offset int) ([]*models.UserProfile, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByBranch(ctx context.Context) (map[models.Branch]int64, error)
}

type PaperRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Paper, error)
	Create(ctx context.Context, paper *models.Paper) error
	Update(ctx context.Context, paper *models.Paper) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters PaperFilters) ([]*models.Paper, int64, error)
	Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error)

	IncrementViewCount(ctx context.Context, id uint) error
	IncrementDownloadCount(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type MaterialRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Material, error)
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters MaterialFilters) ([]*models.Material, int64, error)
	Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error)

	IncrementViewCount(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type ClubEventRepository interface {
	GetByID(ctx context.Context, id string) (*models.ClubEvent, error)
	Create(ctx context.Context, event *models.ClubEvent) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters EventFilters) ([]*models.ClubEvent, int64, error)
	Count(ctx context.Context) (int64, error)
}
