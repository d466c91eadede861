package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Paper is a previous-year question paper record.
type Paper struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	Title    string       `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Subject  string       `json:"subject" gorm:"not null;size:100;index" validate:"required,max=100"`
	Branch   Branch       `json:"branch" gorm:"size:10;index"`
	Year     AcademicYear `json:"year" gorm:"size:20;index"`
	Semester Semester     `json:"semester" gorm:"size:4;index"`
	ExamYear int          `json:"exam_year" gorm:"index" validate:"omitempty,min=2000,max=2100"`
	FileURL  string       `json:"file_url" gorm:"not null;size:500" validate:"required,max=500"`

	// Usage counters, incremented via dedicated operations.
	ViewCount     int64 `json:"view_count" gorm:"not null;default:0"`
	DownloadCount int64 `json:"download_count" gorm:"not null;default:0"`

	CreatedBy string         `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Paper) TableName() string {
	return "papers"
}

type MaterialType string

const (
	MaterialNotes    MaterialType = "notes"
	MaterialSyllabus MaterialType = "syllabus"
	MaterialBook     MaterialType = "book"
	MaterialLab      MaterialType = "lab"
)

// Material is a study material record: same catalog shape as Paper plus a
// material type.
type Material struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	Title    string       `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Type     MaterialType `json:"type" gorm:"not null;size:20;index" validate:"required,oneof=notes syllabus book lab"`
	Subject  string       `json:"subject" gorm:"not null;size:100;index" validate:"required,max=100"`
	Branch   Branch       `json:"branch" gorm:"size:10;index"`
	Year     AcademicYear `json:"year" gorm:"size:20;index"`
	Semester Semester     `json:"semester" gorm:"size:4;index"`
	FileURL  string       `json:"file_url" gorm:"not null;size:500" validate:"required,max=500"`

	ViewCount     int64 `json:"view_count" gorm:"not null;default:0"`
	DownloadCount int64 `json:"download_count" gorm:"not null;default:0"`

	CreatedBy string         `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Material) TableName() string {
	return "materials"
}

// ClubEvent is a club/campus event record.
type ClubEvent struct {
	ID          string         `json:"id" gorm:"primaryKey;size:36"`
	ClubName    string         `json:"club_name" gorm:"not null;size:100" validate:"required,max=100"`
	Title       string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string         `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Venue       string         `json:"venue" gorm:"size:200" validate:"omitempty,max=200"`
	Tags        datatypes.JSON `json:"tags" gorm:"type:jsonb"` // []string
	StartsAt    time.Time      `json:"starts_at" gorm:"index"`

	CreatedBy string    `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ClubEvent) TableName() string {
	return "club_events"
}
