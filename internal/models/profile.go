package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

type Branch string

const (
	BranchCSE Branch = "CSE"
	BranchECE Branch = "ECE"
	BranchME  Branch = "ME"
	BranchCE  Branch = "CE"
	BranchIT  Branch = "IT"
)

// Branches lists every selectable branch code.
var Branches = []Branch{BranchCSE, BranchECE, BranchME, BranchCE, BranchIT}

type AcademicYear string

const (
	YearFirst  AcademicYear = "1ST YEAR"
	YearSecond AcademicYear = "2ND YEAR"
	YearThird  AcademicYear = "3RD YEAR"
	YearFourth AcademicYear = "4TH YEAR"
)

var AcademicYears = []AcademicYear{YearFirst, YearSecond, YearThird, YearFourth}

type Semester string

const (
	SemesterS1 Semester = "S1"
	SemesterS2 Semester = "S2"
	SemesterS3 Semester = "S3"
	SemesterS4 Semester = "S4"
	SemesterS5 Semester = "S5"
	SemesterS6 Semester = "S6"
	SemesterS7 Semester = "S7"
	SemesterS8 Semester = "S8"
)

// semestersByYear maps each academic year to its exactly-two semester codes.
var semestersByYear = map[AcademicYear][]Semester{
	YearFirst:  {SemesterS1, SemesterS2},
	YearSecond: {SemesterS3, SemesterS4},
	YearThird:  {SemesterS5, SemesterS6},
	YearFourth: {SemesterS7, SemesterS8},
}

// SemestersForYear returns the semester codes valid for the given year.
// An unknown or empty year has no valid semesters.
func SemestersForYear(year AcademicYear) []Semester {
	return semestersByYear[year]
}

// ValidSemester reports whether semester belongs to the semester set of year.
func ValidSemester(year AcademicYear, semester Semester) bool {
	for _, s := range semestersByYear[year] {
		if s == semester {
			return true
		}
	}
	return false
}

// YearForSemester returns the academic year a semester code belongs to, or
// empty for an unknown code.
func YearForSemester(semester Semester) AcademicYear {
	for year, semesters := range semestersByYear {
		for _, s := range semesters {
			if s == semester {
				return year
			}
		}
	}
	return ""
}

// GuestName is the display name used before the identity provider supplies one
// and after sign-out.
const GuestName = "Guest"

// UserProfile is the per-user academic identity. The ID is the identity
// provider's subject; all other fields are owned by this service.
type UserProfile struct {
	ID       string       `json:"id" gorm:"primaryKey;size:255"`
	Name     string       `json:"name" gorm:"not null;size:100;default:Guest"`
	Branch   Branch       `json:"branch" gorm:"size:10;index"`
	Year     AcademicYear `json:"year" gorm:"size:20"`
	Semester Semester     `json:"semester" gorm:"size:4"`
	Role     UserRole     `json:"role" gorm:"size:20;default:student"`

	// Settings
	SoundMuted bool `json:"sound_muted" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// IdentityUser is the read-only view of a user held by the identity
// provider. This service never writes identity data.
type IdentityUser struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	Avatar      string   `json:"avatar"`
	Role        UserRole `json:"role"`
}

// GuestProfile returns the placeholder profile a session starts with when no
// persisted profile exists (or the persisted one is unreadable).
func GuestProfile(id string) *UserProfile {
	return &UserProfile{
		ID:   id,
		Name: GuestName,
		Role: RoleStudent,
	}
}

// IsComplete reports whether branch, year and semester are all populated.
// Completeness decides whether a signed-in user lands on the dashboard or is
// sent through onboarding.
func (p *UserProfile) IsComplete() bool {
	return p.Branch != "" && p.Year != "" && p.Semester != ""
}

// NormalizeSemester enforces the year→semester invariant in place: if the
// current semester is not valid for the current year, it is reset to the first
// valid code for that year (or cleared when the year itself is empty).
func (p *UserProfile) NormalizeSemester() {
	if p.Year == "" {
		p.Semester = ""
		return
	}
	if ValidSemester(p.Year, p.Semester) {
		return
	}
	p.Semester = semestersByYear[p.Year][0]
}
