package validator

import (
	"time"

	"github.com/sankalan-edu/campus-service/internal/models"
)

// OnboardingRequest carries the academic identity collected during
// onboarding. All three fields are required to complete it.
type OnboardingRequest struct {
	Branch   models.Branch       `json:"branch" validate:"required,branch_code"`
	Year     models.AcademicYear `json:"year" validate:"required,academic_year"`
	Semester models.Semester     `json:"semester" validate:"required,semester_code"`
}

// ProfileUpdateRequest carries partial profile edits. Nil fields are left
// untouched.
type ProfileUpdateRequest struct {
	Name     *string              `json:"name" validate:"omitempty,min=1,max=100"`
	Branch   *models.Branch       `json:"branch" validate:"omitempty,branch_code"`
	Year     *models.AcademicYear `json:"year" validate:"omitempty,academic_year"`
	Semester *models.Semester     `json:"semester" validate:"omitempty,semester_code"`
}

type SoundSettingRequest struct {
	Muted bool `json:"muted"`
}

// NavigateRequest asks the router to move the session to a target view.
type NavigateRequest struct {
	To models.View `json:"to" validate:"required,view_name"`
}

type AuthStartRequest struct {
	Mode models.AuthMode `json:"mode" validate:"required,oneof=signin signup admin-login"`
}

type QuizGenerateRequest struct {
	Topic         string                 `json:"topic" validate:"required,min=2,max=200"`
	Difficulty    models.DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	QuestionCount int                    `json:"question_count" validate:"omitempty,question_count"`
	Context       string                 `json:"context" validate:"omitempty"`
}

type RoomCreateRequest struct {
	Title     string                 `json:"title" validate:"required,min=2,max=100"`
	Subject   string                 `json:"subject" validate:"omitempty,max=100"`
	Topic     string                 `json:"topic" validate:"omitempty,max=200"`
	Capacity  int                    `json:"capacity" validate:"required,room_capacity"`
	Activity  models.RoomActivity    `json:"activity" validate:"required,room_activity"`
	TimerMode bool                   `json:"timer_mode"`
	Pomodoro  *models.PomodoroPhases `json:"pomodoro"`
}

type PaperCreateRequest struct {
	Title    string          `json:"title" validate:"required,min=2,max=200"`
	Subject  string          `json:"subject" validate:"required,min=2,max=100"`
	Branch   models.Branch   `json:"branch" validate:"required,branch_code"`
	Semester models.Semester `json:"semester" validate:"required,semester_code"`
	ExamYear int             `json:"exam_year" validate:"required,min=2000,max=2100"`
	FileURL  string          `json:"file_url" validate:"required,url"`
}

// PaperUpdateRequest carries partial catalog edits. Nil fields are left
// untouched.
type PaperUpdateRequest struct {
	Title    *string          `json:"title" validate:"omitempty,min=2,max=200"`
	Subject  *string          `json:"subject" validate:"omitempty,min=2,max=100"`
	Branch   *models.Branch   `json:"branch" validate:"omitempty,branch_code"`
	Semester *models.Semester `json:"semester" validate:"omitempty,semester_code"`
	ExamYear *int             `json:"exam_year" validate:"omitempty,min=2000,max=2100"`
	FileURL  *string          `json:"file_url" validate:"omitempty,url"`
}

type MaterialCreateRequest struct {
	Title    string              `json:"title" validate:"required,min=2,max=200"`
	Subject  string              `json:"subject" validate:"required,min=2,max=100"`
	Branch   models.Branch       `json:"branch" validate:"required,branch_code"`
	Semester models.Semester     `json:"semester" validate:"required,semester_code"`
	Type     models.MaterialType `json:"type" validate:"required,material_type"`
	FileURL  string              `json:"file_url" validate:"required,url"`
}

type MaterialUpdateRequest struct {
	Title    *string              `json:"title" validate:"omitempty,min=2,max=200"`
	Subject  *string              `json:"subject" validate:"omitempty,min=2,max=100"`
	Branch   *models.Branch       `json:"branch" validate:"omitempty,branch_code"`
	Semester *models.Semester     `json:"semester" validate:"omitempty,semester_code"`
	Type     *models.MaterialType `json:"type" validate:"omitempty,material_type"`
	FileURL  *string              `json:"file_url" validate:"omitempty,url"`
}

type EventCreateRequest struct {
	ClubName    string    `json:"club_name" validate:"required,min=2,max=100"`
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Venue       string    `json:"venue" validate:"omitempty,max=200"`
	Tags        []string  `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
