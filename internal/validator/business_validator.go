package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/sankalan-edu/campus-service/internal/models"
)

// registerDomainRules registers the custom field rules shared by every DTO.
func registerDomainRules(validate *validator.Validate) {
	validate.RegisterValidation("branch_code", func(fl validator.FieldLevel) bool {
		code := models.Branch(fl.Field().String())
		for _, b := range models.Branches {
			if code == b {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		year := models.AcademicYear(fl.Field().String())
		for _, y := range models.AcademicYears {
			if year == y {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("semester_code", func(fl validator.FieldLevel) bool {
		s := models.Semester(fl.Field().String())
		switch s {
		case models.SemesterS1, models.SemesterS2, models.SemesterS3, models.SemesterS4,
			models.SemesterS5, models.SemesterS6, models.SemesterS7, models.SemesterS8:
			return true
		}
		return false
	})

	validate.RegisterValidation("view_name", func(fl validator.FieldLevel) bool {
		return models.IsValidView(models.View(fl.Field().String()))
	})

	validate.RegisterValidation("difficulty_level", func(fl validator.FieldLevel) bool {
		switch models.DifficultyLevel(fl.Field().String()) {
		case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
			return true
		}
		return false
	})

	validate.RegisterValidation("question_count", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= 1 && n <= 10
	})

	validate.RegisterValidation("room_capacity", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= 2 && n <= 50
	})

	validate.RegisterValidation("room_activity", func(fl validator.FieldLevel) bool {
		switch models.RoomActivity(fl.Field().String()) {
		case models.ActivityDiscussion, models.ActivityPomodoro, models.ActivityDoubts, models.ActivityProject:
			return true
		}
		return false
	})

	validate.RegisterValidation("material_type", func(fl validator.FieldLevel) bool {
		switch models.MaterialType(fl.Field().String()) {
		case models.MaterialNotes, models.MaterialSyllabus, models.MaterialBook, models.MaterialLab:
			return true
		}
		return false
	})
}

// BusinessValidator handles cross-field rules the tag rules cannot express.
type BusinessValidator struct {
	validate *validator.Validate
}

// ValidateOnboarding checks the onboarding payload including the
// year/semester pairing.
func (bv *BusinessValidator) ValidateOnboarding(req *OnboardingRequest) ValidationErrors {
	var errs ValidationErrors

	if err := bv.validate.Struct(req); err != nil {
		errs = append(errs, ToValidationErrors(err)...)
	}

	if req.Year != "" && req.Semester != "" && !models.ValidSemester(req.Year, req.Semester) {
		errs = append(errs, ValidationError{
			Field:   "semester",
			Message: "does not belong to the selected year",
			Value:   req.Semester,
			Rule:    "semester_for_year",
		})
	}

	return errs
}

// ValidateProfileUpdate checks a partial profile edit against the resulting
// year/semester pairing.
func (bv *BusinessValidator) ValidateProfileUpdate(req *ProfileUpdateRequest, current *models.UserProfile) ValidationErrors {
	var errs ValidationErrors

	if err := bv.validate.Struct(req); err != nil {
		errs = append(errs, ToValidationErrors(err)...)
	}

	year := current.Year
	if req.Year != nil {
		year = *req.Year
	}

	// Only an explicitly submitted semester is checked here. A semester left
	// untouched while the year changes is normalized by the profile service,
	// not rejected.
	if req.Semester != nil && year != "" && !models.ValidSemester(year, *req.Semester) {
		errs = append(errs, ValidationError{
			Field:   "semester",
			Message: "does not belong to the selected year",
			Value:   *req.Semester,
			Rule:    "semester_for_year",
		})
	}

	return errs
}

// ValidateRoomCreate checks a room request including the pomodoro phase
// requirement.
func (bv *BusinessValidator) ValidateRoomCreate(req *RoomCreateRequest) ValidationErrors {
	var errs ValidationErrors

	if err := bv.validate.Struct(req); err != nil {
		errs = append(errs, ToValidationErrors(err)...)
	}

	if req.Activity == models.ActivityPomodoro && req.TimerMode {
		if req.Pomodoro == nil {
			errs = append(errs, ValidationError{
				Field:   "pomodoro",
				Message: "phases are required for a timed pomodoro room",
				Rule:    "pomodoro_phases",
			})
		} else if req.Pomodoro.FocusMinutes <= 0 || req.Pomodoro.BreakMinutes <= 0 {
			errs = append(errs, ValidationError{
				Field:   "pomodoro",
				Message: "focus and break minutes must be positive",
				Value:   *req.Pomodoro,
				Rule:    "pomodoro_phases",
			})
		}
	}

	return errs
}
