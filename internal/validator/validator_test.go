package validator

import (
	"testing"

	"github.com/sankalan-edu/campus-service/internal/models"
)

func TestDomainRules(t *testing.T) {
	v := New()

	t.Run("onboarding field rules", func(t *testing.T) {
		tests := []struct {
			name    string
			req     OnboardingRequest
			wantErr bool
		}{
			{
				name: "valid",
				req:  OnboardingRequest{Branch: models.BranchIT, Year: models.YearSecond, Semester: models.SemesterS4},
			},
			{
				name:    "unknown branch",
				req:     OnboardingRequest{Branch: "EEE", Year: models.YearSecond, Semester: models.SemesterS4},
				wantErr: true,
			},
			{
				name:    "unknown year",
				req:     OnboardingRequest{Branch: models.BranchIT, Year: "5TH YEAR", Semester: models.SemesterS4},
				wantErr: true,
			},
			{
				name:    "unknown semester",
				req:     OnboardingRequest{Branch: models.BranchIT, Year: models.YearSecond, Semester: "S9"},
				wantErr: true,
			},
			{
				name:    "missing everything",
				req:     OnboardingRequest{},
				wantErr: true,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				errs := v.GetBusinessValidator().ValidateOnboarding(&tt.req)
				if errs.HasErrors() != tt.wantErr {
					t.Errorf("HasErrors() = %v, want %v (%s)", errs.HasErrors(), tt.wantErr, errs.Error())
				}
			})
		}
	})

	t.Run("year semester pairing", func(t *testing.T) {
		req := OnboardingRequest{Branch: models.BranchCSE, Year: models.YearThird, Semester: models.SemesterS1}
		errs := v.GetBusinessValidator().ValidateOnboarding(&req)
		if !errs.HasErrors() {
			t.Error("S1 accepted for 3RD YEAR")
		}

		req.Semester = models.SemesterS5
		if errs := v.GetBusinessValidator().ValidateOnboarding(&req); errs.HasErrors() {
			t.Errorf("S5 rejected for 3RD YEAR: %s", errs.Error())
		}
	})
}

func TestValidateProfileUpdate(t *testing.T) {
	v := New()
	current := &models.UserProfile{
		ID:       "u1",
		Branch:   models.BranchCSE,
		Year:     models.YearSecond,
		Semester: models.SemesterS3,
	}

	semester := models.SemesterS7
	year := models.YearFourth

	tests := []struct {
		name    string
		req     ProfileUpdateRequest
		wantErr bool
	}{
		{name: "empty update", req: ProfileUpdateRequest{}},
		{name: "year only", req: ProfileUpdateRequest{Year: &year}},
		{name: "matching pair", req: ProfileUpdateRequest{Year: &year, Semester: &semester}},
		{name: "semester against current year", req: ProfileUpdateRequest{Semester: &semester}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.GetBusinessValidator().ValidateProfileUpdate(&tt.req, current)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v (%s)", errs.HasErrors(), tt.wantErr, errs.Error())
			}
		})
	}
}

func TestValidateRoomCreate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     RoomCreateRequest
		wantErr bool
	}{
		{
			name: "plain discussion room",
			req:  RoomCreateRequest{Title: "DSA", Capacity: 5, Activity: models.ActivityDiscussion},
		},
		{
			name:    "timed pomodoro without phases",
			req:     RoomCreateRequest{Title: "Sprint", Capacity: 5, Activity: models.ActivityPomodoro, TimerMode: true},
			wantErr: true,
		},
		{
			name: "timed pomodoro with phases",
			req: RoomCreateRequest{
				Title: "Sprint", Capacity: 5, Activity: models.ActivityPomodoro, TimerMode: true,
				Pomodoro: &models.PomodoroPhases{FocusMinutes: 25, BreakMinutes: 5},
			},
		},
		{
			name: "non-positive phases",
			req: RoomCreateRequest{
				Title: "Sprint", Capacity: 5, Activity: models.ActivityPomodoro, TimerMode: true,
				Pomodoro: &models.PomodoroPhases{FocusMinutes: 0, BreakMinutes: 5},
			},
			wantErr: true,
		},
		{
			name: "untimed pomodoro needs no phases",
			req:  RoomCreateRequest{Title: "Casual", Capacity: 5, Activity: models.ActivityPomodoro},
		},
		{
			name:    "capacity too small",
			req:     RoomCreateRequest{Title: "Pair", Capacity: 1, Activity: models.ActivityDiscussion},
			wantErr: true,
		},
		{
			name:    "capacity too large",
			req:     RoomCreateRequest{Title: "Hall", Capacity: 200, Activity: models.ActivityDiscussion},
			wantErr: true,
		},
		{
			name:    "unknown activity",
			req:     RoomCreateRequest{Title: "???", Capacity: 5, Activity: "karaoke"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.GetBusinessValidator().ValidateRoomCreate(&tt.req)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v (%s)", errs.HasErrors(), tt.wantErr, errs.Error())
			}
		})
	}
}

func TestValidateNavigateRequest(t *testing.T) {
	v := New()

	if errs := v.Validate(&NavigateRequest{To: models.ViewDashboard}); errs.HasErrors() {
		t.Errorf("valid view rejected: %s", errs.Error())
	}
	if errs := v.Validate(&NavigateRequest{To: "nowhere"}); !errs.HasErrors() {
		t.Error("unknown view accepted")
	}
}
