package models

import "testing"

func TestValidSemester(t *testing.T) {
	tests := []struct {
		name     string
		year     AcademicYear
		semester Semester
		want     bool
	}{
		{name: "first year S1", year: YearFirst, semester: SemesterS1, want: true},
		{name: "first year S2", year: YearFirst, semester: SemesterS2, want: true},
		{name: "first year S3", year: YearFirst, semester: SemesterS3, want: false},
		{name: "second year S4", year: YearSecond, semester: SemesterS4, want: true},
		{name: "third year S5", year: YearThird, semester: SemesterS5, want: true},
		{name: "third year S7", year: YearThird, semester: SemesterS7, want: false},
		{name: "fourth year S8", year: YearFourth, semester: SemesterS8, want: true},
		{name: "fourth year S1", year: YearFourth, semester: SemesterS1, want: false},
		{name: "empty year", year: "", semester: SemesterS1, want: false},
		{name: "unknown year", year: "5TH YEAR", semester: SemesterS1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidSemester(tt.year, tt.semester); got != tt.want {
				t.Errorf("ValidSemester(%q, %q) = %v, want %v", tt.year, tt.semester, got, tt.want)
			}
		})
	}
}

func TestSemestersForYear(t *testing.T) {
	for _, year := range AcademicYears {
		if got := len(SemestersForYear(year)); got != 2 {
			t.Errorf("SemestersForYear(%q) returned %d codes, want 2", year, got)
		}
	}
	if got := SemestersForYear(""); got != nil {
		t.Errorf("SemestersForYear(empty) = %v, want nil", got)
	}
}

func TestNormalizeSemester(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    Semester
	}{
		{
			name:    "valid pair untouched",
			profile: UserProfile{Year: YearThird, Semester: SemesterS6},
			want:    SemesterS6,
		},
		{
			name:    "stale semester reset to first of year",
			profile: UserProfile{Year: YearSecond, Semester: SemesterS1},
			want:    SemesterS3,
		},
		{
			name:    "empty semester filled in",
			profile: UserProfile{Year: YearFourth},
			want:    SemesterS7,
		},
		{
			name:    "empty year clears semester",
			profile: UserProfile{Semester: SemesterS2},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.profile.NormalizeSemester()
			if tt.profile.Semester != tt.want {
				t.Errorf("semester after normalize = %q, want %q", tt.profile.Semester, tt.want)
			}
		})
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    bool
	}{
		{name: "all set", profile: UserProfile{Branch: BranchCSE, Year: YearFirst, Semester: SemesterS1}, want: true},
		{name: "missing branch", profile: UserProfile{Year: YearFirst, Semester: SemesterS1}},
		{name: "missing year", profile: UserProfile{Branch: BranchCSE, Semester: SemesterS1}},
		{name: "missing semester", profile: UserProfile{Branch: BranchCSE, Year: YearFirst}},
		{name: "empty", profile: UserProfile{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.IsComplete(); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuestProfile(t *testing.T) {
	p := GuestProfile("subject-1")
	if p.ID != "subject-1" {
		t.Errorf("ID = %q, want subject-1", p.ID)
	}
	if p.Name != GuestName {
		t.Errorf("Name = %q, want %q", p.Name, GuestName)
	}
	if p.Role != RoleStudent {
		t.Errorf("Role = %q, want %q", p.Role, RoleStudent)
	}
	if p.IsComplete() {
		t.Error("guest profile must not be complete")
	}
}
