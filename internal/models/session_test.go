package models

import "testing"

func TestIsValidView(t *testing.T) {
	for view := range allViews {
		if !IsValidView(view) {
			t.Errorf("IsValidView(%q) = false", view)
		}
	}
	for _, view := range []View{"", "home", "Dashboard", "pyq"} {
		if IsValidView(view) {
			t.Errorf("IsValidView(%q) = true", view)
		}
	}
}

func TestIsAuthenticatedView(t *testing.T) {
	authenticated := []View{
		ViewDashboard, ViewPapers, ViewMaterials, ViewTools, ViewAbout,
		ViewProfile, ViewSettings, ViewStudyRooms, ViewLiveRoom,
	}
	for _, view := range authenticated {
		if !IsAuthenticatedView(view) {
			t.Errorf("IsAuthenticatedView(%q) = false", view)
		}
	}

	public := []View{ViewLanding, ViewAuth, ViewOnboarding, ViewAdminDashboard}
	for _, view := range public {
		if IsAuthenticatedView(view) {
			t.Errorf("IsAuthenticatedView(%q) = true", view)
		}
	}
}

func TestNewSessionState(t *testing.T) {
	state := NewSessionState("u1")
	if state.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", state.UserID)
	}
	if state.View != ViewLanding {
		t.Errorf("View = %q, want %q", state.View, ViewLanding)
	}
	if state.AuthMode != AuthModeNone {
		t.Errorf("AuthMode = %q, want none", state.AuthMode)
	}
	if state.RoomID != "" {
		t.Errorf("RoomID = %q, want empty", state.RoomID)
	}
}
