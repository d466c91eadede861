package models

import "time"

// View is the closed set of top-level screens. Exactly one is active per
// session and it changes only through the session router.
type View string

const (
	ViewLanding        View = "landing"
	ViewAuth           View = "auth"
	ViewOnboarding     View = "onboarding"
	ViewDashboard      View = "dashboard"
	ViewPapers         View = "pyqs"
	ViewMaterials      View = "materials"
	ViewTools          View = "tools"
	ViewAbout          View = "about"
	ViewProfile        View = "profile"
	ViewSettings       View = "settings"
	ViewStudyRooms     View = "study-rooms"
	ViewLiveRoom       View = "live-room"
	ViewAdminDashboard View = "admin-dashboard"
)

var allViews = map[View]bool{
	ViewLanding:        true,
	ViewAuth:           true,
	ViewOnboarding:     true,
	ViewDashboard:      true,
	ViewPapers:         true,
	ViewMaterials:      true,
	ViewTools:          true,
	ViewAbout:          true,
	ViewProfile:        true,
	ViewSettings:       true,
	ViewStudyRooms:     true,
	ViewLiveRoom:       true,
	ViewAdminDashboard: true,
}

// authenticatedViews is the screen set reachable after sign-in. Transitions
// with both endpoints inside this set go through the navigation pacer.
var authenticatedViews = map[View]bool{
	ViewDashboard:  true,
	ViewPapers:     true,
	ViewMaterials:  true,
	ViewTools:      true,
	ViewAbout:      true,
	ViewProfile:    true,
	ViewSettings:   true,
	ViewStudyRooms: true,
	ViewLiveRoom:   true,
}

// IsValidView reports whether v is one of the enumerated views.
func IsValidView(v View) bool {
	return allViews[v]
}

// IsAuthenticatedView reports whether v belongs to the authenticated screen set.
func IsAuthenticatedView(v View) bool {
	return authenticatedViews[v]
}

// AuthMode is the sub-mode of the auth screen.
type AuthMode string

const (
	AuthModeNone       AuthMode = ""
	AuthModeSignIn     AuthMode = "signin"
	AuthModeSignUp     AuthMode = "signup"
	AuthModeAdminLogin AuthMode = "admin-login"
)

// SessionState is the per-session router state, persisted in Redis.
type SessionState struct {
	UserID    string    `json:"user_id"`
	View      View      `json:"view"`
	AuthMode  AuthMode  `json:"auth_mode"`
	RoomID    string    `json:"room_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSessionState returns the initial router state for a session.
func NewSessionState(userID string) *SessionState {
	return &SessionState{
		UserID:    userID,
		View:      ViewLanding,
		UpdatedAt: time.Now(),
	}
}
