package models

import "time"

// RoomActivity tags what a study room is for.
type RoomActivity string

const (
	ActivityDiscussion RoomActivity = "discussion"
	ActivityPomodoro   RoomActivity = "pomodoro"
	ActivityDoubts     RoomActivity = "doubts"
	ActivityProject    RoomActivity = "project"
)

// PomodoroPhases carries the focus/break durations for timer-mode rooms.
// The service stores these as plain data; clients run the countdown.
type PomodoroPhases struct {
	FocusMinutes int `json:"focus_minutes"`
	BreakMinutes int `json:"break_minutes"`
}

// Room is an ephemeral study room. Rooms live only in the in-process
// registry and vanish on restart.
type Room struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Subject   string       `json:"subject"`
	Topic     string       `json:"topic"`
	Capacity  int          `json:"capacity"`
	Activity  RoomActivity `json:"activity"`
	TimerMode bool         `json:"timer_mode"`

	Pomodoro *PomodoroPhases `json:"pomodoro,omitempty"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Members maps user ID to join time.
	Members map[string]time.Time `json:"members"`
}

// MemberCount returns the number of users currently in the room.
func (r *Room) MemberCount() int {
	return len(r.Members)
}

// IsFull reports whether the room has reached capacity.
func (r *Room) IsFull() bool {
	return r.Capacity > 0 && len(r.Members) >= r.Capacity
}

// Clone returns a deep copy safe to return across the registry lock.
func (r *Room) Clone() *Room {
	copied := *r
	copied.Members = make(map[string]time.Time, len(r.Members))
	for id, at := range r.Members {
		copied.Members[id] = at
	}
	if r.Pomodoro != nil {
		phases := *r.Pomodoro
		copied.Pomodoro = &phases
	}
	return &copied
}
