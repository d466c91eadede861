package models

import (
	"testing"
	"time"
)

func TestRoomClone(t *testing.T) {
	room := &Room{
		ID:       "r1",
		Capacity: 4,
		Pomodoro: &PomodoroPhases{FocusMinutes: 25, BreakMinutes: 5},
		Members:  map[string]time.Time{"u1": time.Now()},
	}

	clone := room.Clone()
	clone.Members["u2"] = time.Now()
	clone.Pomodoro.FocusMinutes = 50

	if len(room.Members) != 1 {
		t.Errorf("clone mutation leaked into original members: %d", len(room.Members))
	}
	if room.Pomodoro.FocusMinutes != 25 {
		t.Errorf("clone mutation leaked into original pomodoro: %d", room.Pomodoro.FocusMinutes)
	}
}

func TestRoomIsFull(t *testing.T) {
	room := &Room{Capacity: 2, Members: map[string]time.Time{"u1": time.Now()}}
	if room.IsFull() {
		t.Error("room with one of two seats is not full")
	}
	room.Members["u2"] = time.Now()
	if !room.IsFull() {
		t.Error("room at capacity must be full")
	}

	unbounded := &Room{Members: map[string]time.Time{"u1": time.Now()}}
	if unbounded.IsFull() {
		t.Error("zero capacity means unbounded")
	}
}
