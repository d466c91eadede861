package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sankalan-edu/campus-service/internal/events"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type sessionFixture struct {
	svc       SessionService
	rooms     RoomService
	repo      *fakeRepository
	store     *MemorySessionStore
	publisher *events.MockEventPublisher
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	repo := newFakeRepository()
	store := NewMemorySessionStore()
	publisher := events.NewMockEventPublisher(nil)
	v := validator.New()
	rooms := NewRoomService(testLogger(), v, publisher)
	svc := NewSessionService(store, repo, rooms, newPacer(0, 0), testLogger(), v, publisher)

	return &sessionFixture{
		svc:       svc,
		rooms:     rooms,
		repo:      repo,
		store:     store,
		publisher: publisher,
	}
}

func (f *sessionFixture) seedCompleteProfile(t *testing.T, userID string) {
	t.Helper()
	err := f.repo.profiles.Upsert(context.Background(), &models.UserProfile{
		ID:       userID,
		Name:     "Asha",
		Branch:   models.BranchCSE,
		Year:     models.YearThird,
		Semester: models.SemesterS5,
		Role:     models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func (f *sessionFixture) forceView(t *testing.T, userID string, view models.View) {
	t.Helper()
	state := models.NewSessionState(userID)
	state.View = view
	if err := f.store.Put(context.Background(), state); err != nil {
		t.Fatalf("force view: %v", err)
	}
}

func TestSessionStartsAtLanding(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if session.View != models.ViewLanding {
		t.Errorf("new session view = %s, want %s", session.View, models.ViewLanding)
	}
	if session.Profile.Name != models.GuestName {
		t.Errorf("new session name = %q, want %q", session.Profile.Name, models.GuestName)
	}
}

func TestResolve(t *testing.T) {
	t.Run("incomplete profile goes to onboarding", func(t *testing.T) {
		f := newSessionFixture(t)

		resp, err := f.svc.Resolve(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if resp.View != models.ViewOnboarding {
			t.Errorf("resolved view = %s, want %s", resp.View, models.ViewOnboarding)
		}
	})

	t.Run("complete profile goes to dashboard", func(t *testing.T) {
		f := newSessionFixture(t)
		f.seedCompleteProfile(t, "u1")

		resp, err := f.svc.Resolve(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if resp.View != models.ViewDashboard {
			t.Errorf("resolved view = %s, want %s", resp.View, models.ViewDashboard)
		}
	})

	t.Run("repeated resolve is a no-op", func(t *testing.T) {
		f := newSessionFixture(t)
		f.seedCompleteProfile(t, "u1")

		if _, err := f.svc.Resolve(context.Background(), "u1"); err != nil {
			t.Fatalf("first Resolve: %v", err)
		}

		// Move somewhere else, then resolve again: the view must not change.
		if _, err := f.svc.Navigate(context.Background(), "u1", models.ViewSettings); err != nil {
			t.Fatalf("Navigate: %v", err)
		}

		resp, err := f.svc.Resolve(context.Background(), "u1")
		if err != nil {
			t.Fatalf("second Resolve: %v", err)
		}
		if resp.Changed {
			t.Error("second resolve changed the view")
		}
		if resp.View != models.ViewSettings {
			t.Errorf("view after second resolve = %s, want %s", resp.View, models.ViewSettings)
		}
	})

	t.Run("resolve from auth clears auth mode", func(t *testing.T) {
		f := newSessionFixture(t)
		f.seedCompleteProfile(t, "u1")

		if _, err := f.svc.StartAuth(context.Background(), "u1", models.AuthModeSignIn); err != nil {
			t.Fatalf("StartAuth: %v", err)
		}
		if _, err := f.svc.Resolve(context.Background(), "u1"); err != nil {
			t.Fatalf("Resolve: %v", err)
		}

		session, err := f.svc.Current(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		if session.AuthMode != "" {
			t.Errorf("auth mode after resolve = %q, want empty", session.AuthMode)
		}
	})
}

func TestNavigateGuards(t *testing.T) {
	tests := []struct {
		name     string
		view     models.View
		complete bool
		fromView models.View
		wantErr  error
	}{
		{name: "unknown view", view: models.View("bogus"), wantErr: ErrValidationFailed},
		{name: "landing not navigable", view: models.ViewLanding, wantErr: ErrInvalidTransition},
		{name: "auth not navigable", view: models.ViewAuth, wantErr: ErrInvalidTransition},
		{name: "live room not navigable", view: models.ViewLiveRoom, complete: true, wantErr: ErrInvalidTransition},
		{name: "admin dashboard not navigable", view: models.ViewAdminDashboard, wantErr: ErrInvalidTransition},
		{name: "onboarding blocked when complete", view: models.ViewOnboarding, complete: true, fromView: models.ViewDashboard, wantErr: ErrInvalidTransition},
		{name: "authenticated view blocked when incomplete", view: models.ViewPapers, wantErr: ErrProfileIncomplete},
		{name: "onboarding allowed when incomplete", view: models.ViewOnboarding},
		{name: "authenticated view allowed when complete", view: models.ViewPapers, complete: true, fromView: models.ViewDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			if tt.complete {
				f.seedCompleteProfile(t, "u1")
			}
			if tt.fromView != "" {
				f.forceView(t, "u1", tt.fromView)
			}

			_, err := f.svc.Navigate(context.Background(), "u1", tt.view)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Navigate(%s): %v", tt.view, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Navigate(%s) error = %v, want %v", tt.view, err, tt.wantErr)
			}
		})
	}
}

func TestNavigatePacing(t *testing.T) {
	f := newSessionFixture(t)
	f.seedCompleteProfile(t, "u1")
	f.forceView(t, "u1", models.ViewDashboard)

	t.Run("between authenticated views is paced", func(t *testing.T) {
		resp, err := f.svc.Navigate(context.Background(), "u1", models.ViewPapers)
		if err != nil {
			t.Fatalf("Navigate: %v", err)
		}
		if !resp.Changed || !resp.Paced {
			t.Errorf("got changed=%v paced=%v, want both true", resp.Changed, resp.Paced)
		}
	})

	t.Run("same view is not paced", func(t *testing.T) {
		resp, err := f.svc.Navigate(context.Background(), "u1", models.ViewPapers)
		if err != nil {
			t.Fatalf("Navigate: %v", err)
		}
		if resp.Changed || resp.Paced {
			t.Errorf("got changed=%v paced=%v, want both false", resp.Changed, resp.Paced)
		}
	})
}

func TestStartAuth(t *testing.T) {
	t.Run("from landing", func(t *testing.T) {
		f := newSessionFixture(t)

		resp, err := f.svc.StartAuth(context.Background(), "u1", models.AuthModeSignUp)
		if err != nil {
			t.Fatalf("StartAuth: %v", err)
		}
		if resp.View != models.ViewAuth {
			t.Errorf("view = %s, want %s", resp.View, models.ViewAuth)
		}

		session, _ := f.svc.Current(context.Background(), "u1")
		if session.AuthMode != models.AuthModeSignUp {
			t.Errorf("auth mode = %s, want %s", session.AuthMode, models.AuthModeSignUp)
		}
	})

	t.Run("mode switch while on auth", func(t *testing.T) {
		f := newSessionFixture(t)

		if _, err := f.svc.StartAuth(context.Background(), "u1", models.AuthModeSignIn); err != nil {
			t.Fatalf("StartAuth: %v", err)
		}
		if _, err := f.svc.StartAuth(context.Background(), "u1", models.AuthModeSignUp); err != nil {
			t.Fatalf("StartAuth mode switch: %v", err)
		}

		session, _ := f.svc.Current(context.Background(), "u1")
		if session.AuthMode != models.AuthModeSignUp {
			t.Errorf("auth mode = %s, want %s", session.AuthMode, models.AuthModeSignUp)
		}
	})

	t.Run("blocked after sign in", func(t *testing.T) {
		f := newSessionFixture(t)
		f.seedCompleteProfile(t, "u1")
		f.forceView(t, "u1", models.ViewDashboard)

		if _, err := f.svc.StartAuth(context.Background(), "u1", models.AuthModeSignIn); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("StartAuth error = %v, want %v", err, ErrInvalidTransition)
		}
	})
}

func TestCompleteOnboarding(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		f := newSessionFixture(t)
		f.forceView(t, "u1", models.ViewOnboarding)

		resp, err := f.svc.CompleteOnboarding(context.Background(), "u1", &OnboardingRequest{
			Branch:   models.BranchECE,
			Year:     models.YearThird,
			Semester: models.SemesterS5,
		})
		if err != nil {
			t.Fatalf("CompleteOnboarding: %v", err)
		}
		if resp.View != models.ViewDashboard {
			t.Errorf("view = %s, want %s", resp.View, models.ViewDashboard)
		}

		profile, err := f.repo.profiles.GetByID(context.Background(), "u1")
		if err != nil {
			t.Fatalf("profile not stored: %v", err)
		}
		if !profile.IsComplete() {
			t.Error("profile not complete after onboarding")
		}
		if profile.Semester != models.SemesterS5 {
			t.Errorf("semester = %s, want %s", profile.Semester, models.SemesterS5)
		}
	})

	t.Run("semester outside year pair is rejected", func(t *testing.T) {
		f := newSessionFixture(t)
		f.forceView(t, "u1", models.ViewOnboarding)

		_, err := f.svc.CompleteOnboarding(context.Background(), "u1", &OnboardingRequest{
			Branch:   models.BranchCSE,
			Year:     models.YearFirst,
			Semester: models.SemesterS5,
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want %v", err, ErrValidationFailed)
		}
	})

	t.Run("only from the onboarding view", func(t *testing.T) {
		f := newSessionFixture(t)

		_, err := f.svc.CompleteOnboarding(context.Background(), "u1", &OnboardingRequest{
			Branch:   models.BranchCSE,
			Year:     models.YearFirst,
			Semester: models.SemesterS1,
		})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want %v", err, ErrInvalidTransition)
		}
	})
}

func TestSignOut(t *testing.T) {
	f := newSessionFixture(t)
	f.seedCompleteProfile(t, "u1")
	f.forceView(t, "u1", models.ViewDashboard)

	resp, err := f.svc.SignOut(context.Background(), "u1")
	if err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if resp.View != models.ViewLanding {
		t.Errorf("view = %s, want %s", resp.View, models.ViewLanding)
	}

	// The display name resets but the academic identity stays for the next
	// sign-in.
	profile, err := f.repo.profiles.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Name != models.GuestName {
		t.Errorf("name = %q, want %q", profile.Name, models.GuestName)
	}
	if profile.Branch != models.BranchCSE || profile.Year != models.YearThird || profile.Semester != models.SemesterS5 {
		t.Errorf("academic identity changed on sign-out: %s %s %s", profile.Branch, profile.Year, profile.Semester)
	}
}

func TestRoomTransitions(t *testing.T) {
	newRoom := func(t *testing.T, f *sessionFixture, creator string) string {
		t.Helper()
		f.seedCompleteProfile(t, creator)
		room, err := f.rooms.Create(context.Background(), creator, &RoomCreateRequest{
			Title:    "DSA revision",
			Capacity: 4,
			Activity: models.ActivityDiscussion,
		})
		if err != nil {
			t.Fatalf("create room: %v", err)
		}
		return room.Room.ID
	}

	t.Run("enter requires complete profile", func(t *testing.T) {
		f := newSessionFixture(t)
		roomID := newRoom(t, f, "creator")

		if _, err := f.svc.EnterRoom(context.Background(), "u1", roomID); !errors.Is(err, ErrProfileIncomplete) {
			t.Errorf("EnterRoom error = %v, want %v", err, ErrProfileIncomplete)
		}
	})

	t.Run("enter and leave", func(t *testing.T) {
		f := newSessionFixture(t)
		roomID := newRoom(t, f, "creator")
		f.seedCompleteProfile(t, "u1")
		f.forceView(t, "u1", models.ViewStudyRooms)

		resp, err := f.svc.EnterRoom(context.Background(), "u1", roomID)
		if err != nil {
			t.Fatalf("EnterRoom: %v", err)
		}
		if resp.View != models.ViewLiveRoom {
			t.Errorf("view = %s, want %s", resp.View, models.ViewLiveRoom)
		}

		session, _ := f.svc.Current(context.Background(), "u1")
		if session.RoomID != roomID {
			t.Errorf("session room = %q, want %q", session.RoomID, roomID)
		}

		resp, err = f.svc.LeaveRoom(context.Background(), "u1")
		if err != nil {
			t.Fatalf("LeaveRoom: %v", err)
		}
		if resp.View != models.ViewStudyRooms {
			t.Errorf("view = %s, want %s", resp.View, models.ViewStudyRooms)
		}

		room, err := f.rooms.Get(context.Background(), roomID)
		if err != nil {
			t.Fatalf("room gone after one member left: %v", err)
		}
		if room.MemberCount != 1 {
			t.Errorf("member count = %d, want 1", room.MemberCount)
		}
	})

	t.Run("navigating away drops membership", func(t *testing.T) {
		f := newSessionFixture(t)
		roomID := newRoom(t, f, "creator")
		f.seedCompleteProfile(t, "u1")
		f.forceView(t, "u1", models.ViewStudyRooms)

		if _, err := f.svc.EnterRoom(context.Background(), "u1", roomID); err != nil {
			t.Fatalf("EnterRoom: %v", err)
		}
		if _, err := f.svc.Navigate(context.Background(), "u1", models.ViewDashboard); err != nil {
			t.Fatalf("Navigate: %v", err)
		}

		room, err := f.rooms.Get(context.Background(), roomID)
		if err != nil {
			t.Fatalf("Get room: %v", err)
		}
		if _, member := room.Room.Members["u1"]; member {
			t.Error("u1 still a member after navigating away")
		}

		session, _ := f.svc.Current(context.Background(), "u1")
		if session.RoomID != "" {
			t.Errorf("session room = %q, want empty", session.RoomID)
		}
	})

	t.Run("leave outside a room", func(t *testing.T) {
		f := newSessionFixture(t)
		if _, err := f.svc.LeaveRoom(context.Background(), "u1"); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("LeaveRoom error = %v, want %v", err, ErrInvalidTransition)
		}
	})
}
