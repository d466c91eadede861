package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/events"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type sessionService struct {
	store     SessionStore
	repo      repositories.Repository
	rooms     RoomService
	pacer     *pacer
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewSessionService(store SessionStore, repo repositories.Repository, rooms RoomService, p *pacer, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) SessionService {
	return &sessionService{
		store:     store,
		repo:      repo,
		rooms:     rooms,
		pacer:     p,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// getOrCreate loads the session state, creating one at the landing view for a
// first-seen user.
func (s *sessionService) getOrCreate(ctx context.Context, userID string) (*models.SessionState, error) {
	state, err := s.store.Get(ctx, userID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	state = models.NewSessionState(userID)
	if err := s.store.Put(ctx, state); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeSessionStarted, userID, nil)
	return state, nil
}

func (s *sessionService) loadProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.repo.Profile().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.GuestProfile(userID), nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func (s *sessionService) Current(ctx context.Context, userID string) (*SessionResponse, error) {
	state, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		UserID:   userID,
		View:     state.View,
		AuthMode: state.AuthMode,
		RoomID:   state.RoomID,
		Profile:  *toProfileResponse(profile),
	}, nil
}

// commitView writes the new view, pacing the write when both endpoints are
// authenticated views.
func (s *sessionService) commitView(ctx context.Context, state *models.SessionState, to models.View) (*NavigationResponse, error) {
	from := state.View

	resp := &NavigationResponse{
		From: from,
		View: to,
	}

	if from == to {
		// The view stays put but the caller may have touched other session
		// fields (auth sub-mode, room id); those still have to land in the
		// store.
		if err := s.store.Put(ctx, state); err != nil {
			return nil, err
		}
		return resp, nil
	}
	resp.Changed = true

	commit := func() error {
		state.View = to
		return s.store.Put(ctx, state)
	}

	if models.IsAuthenticatedView(from) && models.IsAuthenticatedView(to) {
		resp.Paced = true
		resp.PreCommitHoldMS = s.pacer.preCommitHold.Milliseconds()
		resp.PostCommitHoldMS = s.pacer.postCommitHold.Milliseconds()
		if err := s.pacer.pace(ctx, commit); err != nil {
			return nil, err
		}
	} else if err := commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeViewChanged, state.UserID, map[string]string{
		"from": string(from),
		"to":   string(to),
	})

	return resp, nil
}

// Navigate enforces the view guards and moves the session. Entry into auth,
// landing, live-room and admin-dashboard goes through their dedicated
// operations, not plain navigation.
func (s *sessionService) Navigate(ctx context.Context, userID string, to models.View) (*NavigationResponse, error) {
	if !models.IsValidView(to) {
		return nil, NewValidationFailure(fmt.Sprintf("unknown view %q", to))
	}

	state, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch to {
	case models.ViewLanding, models.ViewAuth, models.ViewLiveRoom, models.ViewAdminDashboard:
		return nil, fmt.Errorf("%w: %s is not reachable by direct navigation", ErrInvalidTransition, to)
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if to == models.ViewOnboarding {
		if profile.IsComplete() {
			return nil, fmt.Errorf("%w: onboarding already completed", ErrInvalidTransition)
		}
		return s.commitView(ctx, state, to)
	}

	if models.IsAuthenticatedView(to) && !profile.IsComplete() {
		return nil, ErrProfileIncomplete
	}

	// Leaving the live room through plain navigation drops the room
	// membership first.
	if state.View == models.ViewLiveRoom && state.RoomID != "" {
		s.leaveRegisteredRoom(ctx, state)
	}

	return s.commitView(ctx, state, to)
}

// Resolve is the post-sign-in redirect. It only acts when the session still
// sits on landing or auth, which makes repeated calls idempotent.
func (s *sessionService) Resolve(ctx context.Context, userID string) (*NavigationResponse, error) {
	state, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state.View != models.ViewLanding && state.View != models.ViewAuth {
		return &NavigationResponse{From: state.View, View: state.View}, nil
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := models.ViewOnboarding
	if profile.IsComplete() {
		target = models.ViewDashboard
	}

	state.AuthMode = ""
	return s.commitView(ctx, state, target)
}

// StartAuth opens the auth view in the given mode. Reachable from landing,
// or from auth itself to switch modes.
func (s *sessionService) StartAuth(ctx context.Context, userID string, mode models.AuthMode) (*NavigationResponse, error) {
	state, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state.View != models.ViewLanding && state.View != models.ViewAuth {
		return nil, fmt.Errorf("%w: auth can only be started from landing", ErrInvalidTransition)
	}

	state.AuthMode = mode
	return s.commitView(ctx, state, models.ViewAuth)
}

// CompleteOnboarding stores the academic identity and moves to the dashboard.
func (s *sessionService) CompleteOnboarding(ctx context.Context, userID string, req *OnboardingRequest) (*NavigationResponse, error) {
	if errs := s.validator.GetBusinessValidator().ValidateOnboarding(req); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	state, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state.View != models.ViewOnboarding {
		return nil, fmt.Errorf("%w: not onboarding", ErrInvalidTransition)
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Branch = req.Branch
	profile.Year = req.Year
	profile.Semester = req.Semester
	profile.NormalizeSemester()

	if err := s.repo.Profile().Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store onboarding result: %w", err)
	}

	s.publish(ctx, events.TypeOnboardingDone, userID, map[string]string{
		"branch":   string(profile.Branch),
		"year":     string(profile.Year),
		"semester": string(profile.Semester),
	})

	return s.commitView(ctx, state, models.ViewDashboard)
}

// SignOut returns the session to the landing view. The display name resets
// to the guest name; branch, year and semester survive for the next sign-in.
func (s *sessionService) SignOut(ctx context.Context, userID string) (*NavigationResponse, error) {
	state, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state.RoomID != "" {
		s.leaveRegisteredRoom(ctx, state)
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.Name != models.GuestName {
		profile.Name = models.GuestName
		if err := s.repo.Profile().Upsert(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to reset profile name: %w", err)
		}
	}

	state.AuthMode = ""
	resp, err := s.commitView(ctx, state, models.ViewLanding)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeSessionSignedOut, userID, nil)
	return resp, nil
}

// EnterRoom joins the registry room and moves the view to the live room.
func (s *sessionService) EnterRoom(ctx context.Context, userID, roomID string) (*NavigationResponse, error) {
	state, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsComplete() {
		return nil, ErrProfileIncomplete
	}

	if _, err := s.rooms.Join(ctx, roomID, userID); err != nil {
		return nil, err
	}

	state.RoomID = roomID
	resp, err := s.commitView(ctx, state, models.ViewLiveRoom)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeRoomJoined, userID, map[string]string{"room_id": roomID})
	return resp, nil
}

// LeaveRoom returns to the room listing and drops the registry membership.
func (s *sessionService) LeaveRoom(ctx context.Context, userID string) (*NavigationResponse, error) {
	state, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state.View != models.ViewLiveRoom {
		return nil, fmt.Errorf("%w: not in a room", ErrInvalidTransition)
	}

	s.leaveRegisteredRoom(ctx, state)
	return s.commitView(ctx, state, models.ViewStudyRooms)
}

// leaveRegisteredRoom best-effort drops the membership; a vanished room is
// not an error on the way out.
func (s *sessionService) leaveRegisteredRoom(ctx context.Context, state *models.SessionState) {
	if state.RoomID == "" {
		return
	}
	if err := s.rooms.Leave(ctx, state.RoomID, state.UserID); err != nil && !errors.Is(err, ErrRoomNotFound) {
		s.logger.Warn("failed to leave room", "error", err, "room_id", state.RoomID, "user_id", state.UserID)
	}
	s.publish(ctx, events.TypeRoomLeft, state.UserID, map[string]string{"room_id": state.RoomID})
	state.RoomID = ""
}

func (s *sessionService) publish(ctx context.Context, eventType, userID string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, userID, data)); err != nil {
		s.logger.Warn("failed to publish session event", "error", err, "type", eventType)
	}
}
