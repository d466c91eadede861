package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sankalan-edu/campus-service/internal/events"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

// roomService keeps study rooms in a process-local registry. Rooms hold no
// durable state and vanish on restart; there is no cross-instance
// synchronization.
type roomService struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room

	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewRoomService(logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) RoomService {
	return &roomService{
		rooms:     make(map[string]*models.Room),
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func roomResponse(room *models.Room) *RoomResponse {
	return &RoomResponse{
		Room:        room,
		MemberCount: room.MemberCount(),
	}
}

// Create registers a room and joins the creator into it.
func (s *roomService) Create(ctx context.Context, userID string, req *RoomCreateRequest) (*RoomResponse, error) {
	if errs := s.validator.GetBusinessValidator().ValidateRoomCreate(req); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	room := &models.Room{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Subject:   req.Subject,
		Topic:     req.Topic,
		Capacity:  req.Capacity,
		Activity:  req.Activity,
		TimerMode: req.TimerMode,
		Pomodoro:  req.Pomodoro,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
		Members:   map[string]time.Time{userID: time.Now().UTC()},
	}

	s.mu.Lock()
	s.rooms[room.ID] = room
	s.mu.Unlock()

	s.logger.Info("room created", "room_id", room.ID, "created_by", userID, "activity", room.Activity)
	s.publish(ctx, events.TypeRoomCreated, userID, map[string]string{
		"room_id":  room.ID,
		"activity": string(room.Activity),
	})

	return roomResponse(room.Clone()), nil
}

func (s *roomService) Get(ctx context.Context, roomID string) (*RoomResponse, error) {
	s.mu.RLock()
	room, ok := s.rooms[roomID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	return roomResponse(room.Clone()), nil
}

// List returns all active rooms, newest first.
func (s *roomService) List(ctx context.Context) (*RoomListResponse, error) {
	s.mu.RLock()
	rooms := make([]*models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
	})

	resp := &RoomListResponse{Total: len(rooms)}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, *roomResponse(room))
	}
	return resp, nil
}

// Join adds a member. Joining a room one is already in succeeds without
// counting twice.
func (s *roomService) Join(ctx context.Context, roomID, userID string) (*RoomResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	if _, member := room.Members[userID]; !member {
		if room.IsFull() {
			return nil, fmt.Errorf("%w: %s", ErrRoomFull, roomID)
		}
		room.Members[userID] = time.Now().UTC()
	}

	return roomResponse(room.Clone()), nil
}

// Leave removes a member. The room is dropped from the registry when the
// last member leaves.
func (s *roomService) Leave(ctx context.Context, roomID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}

	delete(room.Members, userID)

	if len(room.Members) == 0 {
		delete(s.rooms, roomID)
		s.logger.Info("room closed", "room_id", roomID)
	}

	return nil
}

// Close removes a room regardless of membership. Only the creator or an
// admin may close a room that still has members.
func (s *roomService) Close(ctx context.Context, roomID, userID string, admin bool) error {
	s.mu.Lock()

	room, ok := s.rooms[roomID]
	if !ok {
		s.mu.Unlock()
		return ErrRoomNotFound
	}

	if room.CreatedBy != userID && !admin {
		s.mu.Unlock()
		return NewPermissionError(userID, "close room")
	}

	delete(s.rooms, roomID)
	s.mu.Unlock()

	s.logger.Info("room closed", "room_id", roomID, "closed_by", userID)
	s.publish(ctx, events.TypeRoomClosed, userID, map[string]string{"room_id": roomID})
	return nil
}

func (s *roomService) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

func (s *roomService) publish(ctx context.Context, eventType, userID string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, userID, data)); err != nil {
		s.logger.Warn("failed to publish room event", "error", err, "type", eventType)
	}
}
