package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sankalan-edu/campus-service/internal/models"
)

// SessionStore persists per-user session state. Missing entries are reported
// as ErrSessionNotFound so callers can lazily create a fresh session.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*models.SessionState, error)
	Put(ctx context.Context, state *models.SessionState) error
	Delete(ctx context.Context, userID string) error
}

// RedisSessionStore keeps session state in Redis with a sliding TTL, so a
// session survives service restarts and multiple instances.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (*models.SessionState, error) {
	data, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var state models.SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		// An undecodable blob is treated like a missing session so the
		// caller provisions a fresh one instead of failing until TTL expiry.
		return nil, fmt.Errorf("%w: undecodable session for %s", ErrSessionNotFound, userID)
	}

	return &state, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, state *models.SessionState) error {
	state.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(state.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// MemorySessionStore is a map-backed store for tests and for running without
// Redis.
type MemorySessionStore struct {
	mu     sync.Mutex
	states map[string]models.SessionState
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{states: make(map[string]models.SessionState)}
}

func (s *MemorySessionStore) Get(ctx context.Context, userID string) (*models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[userID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := state
	return &copied, nil
}

func (s *MemorySessionStore) Put(ctx context.Context, state *models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.UpdatedAt = time.Now().UTC()
	s.states[state.UserID] = *state
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)
	return nil
}
