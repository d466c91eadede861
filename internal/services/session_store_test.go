package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sankalan-edu/campus-service/internal/models"
)

func newTestRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSessionStore(client, time.Hour), mr
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	state := models.NewSessionState("u1")
	state.View = models.ViewDashboard
	state.AuthMode = models.AuthModeSignIn
	state.RoomID = "r1"

	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.View != models.ViewDashboard || got.AuthMode != models.AuthModeSignIn || got.RoomID != "r1" {
		t.Errorf("round trip lost state: %+v", got)
	}
}

func TestRedisSessionStoreMissing(t *testing.T) {
	store, _ := newTestRedisStore(t)

	if _, err := store.Get(context.Background(), "nobody"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want %v", err, ErrSessionNotFound)
	}
}

func TestRedisSessionStoreCorruptValue(t *testing.T) {
	store, mr := newTestRedisStore(t)

	if err := mr.Set("session:u1", "{not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	if _, err := store.Get(context.Background(), "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want %v", err, ErrSessionNotFound)
	}

	// A fresh session can be written over the corrupt blob and read back.
	state := models.NewSessionState("u1")
	if err := store.Put(context.Background(), state); err != nil {
		t.Fatalf("Put over corrupt value: %v", err)
	}
	got, err := store.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get after rewrite: %v", err)
	}
	if got.View != models.ViewLanding {
		t.Errorf("view = %s, want %s", got.View, models.ViewLanding)
	}
}

func TestRedisSessionStoreTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, models.NewSessionState("u1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if ttl := mr.TTL("session:u1"); ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want within (0, 1h]", ttl)
	}

	// Each write slides the TTL forward.
	mr.FastForward(30 * time.Minute)
	if err := store.Put(ctx, models.NewSessionState("u1")); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if ttl := mr.TTL("session:u1"); ttl != time.Hour {
		t.Errorf("TTL after rewrite = %v, want %v", ttl, time.Hour)
	}
}

func TestRedisSessionStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, models.NewSessionState("u1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error after delete = %v, want %v", err, ErrSessionNotFound)
	}
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("error = %v, want %v", err, ErrSessionNotFound)
	}

	state := models.NewSessionState("u1")
	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// The store hands out copies; mutating one must not leak back.
	got.View = models.ViewSettings
	again, _ := store.Get(ctx, "u1")
	if again.View != models.ViewLanding {
		t.Errorf("store leaked a shared pointer, view = %s", again.View)
	}

	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error after delete = %v, want %v", err, ErrSessionNotFound)
	}
}
