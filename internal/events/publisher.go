package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Usage event types
const (
	TypeSessionStarted    = "session.started"
	TypeSessionSignedOut  = "session.signed_out"
	TypeViewChanged       = "navigation.view_changed"
	TypeOnboardingDone    = "onboarding.completed"
	TypeProfileUpdated    = "profile.updated"
	TypePaperViewed       = "paper.viewed"
	TypePaperDownloaded   = "paper.downloaded"
	TypeMaterialViewed    = "material.viewed"
	TypeQuizGenerated     = "quiz.generated"
	TypeQuizFallbackUsed  = "quiz.fallback_used"
	TypeRoomCreated       = "room.created"
	TypeRoomJoined        = "room.joined"
	TypeRoomLeft          = "room.left"
	TypeRoomClosed        = "room.closed"
	TypeAdminLogin        = "admin.login"
	TypeAdminLoginFailure = "admin.login_failure"
)

// Event is the envelope published for every usage event.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// NewEvent stamps the envelope fields for a usage event.
func NewEvent(eventType, userID string, data any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "campus-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Data:      data,
	}
}

// EventPublisher is the sink for usage events. Publishing is fire-and-forget
// from the caller's perspective; failures must never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaEventPublisher publishes events to a Kafka topic through watermill.
type KafkaEventPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// NoopEventPublisher discards events. Used when no brokers are configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NoopEventPublisher) Close() error                                   { return nil }

// MockEventPublisher records events in memory for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	if m.logger != nil {
		m.logger.Debug("mock publish", "type", event.Type, "user_id", event.UserID)
	}
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
