package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// GenerationEvent summarises a finished generation request for downstream
// progress tracking. It never contains the submission text.
type GenerationEvent struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Category      Category  `json:"category"`
	Outcome       string    `json:"outcome"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Model         string    `json:"model"`
	OverallScore  *float64  `json:"overall_score,omitempty"`
	LetterGrade   string    `json:"letter_grade,omitempty"`
	WeakTopics    []string  `json:"weak_topics,omitempty"`
	Topic         string    `json:"topic,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Event kinds.
const (
	EventKindFeedback = "feedback"
	EventKindPractice = "practice"
)

// EventPublisher delivers generation events. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event GenerationEvent) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, GenerationEvent) error { return nil }

// NoopEventPublisher discards every event.
func NoopEventPublisher() EventPublisher {
	return noopPublisher{}
}

// NATSEventPublisher publishes events as JSON on "<subject>.<kind>".
type NATSEventPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSEventPublisher returns a publisher bound to conn. A nil conn or an
// empty subject yields a no-op publisher.
func NewNATSEventPublisher(conn *nats.Conn, subject string) EventPublisher {
	if conn == nil || subject == "" {
		return NoopEventPublisher()
	}
	return &NATSEventPublisher{conn: conn, subject: subject}
}

// Publish encodes and sends event.
func (p *NATSEventPublisher) Publish(_ context.Context, event GenerationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode generation event: %w", err)
	}
	if err := p.conn.Publish(p.subject+"."+event.Kind, payload); err != nil {
		return fmt.Errorf("publish generation event: %w", err)
	}
	return nil
}

func newGenerationEvent(kind string, category Category, model string, correlationID string, started time.Time, outcome OutcomeKind) GenerationEvent {
	now := time.Now().UTC()
	return GenerationEvent{
		ID:            uuid.NewString(),
		Kind:          kind,
		Category:      category,
		Outcome:       outcome.String(),
		CorrelationID: correlationID,
		Model:         model,
		DurationMs:    now.Sub(started).Milliseconds(),
		OccurredAt:    now,
	}
}
