package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNATSEventPublisherWithoutConnectionIsNoop(t *testing.T) {
	publisher := NewNATSEventPublisher(nil, "gema.feedback.generation")
	require.NoError(t, publisher.Publish(context.Background(), GenerationEvent{Kind: EventKindFeedback}))
	require.IsType(t, noopPublisher{}, publisher)
}

func TestNewGenerationEventOmitsSubmissionFields(t *testing.T) {
	started := time.Now().Add(-150 * time.Millisecond)
	event := newGenerationEvent(EventKindFeedback, CategoryCoding, "mock", "corr-9", started, OutcomeFailed)

	require.NotEmpty(t, event.ID)
	require.Equal(t, "failed", event.Outcome)
	require.GreaterOrEqual(t, event.DurationMs, int64(150))

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "coding", decoded["category"])
	require.Equal(t, "corr-9", decoded["correlation_id"])
	require.NotContains(t, decoded, "overall_score")
	require.NotContains(t, decoded, "topic")
}
