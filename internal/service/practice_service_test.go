package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-feedback-api/internal/dto"
	"github.com/noah-isme/gema-feedback-api/pkg/ai"
)

func newTestPracticeService(provider ai.Provider, events EventPublisher) PracticeService {
	return NewPracticeService(provider, events, validator.New(), zerolog.Nop(), GenerationConfig{})
}

func TestPracticeServiceGeneratesProblem(t *testing.T) {
	provider := ai.NewMockProvider(ai.MockResponse{Content: json.RawMessage(recursionPracticeJSON)})
	events := &recordingPublisher{}
	svc := newTestPracticeService(provider, events)

	outcome, err := svc.Generate(context.Background(), dto.PracticeRequest{Topic: "Recursion", Difficulty: "beginner", Type: "coding"})
	require.NoError(t, err)
	require.True(t, outcome.OK())

	body, err := json.Marshal(outcome.Result)
	require.NoError(t, err)
	require.JSONEq(t, recursionPracticeJSON, string(body))

	calls := provider.Calls()
	require.Len(t, calls, 1)
	require.Contains(t, calls[0].System, "beginner")
	require.Contains(t, calls[0].System, "coding")
	require.Contains(t, calls[0].System, "Recursion")
	require.Same(t, PracticeSchema, calls[0].Schema)

	published := events.Events()
	require.Len(t, published, 1)
	require.Equal(t, EventKindPractice, published[0].Kind)
	require.Equal(t, "Recursion", published[0].Topic)
	require.Equal(t, "beginner", published[0].Difficulty)
}

func TestPracticeServiceDefaultsDifficultyAndCategory(t *testing.T) {
	provider := ai.NewMockProvider(ai.MockResponse{Content: json.RawMessage(recursionPracticeJSON)})
	svc := newTestPracticeService(provider, nil)

	outcome, err := svc.Generate(context.Background(), dto.PracticeRequest{Topic: "Thesis Statements"})
	require.NoError(t, err)
	require.True(t, outcome.OK())
	require.Contains(t, provider.Calls()[0].System, "intermediate level essay practice problem")
}

func TestPracticeServicePassesTopicVerbatim(t *testing.T) {
	topics := []string{
		"Prove a<b implies a+c<b+c",
		"Generics: List<T> in Java",
		"Vector<int> templates",
		"<T>",
		"Graphs & Trees",
	}

	for _, topic := range topics {
		provider := ai.NewMockProvider(ai.MockResponse{Content: json.RawMessage(recursionPracticeJSON)})
		events := &recordingPublisher{}
		svc := newTestPracticeService(provider, events)

		outcome, err := svc.Generate(context.Background(), dto.PracticeRequest{Topic: topic, Difficulty: "beginner", Type: "coding"})
		require.NoError(t, err, "topic=%q", topic)
		require.True(t, outcome.OK())

		call := provider.Calls()[0]
		require.Equal(t, PracticePrompt(CategoryCoding, "beginner", topic), call.Prompt)
		require.Equal(t, PracticeInstruction(CategoryCoding, "beginner", topic), call.System)
		require.Contains(t, call.Prompt, `"`+topic+`"`)
		require.Equal(t, topic, events.Events()[0].Topic)
	}
}

func TestPracticeServiceRejectsEmptyTopic(t *testing.T) {
	provider := ai.NewMockProvider()
	svc := newTestPracticeService(provider, nil)

	_, err := svc.Generate(context.Background(), dto.PracticeRequest{Type: "maths"})
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Zero(t, provider.CallCount())
}

func TestPracticeServiceFailures(t *testing.T) {
	cases := []struct {
		name     string
		response ai.MockResponse
		kind     OutcomeKind
		message  string
	}{
		{name: "no structure", response: ai.MockResponse{Content: json.RawMessage(`{"question": "q"}`)}, kind: OutcomeNoStructure, message: NoStructuredOutputMessage},
		{name: "provider error", response: ai.MockResponse{Err: errors.New("rate limited")}, kind: OutcomeFailed, message: "rate limited"},
		{name: "empty error", response: ai.MockResponse{Err: errors.New("")}, kind: OutcomeFailed, message: "Failed to generate practice problem"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := ai.NewMockProvider(tc.response)
			svc := newTestPracticeService(provider, nil)

			outcome, err := svc.Generate(context.Background(), dto.PracticeRequest{Topic: "Integration", Type: "maths"})
			require.NoError(t, err)
			require.Equal(t, tc.kind, outcome.Kind)
			require.Equal(t, tc.message, outcome.Message)
		})
	}
}

func TestPracticeServiceTopics(t *testing.T) {
	svc := newTestPracticeService(ai.NewMockProvider(), nil)

	coding := svc.Topics("coding")
	require.Equal(t, "coding", coding.Type)
	require.Contains(t, coding.Topics, "Binary Search")

	fallback := svc.Topics("unknown")
	require.Equal(t, "essay", fallback.Type)
	require.Contains(t, fallback.Topics, "Persuasive Writing")
}
