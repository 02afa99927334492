package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/noah-isme/gema-feedback-api/pkg/ai"
)

const mathsFeedbackJSON = `{
  "overallScore": 40,
  "summary": "The arithmetic is incorrect. The working is too short to follow.",
  "strengths": [{"title": "Concise", "description": "The answer is stated directly."}],
  "improvements": [{"title": "Check addition", "description": "2 + 2 evaluates to 4.", "severity": "high"}],
  "annotations": [{"text": "2+2=5", "issue": "Incorrect sum", "suggestion": "Write 2+2=4", "category": "accuracy"}],
  "weakTopics": ["Basic addition"],
  "practiceRecommendations": [{"topic": "Addition facts", "description": "Drill single digit sums.", "difficulty": "beginner"}],
  "letterGrade": "F"
}`

const recursionPracticeJSON = `{
  "question": "Write a function that returns the sum of a list using recursion.",
  "hints": ["What is the sum of an empty list?", "Split the list into its head and the rest."],
  "sampleAnswer": "def total(xs):\n    return 0 if not xs else xs[0] + total(xs[1:])",
  "explanation": "The base case handles the empty list and each call shrinks the input.",
  "keyConceptsToReview": ["Base case", "Recursive step"]
}`

type recordingPublisher struct {
	mu     sync.Mutex
	events []GenerationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event GenerationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []GenerationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]GenerationEvent(nil), p.events...)
}

// blockingProvider waits for its context to end and reports what it saw.
type blockingProvider struct {
	release chan struct{}
	content json.RawMessage
	ctxErr  chan error
}

func newBlockingProvider(content string) *blockingProvider {
	return &blockingProvider{
		release: make(chan struct{}),
		content: json.RawMessage(content),
		ctxErr:  make(chan error, 1),
	}
}

func (p *blockingProvider) Generate(ctx context.Context, _ ai.Request) (*ai.Response, error) {
	select {
	case <-ctx.Done():
		p.ctxErr <- ctx.Err()
		return nil, &ai.ErrTimeout{Err: ctx.Err()}
	case <-p.release:
		p.ctxErr <- ctx.Err()
		return &ai.Response{Content: p.content, Model: "blocking"}, nil
	}
}

func (p *blockingProvider) ModelID() string { return "blocking" }
